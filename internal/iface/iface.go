// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package iface discovers the host's wireless interfaces so the user can pick
// which one nmcli should operate on.
package iface

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"wifi-manager/internal/logger"

	"github.com/mdlayher/wifi"
	"github.com/vishvananda/netlink"
)

// ErrNotAssociated is returned by Link when the interface is not associated
// with an access point.
var ErrNotAssociated = errors.New("interface is not associated")

// Source lists wireless interface names.
type Source interface {
	Name() string
	Interfaces() ([]string, error)
}

// Discoverer queries its sources in order and returns the first success.
type Discoverer struct {
	Sources []Source
}

// NewDiscoverer returns a Discoverer that asks nl80211 first and falls back
// to netlink link enumeration filtered through sysfs.
func NewDiscoverer() *Discoverer {
	return &Discoverer{Sources: []Source{
		nl80211Source{},
		netlinkSource{sysClassNet: "/sys/class/net"},
	}}
}

// Discover returns the sorted wireless interface names. An empty result is
// not an error.
func (d *Discoverer) Discover(ctx context.Context) ([]string, error) {
	var errs []error
	for _, src := range d.Sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		names, err := src.Interfaces()
		if err != nil {
			logger.Debug("interface source failed", "source", src.Name(), "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", src.Name(), err))
			continue
		}
		slices.Sort(names)
		return slices.Compact(names), nil
	}
	if len(errs) == 0 {
		return nil, nil
	}
	return nil, fmt.Errorf("discovering wireless interfaces: %w", errors.Join(errs...))
}

// Discover is a convenience wrapper around NewDiscoverer().Discover.
func Discover(ctx context.Context) ([]string, error) {
	return NewDiscoverer().Discover(ctx)
}

type nl80211Source struct{}

func (nl80211Source) Name() string { return "nl80211" }

func (nl80211Source) Interfaces() ([]string, error) {
	c, err := wifi.New()
	if err != nil {
		return nil, err
	}
	defer c.Close()

	ifis, err := c.Interfaces()
	if err != nil {
		return nil, err
	}
	var names []string
	for _, ifi := range ifis {
		// P2P and monitor interfaces have no name or are not stations.
		if ifi.Name == "" || ifi.Type != wifi.InterfaceTypeStation {
			continue
		}
		names = append(names, ifi.Name)
	}
	return names, nil
}

type netlinkSource struct {
	sysClassNet string
}

func (netlinkSource) Name() string { return "netlink" }

func (s netlinkSource) Interfaces() ([]string, error) {
	links, err := netlink.LinkList()
	if err != nil {
		return nil, err
	}
	var names []string
	for _, l := range links {
		name := l.Attrs().Name
		if s.isWireless(name) {
			names = append(names, name)
		}
	}
	return names, nil
}

func (s netlinkSource) isWireless(name string) bool {
	_, err := os.Stat(filepath.Join(s.sysClassNet, name, "wireless"))
	return err == nil
}

// LinkInfo describes the current association of a wireless interface.
type LinkInfo struct {
	Interface string
	SSID      string
	BSSID     string
	Frequency int // MHz
	SignalDBm int // 0 when unknown
}

// Link reports the current association of the named interface via nl80211.
func Link(name string) (LinkInfo, error) {
	c, err := wifi.New()
	if err != nil {
		return LinkInfo{}, fmt.Errorf("opening nl80211: %w", err)
	}
	defer c.Close()

	ifis, err := c.Interfaces()
	if err != nil {
		return LinkInfo{}, fmt.Errorf("listing nl80211 interfaces: %w", err)
	}
	idx := slices.IndexFunc(ifis, func(ifi *wifi.Interface) bool { return ifi.Name == name })
	if idx == -1 {
		return LinkInfo{}, fmt.Errorf("interface %s not found", name)
	}
	ifi := ifis[idx]

	bss, err := c.BSS(ifi)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return LinkInfo{}, ErrNotAssociated
		}
		return LinkInfo{}, fmt.Errorf("reading BSS for %s: %w", name, err)
	}

	info := LinkInfo{
		Interface: name,
		SSID:      bss.SSID,
		BSSID:     bss.BSSID.String(),
		Frequency: bss.Frequency,
	}
	if stations, err := c.StationInfo(ifi); err == nil && len(stations) > 0 {
		info.SignalDBm = stations[0].Signal
	}
	return info, nil
}
