// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package nmcli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"wifi-manager/internal/logger"
)

// DefaultTool is the executable invoked when none is configured.
const DefaultTool = "nmcli"

// ErrNoWifiDevice is returned when no Wi-Fi device can be targeted.
var ErrNoWifiDevice = errors.New("no connected wifi device found")

// Client issues nmcli invocations. The zero Interface means "any device".
type Client struct {
	Tool      string
	Runner    Runner
	Interface string
}

// NewClient returns a Client that runs tool on the local host.
func NewClient(tool, iface string) *Client {
	if tool == "" {
		tool = DefaultTool
	}
	return &Client{Tool: tool, Runner: ExecRunner{}, Interface: iface}
}

// WithInterface returns a copy of the client bound to iface.
func (c *Client) WithInterface(iface string) *Client {
	cp := *c
	cp.Interface = iface
	return &cp
}

func (c *Client) ifnameArgs() []string {
	if c.Interface == "" {
		return nil
	}
	return []string{"ifname", c.Interface}
}

// Networks returns the current scan results, with Saved filled in from the
// saved connection profiles when they can be read.
func (c *Client) Networks(ctx context.Context) ([]Network, error) {
	args := []string{"-t", "-f", strings.Join(wifiListFields, ","), "device", "wifi", "list"}
	args = append(args, c.ifnameArgs()...)
	out, err := c.run(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("listing wifi networks: %w", err)
	}
	networks := ParseNetworks(out)

	profiles, err := c.SavedProfiles(ctx)
	if err != nil {
		logger.Warn("could not read saved profiles", "error", err)
	} else {
		MarkSaved(networks, profiles)
	}
	logger.Debug("scan parsed", "networks", len(networks), "interface", c.Interface)
	return networks, nil
}

// Rescan asks NetworkManager to trigger a new scan.
func (c *Client) Rescan(ctx context.Context) error {
	args := append([]string{"device", "wifi", "rescan"}, c.ifnameArgs()...)
	if _, err := c.run(ctx, args...); err != nil {
		return fmt.Errorf("rescanning: %w", err)
	}
	return nil
}

// Connect joins n. The password is only passed for secured networks; when it
// is non-empty any existing profile named after the SSID is removed first so
// that stale key-management settings do not shadow the new credentials.
// When a BSSID is known the connection targets it and the profile is named
// after the SSID.
func (c *Client) Connect(ctx context.Context, n Network, password string) (string, error) {
	if n.SSID == "" && n.BSSID == "" {
		return "", errors.New("connect: network has neither SSID nor BSSID")
	}
	secured := n.Secured()
	if secured && password != "" && n.SSID != "" {
		if _, err := c.run(ctx, "connection", "delete", "id", n.SSID); err != nil {
			logger.Debug("no stale profile removed", "ssid", n.SSID, "error", err)
		}
	}

	args := []string{"device", "wifi", "connect"}
	if n.BSSID != "" {
		args = append(args, n.BSSID)
	} else {
		args = append(args, n.SSID)
	}
	if secured && password != "" {
		args = append(args, "password", password)
	}
	args = append(args, c.ifnameArgs()...)
	if n.BSSID != "" && n.SSID != "" {
		args = append(args, "name", n.SSID)
	}

	out, err := c.run(ctx, args...)
	if err != nil {
		return "", fmt.Errorf("connecting to %s: %w", n.SSID, err)
	}
	logger.Info("connected", "ssid", n.SSID, "bssid", n.BSSID, "interface", c.Interface)
	return out, nil
}

// Activate brings up a saved connection profile.
func (c *Client) Activate(ctx context.Context, name string) (string, error) {
	args := append([]string{"connection", "up", "id", name}, c.ifnameArgs()...)
	out, err := c.run(ctx, args...)
	if err != nil {
		return "", fmt.Errorf("activating %s: %w", name, err)
	}
	logger.Info("activated profile", "name", name, "interface", c.Interface)
	return out, nil
}

// Disconnect disconnects the bound interface, or the first connected Wi-Fi
// device when the client is not bound to one.
func (c *Client) Disconnect(ctx context.Context) (string, error) {
	iface := c.Interface
	if iface == "" {
		dev, err := c.ActiveWifiDevice(ctx)
		if err != nil {
			return "", fmt.Errorf("disconnecting: %w", err)
		}
		iface = dev.Name
	}
	out, err := c.run(ctx, "device", "disconnect", iface)
	if err != nil {
		return "", fmt.Errorf("disconnecting %s: %w", iface, err)
	}
	logger.Info("disconnected", "interface", iface)
	return out, nil
}

// Forget deletes the saved connection profile called name.
func (c *Client) Forget(ctx context.Context, name string) (string, error) {
	out, err := c.run(ctx, "connection", "delete", "id", name)
	if err != nil {
		return "", fmt.Errorf("forgetting %s: %w", name, err)
	}
	logger.Info("forgot profile", "name", name)
	return out, nil
}

// SavedProfiles lists the saved wireless connection profiles.
func (c *Client) SavedProfiles(ctx context.Context) ([]Profile, error) {
	out, err := c.run(ctx, "-t", "-f", strings.Join(profileFields, ","), "connection", "show")
	if err != nil {
		return nil, fmt.Errorf("listing connection profiles: %w", err)
	}
	return ParseProfiles(out), nil
}

// Devices lists every network device known to NetworkManager.
func (c *Client) Devices(ctx context.Context) ([]Device, error) {
	out, err := c.run(ctx, "-t", "-f", strings.Join(deviceStatusFields, ","), "device", "status")
	if err != nil {
		return nil, fmt.Errorf("listing devices: %w", err)
	}
	return ParseDevices(out), nil
}

// WifiDevices lists the Wi-Fi devices, restricted to the bound interface if set.
func (c *Client) WifiDevices(ctx context.Context) ([]Device, error) {
	devices, err := c.Devices(ctx)
	if err != nil {
		return nil, err
	}
	var wifi []Device
	for _, d := range devices {
		if !d.IsWifi() {
			continue
		}
		if c.Interface != "" && d.Name != c.Interface {
			continue
		}
		wifi = append(wifi, d)
	}
	return wifi, nil
}

// ActiveWifiDevice returns the first connected Wi-Fi device.
func (c *Client) ActiveWifiDevice(ctx context.Context) (Device, error) {
	devices, err := c.WifiDevices(ctx)
	if err != nil {
		return Device{}, err
	}
	for _, d := range devices {
		if d.Connected() {
			return d, nil
		}
	}
	return Device{}, ErrNoWifiDevice
}
