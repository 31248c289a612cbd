// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package iface

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	name  string
	names []string
	err   error
	calls int
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Interfaces() ([]string, error) {
	s.calls++
	return s.names, s.err
}

func TestDiscover_FirstSuccessfulSourceWins(t *testing.T) {
	first := &stubSource{name: "a", names: []string{"wlan1", "wlan0", "wlan1"}}
	second := &stubSource{name: "b", names: []string{"ignored"}}
	d := &Discoverer{Sources: []Source{first, second}}

	names, err := d.Discover(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"wlan0", "wlan1"}, names)
	assert.Equal(t, 0, second.calls)
}

func TestDiscover_FallsBack(t *testing.T) {
	first := &stubSource{name: "nl80211", err: errors.New("not supported")}
	second := &stubSource{name: "netlink", names: []string{"wlp2s0"}}
	d := &Discoverer{Sources: []Source{first, second}}

	names, err := d.Discover(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"wlp2s0"}, names)
}

func TestDiscover_AllFail(t *testing.T) {
	d := &Discoverer{Sources: []Source{
		&stubSource{name: "nl80211", err: errors.New("no genl family")},
		&stubSource{name: "netlink", err: errors.New("permission denied")},
	}}
	_, err := d.Discover(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no genl family")
	assert.Contains(t, err.Error(), "permission denied")
}

func TestDiscover_CancelledContext(t *testing.T) {
	src := &stubSource{name: "a", names: []string{"wlan0"}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&Discoverer{Sources: []Source{src}}).Discover(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, src.calls)
}

func TestNetlinkSource_IsWireless(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "wlan0", "wireless"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "eth0"), 0o755))

	s := netlinkSource{sysClassNet: root}
	assert.True(t, s.isWireless("wlan0"))
	assert.False(t, s.isWireless("eth0"))
	assert.False(t, s.isWireless("missing"))
}
