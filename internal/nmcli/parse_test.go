// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package nmcli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleWifiList = ` :Cafe Guest:AA\:BB\:CC\:00\:00\:01::54:6
*:Home:AA\:BB\:CC\:00\:00\:02:WPA2:71:36
 :Home:AA\:BB\:CC\:00\:00\:03:WPA2:88:149
 ::AA\:BB\:CC\:00\:00\:04:WPA2:90:1
 :Office\:5G:AA\:BB\:CC\:00\:00\:05:WPA2 WPA3:88:44
 :  spaced  :AA\:BB\:CC\:00\:00\:06:WPA1:12:11
garbage line
 :Weak:AA\:BB\:CC\:00\:00\:07:WEP:n/a:3
`

func TestSplitTerse(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"plain", "a:b:c", []string{"a", "b", "c"}},
		{"escaped colon", `x:AA\:BB:y`, []string{"x", "AA:BB", "y"}},
		{"escaped backslash", `a\\:b`, []string{`a\`, "b"}},
		{"empty fields", "::", []string{"", "", ""}},
		{"trailing backslash", `a\`, []string{`a\`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitTerse(tt.line))
		})
	}
}

func TestParseNetworks(t *testing.T) {
	networks := ParseNetworks(sampleWifiList)
	require.Len(t, networks, 5)

	// In-use entry wins the duplicate SSID even though the other AP is stronger.
	assert.Equal(t, "Home", networks[0].SSID)
	assert.True(t, networks[0].InUse)
	assert.Equal(t, "AA:BB:CC:00:00:02", networks[0].BSSID)
	assert.Equal(t, 71, networks[0].Signal)
	assert.Equal(t, 36, networks[0].Channel)

	assert.Equal(t, "Office:5G", networks[1].SSID)
	assert.Equal(t, "WPA2 WPA3", networks[1].Security)
	assert.Equal(t, 88, networks[1].Signal)

	assert.Equal(t, "Cafe Guest", networks[2].SSID)
	assert.Empty(t, networks[2].Security)
	assert.False(t, networks[2].Secured())

	assert.Equal(t, "  spaced  ", networks[3].SSID, "SSID whitespace is preserved")

	assert.Equal(t, "Weak", networks[4].SSID)
	assert.Equal(t, 0, networks[4].Signal, "unparseable signal becomes 0")
}

func TestParseNetworks_DuplicatePrefersStrongest(t *testing.T) {
	out := " :Lab:AA\\:01:WPA2:40:1\n :Lab:AA\\:02:WPA2:80:6\n :Lab:AA\\:03:WPA2:60:11\n"
	networks := ParseNetworks(out)
	require.Len(t, networks, 1)
	assert.Equal(t, "AA:02", networks[0].BSSID)
}

func TestParseNetworks_Empty(t *testing.T) {
	assert.Empty(t, ParseNetworks(""))
	assert.Empty(t, ParseNetworks("\n\n"))
}

func TestParseProfiles(t *testing.T) {
	out := "Home:802-11-wireless\nWired connection 1:802-3-ethernet\nOffice\\:5G:802-11-wireless\nlo:loopback\n"
	profiles := ParseProfiles(out)
	assert.Equal(t, []Profile{
		{Name: "Home", Type: "802-11-wireless"},
		{Name: "Office:5G", Type: "802-11-wireless"},
	}, profiles)
}

func TestParseDevices(t *testing.T) {
	out := "wlan0:wifi:connected:Home\neth0:ethernet:unavailable:--\np2p-dev-wlan0:wifi-p2p:disconnected:--\nwlan1:wifi:disconnected:--\n"
	devices := ParseDevices(out)
	require.Len(t, devices, 4)

	assert.Equal(t, Device{Name: "wlan0", Type: "wifi", State: "connected", Connection: "Home"}, devices[0])
	assert.True(t, devices[0].Connected())
	assert.True(t, devices[0].IsWifi())
	assert.Empty(t, devices[1].Connection)
	assert.False(t, devices[2].IsWifi())
	assert.False(t, devices[3].Connected())
}

func TestParseNetworks_DashSSIDIsARealNetwork(t *testing.T) {
	networks := ParseNetworks(` :--:AA\:BB\:CC\:00\:00\:0A:WPA2:40:6
 ::AA\:BB\:CC\:00\:00\:0B:WPA2:90:1
`)
	require.Len(t, networks, 1)
	assert.Equal(t, "--", networks[0].SSID)
	assert.True(t, networks[0].Secured())
}

func TestMarkSaved(t *testing.T) {
	networks := []Network{{SSID: "Home"}, {SSID: "Cafe"}}
	MarkSaved(networks, []Profile{{Name: "Home"}})
	assert.True(t, networks[0].Saved)
	assert.False(t, networks[1].Saved)
}

func TestSignalBars(t *testing.T) {
	assert.Equal(t, "____", SignalBars(0))
	assert.Equal(t, "▂___", SignalBars(20))
	assert.Equal(t, "▂▄__", SignalBars(50))
	assert.Equal(t, "▂▄▆_", SignalBars(70))
	assert.Equal(t, "▂▄▆█", SignalBars(100))
}

func TestIsSecured(t *testing.T) {
	assert.True(t, IsSecured("WPA2"))
	assert.True(t, IsSecured("WEP"))
	assert.True(t, IsSecured("WPA1 802.1X"))
	assert.False(t, IsSecured(""))
	assert.False(t, IsSecured("--"))
	assert.False(t, IsSecured("OWE"))
	assert.True(t, IsSecured("WPA3"))
}
