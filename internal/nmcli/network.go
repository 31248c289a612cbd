// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package nmcli wraps the NetworkManager command-line client. It builds the
// fixed argument patterns for scanning, connecting, disconnecting and
// forgetting networks, and parses the tool's terse (-t) output into records.
package nmcli

import "strings"

// Network is one row of a Wi-Fi scan.
type Network struct {
	SSID     string
	BSSID    string
	Security string // as reported by nmcli, e.g. "WPA2 WPA3"; empty for open networks
	Signal   int    // 0-100
	Channel  int
	InUse    bool
	Saved    bool // a connection profile with this name exists
}

// Secured reports whether connecting requires credentials.
func (n Network) Secured() bool {
	return IsSecured(n.Security)
}

// IsSecured reports whether a nmcli SECURITY value denotes a network that
// takes a password. OWE (Enhanced Open) encrypts without one.
func IsSecured(security string) bool {
	s := strings.ToUpper(security)
	for _, marker := range []string{"WPA", "RSN", "WEP", "802.1X"} {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}

// SecurityLabel returns a display label for the security column.
func (n Network) SecurityLabel() string {
	if strings.TrimSpace(n.Security) == "" || n.Security == "--" {
		return "open"
	}
	return n.Security
}

// Bars renders the signal as four cells, in the style nmcli uses.
func (n Network) Bars() string {
	return SignalBars(n.Signal)
}

// SignalBars renders a 0-100 signal strength as four cells.
func SignalBars(signal int) string {
	cells := []rune("▂▄▆█")
	lit := 0
	switch {
	case signal > 80:
		lit = 4
	case signal > 55:
		lit = 3
	case signal > 30:
		lit = 2
	case signal > 5:
		lit = 1
	}
	var b strings.Builder
	for i, c := range cells {
		if i < lit {
			b.WriteRune(c)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

// SignalGlyph returns a Nerd Font Wi-Fi glyph for the signal strength.
func SignalGlyph(signal int) string {
	switch {
	case signal <= 20:
		return "󰤯"
	case signal <= 40:
		return "󰤟"
	case signal <= 60:
		return "󰤢"
	case signal <= 80:
		return "󰤥"
	default:
		return "󰤨"
	}
}

// Profile is a saved NetworkManager connection.
type Profile struct {
	Name string
	Type string
}

// Device is one row of `nmcli device status`.
type Device struct {
	Name       string
	Type       string
	State      string
	Connection string
}

// IsWifi reports whether the device is a Wi-Fi device.
func (d Device) IsWifi() bool {
	return d.Type == "wifi" || d.Type == "802-11-wireless"
}

// Connected reports whether the device has an active connection.
func (d Device) Connected() bool {
	return strings.HasPrefix(d.State, "connected")
}
