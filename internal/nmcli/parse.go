// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package nmcli

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// Field lists requested from nmcli. Parsers index fields in this order.
var (
	wifiListFields     = []string{"IN-USE", "SSID", "BSSID", "SECURITY", "SIGNAL", "CHAN"}
	profileFields      = []string{"NAME", "TYPE"}
	deviceStatusFields = []string{"DEVICE", "TYPE", "STATE", "CONNECTION"}
)

// SplitTerse splits one line of nmcli terse output. Fields are separated by
// ':'; a literal colon is written as "\:" and a literal backslash as "\\".
func SplitTerse(line string) []string {
	var fields []string
	var cur strings.Builder
	escaped := false
	for _, r := range line {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == ':':
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	if escaped {
		cur.WriteRune('\\')
	}
	return append(fields, cur.String())
}

// ParseNetworks parses `nmcli -t -f IN-USE,SSID,BSSID,SECURITY,SIGNAL,CHAN
// device wifi list`. Malformed lines and hidden (empty) SSIDs are skipped.
// Access points sharing an SSID collapse into one entry, preferring the one in
// use and then the strongest. The result is sorted in-use first, then by
// signal descending.
func ParseNetworks(output string) []Network {
	bySSID := make(map[string]int)
	var networks []Network

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		parts := SplitTerse(line)
		if len(parts) < len(wifiListFields) {
			continue
		}

		ssid := parts[1] // whitespace in SSIDs is significant
		if ssid == "" {
			continue
		}
		signal, err := strconv.Atoi(strings.TrimSpace(parts[4]))
		if err != nil {
			signal = 0
		}
		channel, _ := strconv.Atoi(strings.TrimSpace(parts[5]))
		security := strings.TrimSpace(parts[3])
		if security == "--" {
			security = ""
		}

		n := Network{
			SSID:     ssid,
			BSSID:    strings.TrimSpace(parts[2]),
			Security: security,
			Signal:   max(0, min(signal, 100)),
			Channel:  channel,
			InUse:    strings.TrimSpace(parts[0]) == "*",
		}

		if idx, seen := bySSID[ssid]; seen {
			prev := networks[idx]
			if n.InUse && !prev.InUse || n.InUse == prev.InUse && n.Signal > prev.Signal {
				networks[idx] = n
			}
			continue
		}
		bySSID[ssid] = len(networks)
		networks = append(networks, n)
	}

	SortNetworks(networks)
	return networks
}

// SortNetworks orders networks in use first, then by signal descending, then
// by SSID.
func SortNetworks(networks []Network) {
	slices.SortStableFunc(networks, func(a, b Network) int {
		if a.InUse != b.InUse {
			if a.InUse {
				return -1
			}
			return 1
		}
		if c := cmp.Compare(b.Signal, a.Signal); c != 0 {
			return c
		}
		return strings.Compare(a.SSID, b.SSID)
	})
}

// ParseProfiles parses `nmcli -t -f NAME,TYPE connection show` and keeps the
// wireless profiles.
func ParseProfiles(output string) []Profile {
	var profiles []Profile
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		parts := SplitTerse(line)
		if len(parts) < len(profileFields) || parts[0] == "" {
			continue
		}
		switch parts[1] {
		case "802-11-wireless", "wifi":
			profiles = append(profiles, Profile{Name: parts[0], Type: parts[1]})
		}
	}
	return profiles
}

// ParseDevices parses `nmcli -t -f DEVICE,TYPE,STATE,CONNECTION device status`.
func ParseDevices(output string) []Device {
	var devices []Device
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		parts := SplitTerse(line)
		if len(parts) < len(deviceStatusFields) || parts[0] == "" {
			continue
		}
		conn := parts[3]
		if conn == "--" {
			conn = ""
		}
		devices = append(devices, Device{
			Name:       parts[0],
			Type:       parts[1],
			State:      parts[2],
			Connection: conn,
		})
	}
	return devices
}

// MarkSaved sets Saved on every network whose SSID matches a profile name.
func MarkSaved(networks []Network, profiles []Profile) {
	names := make(map[string]struct{}, len(profiles))
	for _, p := range profiles {
		names[p.Name] = struct{}{}
	}
	for i := range networks {
		_, networks[i].Saved = names[networks[i].SSID]
	}
}
