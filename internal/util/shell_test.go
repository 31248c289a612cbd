// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuoteArgForShell(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"nmcli", "nmcli"},
		{"IN-USE,SSID,BSSID", "IN-USE,SSID,BSSID"},
		{"", "''"},
		{"My Home", "'My Home'"},
		{"it's", `'it'\''s'`},
		{"$HOME", "'$HOME'"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, QuoteArgForShell(tt.in), "input %q", tt.in)
	}
}

func TestRedactArgs(t *testing.T) {
	args := []string{"device", "wifi", "connect", "Cafe", "password", "hunter2", "ifname", "wlan0"}
	got := RedactArgs(args, "password")

	assert.Equal(t, []string{"device", "wifi", "connect", "Cafe", "password", RedactedValue, "ifname", "wlan0"}, got)
	assert.Equal(t, "hunter2", args[5], "input slice must not be modified")
}

func TestRedactArgs_TrailingKeyword(t *testing.T) {
	got := RedactArgs([]string{"connect", "password"}, "password")
	assert.Equal(t, []string{"connect", "password"}, got)
}

func TestCommandLine(t *testing.T) {
	got := CommandLine("nmcli", []string{"connection", "delete", "id", "Joe's Wi-Fi"})
	assert.Equal(t, `nmcli connection delete id 'Joe'\''s Wi-Fi'`, got)
}
