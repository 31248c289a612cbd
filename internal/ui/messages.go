// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package ui's messages.go file defines the message types used in the Bubble Tea
// Model-View-Update architecture. Each message carries the result of one
// external tool invocation back into Update.

package ui

import "wifi-manager/internal/nmcli"

// Scan results. rescanErr is informational: the list may still be fresh.
type networksLoadedMsg struct {
	networks  []nmcli.Network
	err       error
	rescanErr error
}

// Result of a connect attempt, with or without a password, or of activating
// a saved profile.
type connectResultMsg struct {
	network      nmcli.Network
	withPassword bool
	err          error
}

// Result of disconnect / forget.
type actionResultMsg struct {
	action  action
	success string
	err     error
}

type interfacesLoadedMsg struct {
	names []string
	err   error
}
