// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

// state represents the different views or modes of the TUI.
type state int

const (
	stateScanning state = iota
	stateBrowsing
	statePasswordInput
	stateActionMenu
	stateProcessing
	stateMessage
	stateInterfaceSelect
)

func (s state) String() string {
	switch s {
	case stateScanning:
		return "scanning"
	case stateBrowsing:
		return "browsing"
	case statePasswordInput:
		return "password"
	case stateActionMenu:
		return "actions"
	case stateProcessing:
		return "processing"
	case stateMessage:
		return "message"
	case stateInterfaceSelect:
		return "interfaces"
	default:
		return "unknown"
	}
}

// action is an entry of the per-network action menu.
type action int

const (
	actionConnect action = iota
	actionDisconnect
	actionForget
	actionCancel
)

func (a action) String() string {
	switch a {
	case actionConnect:
		return "Connect"
	case actionDisconnect:
		return "Disconnect"
	case actionForget:
		return "Forget"
	default:
		return "Cancel"
	}
}

const (
	headerHeight = 1 // Title line.
	footerHeight = 1 // Minimum; the rendered footer decides the real height.
	borderHeight = 2 // Top and bottom border of the list box.

	allInterfacesLabel = "All interfaces"
	passwordCharLimit  = 64 // 63-character passphrase or 64 hex digit raw PSK.
)
