// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"errors"
	"fmt"
	"strings"

	"wifi-manager/internal/nmcli"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// --- Message Handlers ---
// These functions handle specific message types received by the model's Update function.

func handleWindowSizeMsg(m *Model, msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height

	listHeight := max(1, m.height-headerHeight-footerHeight-borderHeight)
	if !m.ready {
		m.viewport = viewport.New(max(1, m.width-2), listHeight)
		m.ready = true
	} else {
		m.viewport.Width = max(1, m.width-2)
		m.viewport.Height = listHeight
	}
	m.syncViewport()
}

func handleNetworksLoadedMsg(m *Model, msg networksLoadedMsg) tea.Cmd {
	if msg.err != nil {
		// Keep the previous scan on screen.
		m.scanErr = msg.err
	} else {
		m.scanErr = nil
		m.setNetworks(msg.networks)
	}
	m.scanNote = ""
	if msg.rescanErr != nil {
		m.scanNote = "rescan refused, showing cached results"
	}

	if m.currentState == stateScanning {
		m.currentState = stateBrowsing
	}
	m.syncViewport()
	return nil
}

// setNetworks replaces the list and keeps the cursor on the same SSID when
// it is still present.
func (m *Model) setNetworks(networks []nmcli.Network) {
	var selected string
	if m.cursor >= 0 && m.cursor < len(m.networks) {
		selected = m.networks[m.cursor].SSID
	}
	m.networks = networks
	m.cursor = 0
	for i, n := range networks {
		if n.SSID == selected {
			m.cursor = i
			break
		}
	}
}

func handleConnectResultMsg(m *Model, msg connectResultMsg) tea.Cmd {
	if msg.err == nil {
		m.showMessage(fmt.Sprintf("Connected to %s", msg.network.SSID), false)
		return scanCmd(m.client, m.timeout, false)
	}

	// A first attempt on a secured network fails when no usable credentials
	// are stored; ask for them.
	if !msg.withPassword && msg.network.Secured() {
		m.target = msg.network
		m.currentState = statePasswordInput
		return m.resetPasswordInput()
	}

	if msg.withPassword {
		m.showMessage("Error: "+errorText(msg.err), true)
	} else {
		m.showMessage(fmt.Sprintf("Failed to connect to %s: %s", msg.network.SSID, errorText(msg.err)), true)
	}
	return nil
}

func handleActionResultMsg(m *Model, msg actionResultMsg) tea.Cmd {
	if msg.err != nil {
		m.showMessage(fmt.Sprintf("%s failed: %s", msg.action, errorText(msg.err)), true)
	} else {
		m.showMessage(msg.success, false)
	}
	return scanCmd(m.client, m.timeout, false)
}

func handleInterfacesLoadedMsg(m *Model, msg interfacesLoadedMsg) tea.Cmd {
	switch {
	case msg.err != nil:
		m.showMessage("Error: "+errorText(msg.err), true)
	case len(msg.names) == 0:
		m.showMessage("No wireless interfaces found", true)
	default:
		m.interfaceChoices(msg.names)
		m.currentState = stateInterfaceSelect
	}
	return nil
}

// errorText extracts the external tool's own message when there is one.
func errorText(err error) string {
	var cmdErr *nmcli.CommandError
	if errors.As(err, &cmdErr) {
		return strings.TrimPrefix(cmdErr.Error(), "Error: ")
	}
	return err.Error()
}
