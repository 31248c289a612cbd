// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"fmt"
	"slices"

	"wifi-manager/internal/logger"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// --- Update Handlers ---
// These methods handle key presses and logic for specific UI states.

// wrap moves idx by delta within [0, n), wrapping at both ends.
func wrap(idx, delta, n int) int {
	if n <= 0 {
		return 0
	}
	return ((idx+delta)%n + n) % n
}

func (m *Model) handleBrowsingKeys(msg tea.KeyMsg) []tea.Cmd {
	var cmds []tea.Cmd
	last := len(m.networks) - 1

	switch {
	case key.Matches(msg, m.keymap.Quit):
		return []tea.Cmd{tea.Quit}
	case key.Matches(msg, m.keymap.Up):
		m.cursor = wrap(m.cursor, -1, len(m.networks))
	case key.Matches(msg, m.keymap.Down):
		m.cursor = wrap(m.cursor, 1, len(m.networks))
	case key.Matches(msg, m.keymap.Home):
		m.cursor = 0
	case key.Matches(msg, m.keymap.End):
		m.cursor = max(0, last)
	case key.Matches(msg, m.keymap.PgUp):
		m.cursor = max(0, m.cursor-m.pageSize())
	case key.Matches(msg, m.keymap.PgDown):
		m.cursor = max(0, min(last, m.cursor+m.pageSize()))
	case key.Matches(msg, m.keymap.Rescan):
		m.startScan(true)
		cmds = append(cmds, scanCmd(m.client, m.timeout, true))
	case key.Matches(msg, m.keymap.SwitchInterface):
		if m.discoverer == nil {
			m.showMessage("Interface discovery is not available", true)
			break
		}
		m.startProcessing("Looking for wireless interfaces...")
		cmds = append(cmds, discoverInterfacesCmd(m.discoverer, m.timeout))
	case key.Matches(msg, m.keymap.CopySSID):
		m.copySelectedSSID()
	case key.Matches(msg, m.keymap.Enter):
		cmds = append(cmds, m.selectNetwork())
	}
	m.syncViewport()
	return cmds
}

// selectNetwork decides what Enter on the highlighted network does: open the
// action menu for active or saved networks, otherwise try to connect without
// credentials first.
func (m *Model) selectNetwork() tea.Cmd {
	if m.cursor < 0 || m.cursor >= len(m.networks) {
		return nil
	}
	n := m.networks[m.cursor]
	m.target = n

	switch {
	case n.InUse:
		m.openActionMenu(actionDisconnect, actionForget, actionCancel)
		return nil
	case n.Saved:
		m.openActionMenu(actionConnect, actionForget, actionCancel)
		return nil
	}

	m.startProcessing(fmt.Sprintf("Connecting to %s...", n.SSID))
	return connectCmd(m.client, m.timeout, n, "")
}

func (m *Model) copySelectedSSID() {
	if m.cursor < 0 || m.cursor >= len(m.networks) {
		return
	}
	ssid := m.networks[m.cursor].SSID
	if err := m.clipboard(ssid); err != nil {
		logger.Warn("clipboard unavailable", "error", err)
		m.showMessage("Could not copy: "+err.Error(), true)
		return
	}
	m.showMessage(fmt.Sprintf("Copied %s", ssid), false)
}

func (m *Model) openActionMenu(actions ...action) {
	m.actions = actions
	m.actionCursor = 0
	m.currentState = stateActionMenu
}

func (m *Model) handlePasswordKeys(msg tea.KeyMsg) []tea.Cmd {
	switch {
	case key.Matches(msg, m.keymap.Esc):
		m.passwordInput.Blur()
		m.currentState = stateBrowsing
		return nil
	case key.Matches(msg, m.keymap.TogglePassword):
		m.togglePasswordVisibility()
		return nil
	case key.Matches(msg, m.keymap.Enter):
		pw := m.passwordInput.Value()
		if err := validatePassword(pw); err != nil {
			m.formError = err
			return nil
		}
		m.passwordInput.Blur()
		m.startProcessing("Verifying password...")
		return []tea.Cmd{connectCmd(m.client, m.timeout, m.target, pw)}
	}

	m.formError = nil
	var cmd tea.Cmd
	m.passwordInput, cmd = m.passwordInput.Update(msg)
	return []tea.Cmd{cmd}
}

func (m *Model) handleActionMenuKeys(msg tea.KeyMsg) []tea.Cmd {
	switch {
	case key.Matches(msg, m.keymap.Esc):
		m.currentState = stateBrowsing
	case key.Matches(msg, m.keymap.Up):
		m.actionCursor = wrap(m.actionCursor, -1, len(m.actions))
	case key.Matches(msg, m.keymap.Down):
		m.actionCursor = wrap(m.actionCursor, 1, len(m.actions))
	case key.Matches(msg, m.keymap.Enter):
		if m.actionCursor < 0 || m.actionCursor >= len(m.actions) {
			return nil
		}
		return []tea.Cmd{m.runAction(m.actions[m.actionCursor])}
	}
	return nil
}

func (m *Model) runAction(a action) tea.Cmd {
	logger.Debug("action selected", "action", a.String(), "ssid", m.target.SSID)
	switch a {
	case actionConnect:
		m.startProcessing(fmt.Sprintf("Connecting to %s...", m.target.SSID))
		return activateCmd(m.client, m.timeout, m.target)
	case actionDisconnect:
		m.startProcessing("Disconnecting...")
		return disconnectCmd(m.client, m.timeout)
	case actionForget:
		m.startProcessing(fmt.Sprintf("Forgetting %s...", m.target.SSID))
		return forgetCmd(m.client, m.timeout, m.target.SSID)
	default:
		m.currentState = stateBrowsing
		return nil
	}
}

func (m *Model) handleInterfaceSelectKeys(msg tea.KeyMsg) []tea.Cmd {
	switch {
	case key.Matches(msg, m.keymap.Esc):
		m.currentState = stateBrowsing
	case key.Matches(msg, m.keymap.Up):
		m.ifaceCursor = wrap(m.ifaceCursor, -1, len(m.interfaces))
	case key.Matches(msg, m.keymap.Down):
		m.ifaceCursor = wrap(m.ifaceCursor, 1, len(m.interfaces))
	case key.Matches(msg, m.keymap.Enter):
		if m.ifaceCursor < 0 || m.ifaceCursor >= len(m.interfaces) {
			return nil
		}
		name := m.interfaces[m.ifaceCursor]
		if name == allInterfacesLabel {
			name = ""
		}
		logger.Info("switching interface", "from", m.client.Interface, "to", name)
		m.client = m.client.WithInterface(name)
		// Results from the previous interface no longer apply.
		m.networks = nil
		m.cursor = 0
		m.startScan(true)
		return []tea.Cmd{scanCmd(m.client, m.timeout, true)}
	}
	return nil
}

func (m *Model) startScan(rescan bool) {
	m.currentState = stateScanning
	if rescan {
		m.processingText = "Scanning..."
	} else {
		m.processingText = "Refreshing..."
	}
}

func (m *Model) startProcessing(text string) {
	m.currentState = stateProcessing
	m.processingText = text
}

func (m *Model) showMessage(text string, isError bool) {
	m.currentState = stateMessage
	m.message = text
	m.messageIsError = isError
}

func (m *Model) dismissMessage() {
	m.message = ""
	m.messageIsError = false
	m.currentState = stateBrowsing
}

// interfaceChoices builds the picker entries and places the cursor on the
// interface currently in use.
func (m *Model) interfaceChoices(names []string) {
	m.interfaces = append([]string{allInterfacesLabel}, names...)
	m.ifaceCursor = 0
	if current := m.client.Interface; current != "" {
		if idx := slices.Index(m.interfaces, current); idx != -1 {
			m.ifaceCursor = idx
		}
	}
}
