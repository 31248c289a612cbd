// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"fmt"
	"strings"

	"wifi-manager/internal/nmcli"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// --- View Helpers ---

const (
	ellipsis      = "..."
	securityWidth = 10
)

// fitSSID truncates ssid to width terminal cells, marking the cut with an
// ellipsis, and pads shorter names so columns line up.
func fitSSID(ssid string, width int) string {
	if runewidth.StringWidth(ssid) > width {
		ssid = runewidth.Truncate(ssid, width, ellipsis)
	}
	return runewidth.FillRight(ssid, width)
}

func isTruncated(ssid string, width int) bool {
	return runewidth.StringWidth(ssid) > width
}

// formatNetworkRow renders one list row: active marker, signal, SSID, signal
// percentage, security and saved marker.
func formatNetworkRow(n nmcli.Network, ssidWidth int, nerdFont bool) string {
	active := "  "
	signal := n.Bars()
	if n.InUse {
		active = "* "
	}
	if nerdFont {
		signal = nmcli.SignalGlyph(n.Signal)
		if n.InUse {
			active = " "
		}
	}

	security := runewidth.FillRight(runewidth.Truncate(n.SecurityLabel(), securityWidth, ""), securityWidth)
	saved := ""
	if n.Saved && !n.InUse {
		saved = savedStyle.Render("saved")
	}
	return fmt.Sprintf("%s%s %s %3d%% %s %s", active, signal, fitSSID(n.SSID, ssidWidth), n.Signal, security, saved)
}

func (m *Model) renderNetworkLines() string {
	if len(m.networks) == 0 {
		if m.currentState == stateScanning {
			return dimStyle.Render("  Scanning for networks...")
		}
		return dimStyle.Render("  No networks found. Press r to rescan.")
	}

	lines := make([]string, len(m.networks))
	for i, n := range m.networks {
		lines[i] = rowStyle(n, i == m.cursor).Render(formatNetworkRow(n, m.ssidWidth, m.nerdFont))
	}
	return strings.Join(lines, "\n")
}

// rowStyle keeps the in-use colour on the highlighted row.
func rowStyle(n nmcli.Network, selected bool) lipgloss.Style {
	switch {
	case selected && n.InUse:
		return selectedRowStyle.Inherit(inUseStyle)
	case selected:
		return selectedRowStyle
	case n.InUse:
		return inUseStyle
	default:
		return lipgloss.NewStyle()
	}
}

// syncViewport refreshes the list content and scrolls so the cursor row is
// visible.
func (m *Model) syncViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderNetworkLines())
	switch {
	case m.cursor < m.viewport.YOffset:
		m.viewport.SetYOffset(m.cursor)
	case m.cursor >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

func (m *Model) pageSize() int {
	if m.ready && m.viewport.Height > 0 {
		return m.viewport.Height
	}
	return 10
}

func (m *Model) renderHeader() string {
	iface := m.client.Interface
	if iface == "" {
		iface = "all interfaces"
	}
	return titleStyle.Render("Wi-Fi Networks") + " " + interfaceStyle.Render("["+iface+"]")
}

// renderHelp joins key bindings into a footer line.
func renderHelp(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, footerKeyStyle.Render(h.Key)+" "+footerDescStyle.Render(h.Desc))
	}
	return strings.Join(parts, footerSeparatorStyle.Render(" | "))
}

func (m *Model) listBox() string {
	m.syncViewport()
	return mainContentBorderStyle.Width(max(1, m.width-2)).Render(m.viewport.View())
}

// fitList sizes the list so header, bordered list and footer fill the
// window exactly. The footer wraps, so its height is only known once rendered.
func (m *Model) fitList(footer string) {
	m.viewport.Height = max(1, m.height-headerHeight-borderHeight-max(footerHeight, lipgloss.Height(footer)))
}

func (m *Model) popup(content string) string {
	height := m.viewport.Height + borderHeight
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, popupStyle.Render(content))
}

// --- State-Specific View Renderers ---
// These functions generate the body and footer content for specific UI states.

func (m *Model) renderNetworkListView() (string, string) {
	footer := strings.Builder{}
	switch m.currentState {
	case stateScanning, stateProcessing:
		footer.WriteString(m.spinner.View() + " " + statusStyle.Render(m.processingText))
	case stateMessage:
		style := successStyle
		if m.messageIsError {
			style = errorStyle
		}
		footer.WriteString(style.Render(m.message) + dimStyle.Render(" (press any key)"))
	default:
		if m.scanErr != nil {
			footer.WriteString(errorStyle.Render("Scan failed: "+errorText(m.scanErr)) + "\n")
		} else if m.scanNote != "" {
			footer.WriteString(dimStyle.Render(m.scanNote) + "\n")
		}
		if m.cursor >= 0 && m.cursor < len(m.networks) && isTruncated(m.networks[m.cursor].SSID, m.ssidWidth) {
			footer.WriteString(footerDescStyle.Render("Full SSID: "+m.networks[m.cursor].SSID) + footerSeparatorStyle.Render(" | "))
		}
		footer.WriteString(renderHelp(m.keymap.Up, m.keymap.Down, m.keymap.Enter, m.keymap.Rescan, m.keymap.SwitchInterface, m.keymap.CopySSID, m.keymap.Quit))
	}
	rendered := lipgloss.NewStyle().Width(m.width).Render(footer.String())
	m.fitList(rendered)
	return m.listBox(), rendered
}

func (m *Model) renderPasswordView() (string, string) {
	content := strings.Builder{}
	content.WriteString(titleStyle.Render(fmt.Sprintf("Connect to %s", m.target.SSID)) + "\n\n")
	content.WriteString("Password: " + m.passwordInput.View() + "\n")
	if m.formError != nil {
		content.WriteString(errorStyle.Render(m.formError.Error()) + "\n")
	}
	visibility := "hidden"
	if m.showPassword {
		visibility = "visible"
	}
	content.WriteString(dimStyle.Render(fmt.Sprintf("(%s, %s security)", visibility, m.target.SecurityLabel())))

	help := renderHelp(m.keymap.Enter, m.keymap.TogglePassword, m.keymap.Esc)
	m.fitList(help)
	return m.popup(content.String()), help
}

func (m *Model) renderActionMenuView() (string, string) {
	content := strings.Builder{}
	content.WriteString(titleStyle.Render(m.target.SSID) + "\n\n")
	for i, a := range m.actions {
		label := " " + a.String() + " "
		if i == m.actionCursor {
			label = selectedActionStyle.Render(label)
		}
		content.WriteString(label + "\n")
	}
	help := renderHelp(m.keymap.Up, m.keymap.Down, key.NewBinding(key.WithHelp("enter", "select")), m.keymap.Esc)
	m.fitList(help)
	return m.popup(strings.TrimRight(content.String(), "\n")), help
}

func (m *Model) renderInterfaceSelectView() (string, string) {
	content := strings.Builder{}
	content.WriteString(titleStyle.Render("Wireless interface") + "\n\n")
	for i, name := range m.interfaces {
		cursor := "  "
		if i == m.ifaceCursor {
			cursor = cursorStyle.Render("> ")
		}
		content.WriteString(cursor + name + "\n")
	}
	help := renderHelp(m.keymap.Up, m.keymap.Down, key.NewBinding(key.WithHelp("enter", "use")), m.keymap.Esc)
	m.fitList(help)
	return m.popup(strings.TrimRight(content.String(), "\n")), help
}
