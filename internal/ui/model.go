// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"time"

	"wifi-manager/internal/nmcli"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Options configures a Model.
type Options struct {
	Client     *nmcli.Client
	Discoverer InterfaceDiscoverer
	Timeout    time.Duration
	SSIDWidth  int
	NerdFont   bool
}

// Model is the Bubble Tea model of the network picker.
type Model struct {
	keymap     KeyMap
	client     *nmcli.Client
	discoverer InterfaceDiscoverer
	timeout    time.Duration
	ssidWidth  int
	nerdFont   bool
	clipboard  func(string) error

	currentState state
	width        int
	height       int
	ready        bool
	viewport     viewport.Model
	spinner      spinner.Model

	// Most recent successful scan. A failed scan leaves it untouched.
	networks []nmcli.Network
	cursor   int
	scanErr  error
	scanNote string

	// Network the password prompt or action menu refers to.
	target nmcli.Network

	passwordInput textinput.Model
	showPassword  bool
	formError     error

	actions      []action
	actionCursor int

	interfaces  []string // first entry is allInterfacesLabel
	ifaceCursor int

	processingText string
	message        string
	messageIsError bool
}

// InitialModel builds the model. The first scan starts in Init.
func InitialModel(opts Options) *Model {
	width := opts.SSIDWidth
	if width <= 0 {
		width = 25
	}
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = statusStyle

	return &Model{
		keymap:         DefaultKeyMap,
		client:         opts.Client,
		discoverer:     opts.Discoverer,
		timeout:        opts.Timeout,
		ssidWidth:      width,
		nerdFont:       opts.NerdFont,
		clipboard:      clipboard.WriteAll,
		currentState:   stateScanning,
		spinner:        s,
		passwordInput:  createPasswordInput(),
		processingText: "Scanning...",
	}
}

// Interface returns the interface the model currently operates on ("" = all).
func (m *Model) Interface() string {
	return m.client.Interface
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, scanCmd(m.client, m.timeout, false))
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		handleWindowSizeMsg(m, msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.ForceQuit) {
			return m, tea.Quit
		}
		switch m.currentState {
		case stateBrowsing:
			cmds = append(cmds, m.handleBrowsingKeys(msg)...)
		case statePasswordInput:
			cmds = append(cmds, m.handlePasswordKeys(msg)...)
		case stateActionMenu:
			cmds = append(cmds, m.handleActionMenuKeys(msg)...)
		case stateInterfaceSelect:
			cmds = append(cmds, m.handleInterfaceSelectKeys(msg)...)
		case stateMessage:
			m.dismissMessage()
		case stateScanning, stateProcessing:
			// Waiting on the external tool; only ctrl+c is honoured.
		}

	case networksLoadedMsg:
		cmds = append(cmds, handleNetworksLoadedMsg(m, msg))
	case connectResultMsg:
		cmds = append(cmds, handleConnectResultMsg(m, msg))
	case actionResultMsg:
		cmds = append(cmds, handleActionResultMsg(m, msg))
	case interfacesLoadedMsg:
		cmds = append(cmds, handleInterfacesLoadedMsg(m, msg))
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) View() string {
	if !m.ready {
		return statusStyle.Render("Initializing...")
	}

	header := m.renderHeader()
	var body, footer string
	switch m.currentState {
	case statePasswordInput:
		body, footer = m.renderPasswordView()
	case stateActionMenu:
		body, footer = m.renderActionMenuView()
	case stateInterfaceSelect:
		body, footer = m.renderInterfaceSelectView()
	default:
		body, footer = m.renderNetworkListView()
	}
	return header + "\n" + body + "\n" + footer
}
