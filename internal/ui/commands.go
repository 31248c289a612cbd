// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package ui's commands.go file contains Bubble Tea commands that invoke the
// external network-management tool. Each command runs one request/response
// exchange off the UI goroutine and reports back with a message.

package ui

import (
	"context"
	"fmt"
	"time"

	"wifi-manager/internal/logger"
	"wifi-manager/internal/nmcli"

	tea "github.com/charmbracelet/bubbletea"
)

// InterfaceDiscoverer lists wireless interface names.
type InterfaceDiscoverer interface {
	Discover(ctx context.Context) ([]string, error)
}

func withTimeout(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), timeout)
}

// scanCmd lists networks, optionally asking for a fresh scan first. A failed
// rescan does not prevent listing: NetworkManager refuses rescans issued in
// quick succession but still has recent results.
func scanCmd(client *nmcli.Client, timeout time.Duration, rescan bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout(timeout)
		defer cancel()

		var rescanErr error
		if rescan {
			if err := client.Rescan(ctx); err != nil {
				logger.Warn("rescan failed, listing cached results", "error", err)
				rescanErr = err
			}
		}
		networks, err := client.Networks(ctx)
		return networksLoadedMsg{networks: networks, err: err, rescanErr: rescanErr}
	}
}

func connectCmd(client *nmcli.Client, timeout time.Duration, n nmcli.Network, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout(timeout)
		defer cancel()

		_, err := client.Connect(ctx, n, password)
		return connectResultMsg{network: n, withPassword: password != "", err: err}
	}
}

func activateCmd(client *nmcli.Client, timeout time.Duration, n nmcli.Network) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout(timeout)
		defer cancel()

		_, err := client.Activate(ctx, n.SSID)
		return connectResultMsg{network: n, err: err}
	}
}

func disconnectCmd(client *nmcli.Client, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout(timeout)
		defer cancel()

		_, err := client.Disconnect(ctx)
		return actionResultMsg{action: actionDisconnect, success: "Disconnected", err: err}
	}
}

func forgetCmd(client *nmcli.Client, timeout time.Duration, name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout(timeout)
		defer cancel()

		_, err := client.Forget(ctx, name)
		return actionResultMsg{action: actionForget, success: fmt.Sprintf("Forgot %s", name), err: err}
	}
}

func discoverInterfacesCmd(d InterfaceDiscoverer, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout(timeout)
		defer cancel()

		names, err := d.Discover(ctx)
		return interfacesLoadedMsg{names: names, err: err}
	}
}
