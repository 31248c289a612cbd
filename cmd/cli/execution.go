// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"wifi-manager/internal/config"
	"wifi-manager/internal/iface"
	"wifi-manager/internal/logger"
	"wifi-manager/internal/nmcli"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// withSpinner runs fn while a spinner with the given suffix is shown on stderr.
func withSpinner[T any](suffix string, fn func() (T, error)) (T, error) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	_ = s.Color("cyan")
	s.Suffix = " " + suffix
	s.Start()
	defer s.Stop()
	return fn()
}

func runList(ctx context.Context, rescan bool) error {
	ctx, cancel := commandContext(ctx)
	defer cancel()

	if rescan {
		_, err := withSpinner("Scanning...", func() (struct{}, error) {
			return struct{}{}, client.Rescan(ctx)
		})
		if err != nil {
			// NetworkManager refuses back-to-back rescans; the cached list is still useful.
			logger.Warn("rescan failed, listing cached results", "error", err)
			warnColor.Fprintf(os.Stderr, "Warning: rescan failed: %s\n", errorText(err))
		}
	}

	networks, err := withSpinner("Loading networks...", func() ([]nmcli.Network, error) {
		return client.Networks(ctx)
	})
	if err != nil {
		return err
	}
	if len(networks) == 0 {
		fmt.Println("No Wi-Fi networks found.")
		return nil
	}
	printNetworks(os.Stdout, networks)
	return nil
}

// printNetworks writes the network table. SSIDs are padded by display width
// so that wide characters keep the columns aligned.
func printNetworks(w io.Writer, networks []nmcli.Network) {
	width := len("SSID")
	for _, n := range networks {
		width = max(width, runewidth.StringWidth(n.SSID))
	}

	fmt.Fprintf(w, "  %s %-17s %4s %-4s %-10s %4s\n", runewidth.FillRight("SSID", width), "BSSID", "SIG", "BARS", "SECURITY", "CHAN")
	for _, n := range networks {
		marker := "  "
		if n.InUse {
			marker = statusUpColor.Sprint("* ")
		}
		line := fmt.Sprintf("%s %-17s %3d%% %-4s %-10s %4d",
			runewidth.FillRight(n.SSID, width), n.BSSID, n.Signal, n.Bars(), n.SecurityLabel(), n.Channel)
		if n.InUse {
			line = statusUpColor.Sprint(line)
		}
		if n.Saved {
			line += " " + savedMarkerColor.Sprint("saved")
		}
		fmt.Fprintln(w, marker+line)
	}
}

func runStatus(ctx context.Context) error {
	ctx, cancel := commandContext(ctx)
	defer cancel()

	devices, err := withSpinner("Reading device status...", func() ([]nmcli.Device, error) {
		return client.WifiDevices(ctx)
	})
	if err != nil {
		return err
	}
	if len(devices) == 0 {
		if client.Interface != "" {
			return fmt.Errorf("%s is not a Wi-Fi device known to NetworkManager", client.Interface)
		}
		fmt.Println("No Wi-Fi devices found.")
		return nil
	}

	for _, d := range devices {
		var link *iface.LinkInfo
		if d.Connected() {
			info, err := iface.Link(d.Name)
			switch {
			case err == nil:
				link = &info
			case errors.Is(err, iface.ErrNotAssociated):
			default:
				logger.Debug("nl80211 link info unavailable", "interface", d.Name, "error", err)
			}
		}
		printDevice(os.Stdout, d, link)
	}
	return nil
}

func printDevice(w io.Writer, d nmcli.Device, link *iface.LinkInfo) {
	state := d.State
	if state == "" {
		state = "unknown"
	}
	stateColor := statusDownColor
	if d.Connected() {
		stateColor = statusUpColor
	}

	fmt.Fprintf(w, "%s %s", identifierColor.Sprint(d.Name), stateColor.Sprintf("[%s]", state))
	if d.Connection != "" {
		fmt.Fprintf(w, " %s", d.Connection)
	}
	fmt.Fprintln(w)

	if link == nil {
		return
	}
	details := []string{}
	if link.SSID != "" {
		details = append(details, "ssid "+link.SSID)
	}
	if link.BSSID != "" {
		details = append(details, "bssid "+link.BSSID)
	}
	if link.Frequency != 0 {
		details = append(details, fmt.Sprintf("%d MHz", link.Frequency))
	}
	if link.SignalDBm != 0 {
		details = append(details, fmt.Sprintf("signal %d dBm", link.SignalDBm))
	}
	if len(details) > 0 {
		fmt.Fprintf(w, "  %s\n", strings.Join(details, ", "))
	}
}

func runConnect(ctx context.Context, ssid, password string, ask bool) error {
	ctx, cancel := commandContext(ctx)
	defer cancel()

	networks, err := withSpinner("Scanning...", func() ([]nmcli.Network, error) {
		return client.Networks(ctx)
	})
	if err != nil {
		return err
	}
	target, ok := findNetwork(networks, ssid)
	if !ok {
		return fmt.Errorf("network %q is not in range (try 'wm list --rescan')", ssid)
	}

	if ask {
		if !target.Secured() {
			warnColor.Fprintf(os.Stderr, "%s is an open network; no password needed.\n", ssid)
		} else if password, err = readPassword(ssid); err != nil {
			return err
		}
	}

	statusColor.Printf("Connecting to %s...\n", identifierColor.Sprint(ssid))
	_, err = withSpinner("Connecting...", func() (string, error) {
		if password == "" && target.Saved {
			return client.Activate(ctx, target.SSID)
		}
		return client.Connect(ctx, target, password)
	})
	if err != nil {
		if target.Secured() && password == "" {
			warnColor.Fprintln(os.Stderr, "This network is secured; pass --password or --ask.")
		}
		return err
	}
	successColor.Printf("Connected to %s.\n", identifierColor.Sprint(ssid))
	return nil
}

func findNetwork(networks []nmcli.Network, ssid string) (nmcli.Network, bool) {
	for _, n := range networks {
		if n.SSID == ssid {
			return n, true
		}
	}
	return nmcli.Network{}, false
}

// readPassword prompts on stderr and reads a password from the terminal
// without echoing it.
func readPassword(ssid string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("--ask needs an interactive terminal; use --password instead")
	}
	fmt.Fprintf(os.Stderr, "Password for %s: ", ssid)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	if len(b) == 0 {
		return "", errors.New("password cannot be empty")
	}
	return string(b), nil
}

func runDisconnect(ctx context.Context) error {
	ctx, cancel := commandContext(ctx)
	defer cancel()

	_, err := withSpinner("Disconnecting...", func() (string, error) {
		return client.Disconnect(ctx)
	})
	if err != nil {
		return err
	}
	successColor.Println("Disconnected.")
	return nil
}

func runForget(ctx context.Context, name string) error {
	ctx, cancel := commandContext(ctx)
	defer cancel()

	_, err := withSpinner(fmt.Sprintf("Forgetting %s...", name), func() (string, error) {
		return client.Forget(ctx, name)
	})
	if err != nil {
		return err
	}
	successColor.Printf("Forgot %s.\n", identifierColor.Sprint(name))
	return nil
}

func runInterfaces(ctx context.Context) error {
	ctx, cancel := commandContext(ctx)
	defer cancel()

	names, err := iface.Discover(ctx)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Println("No wireless interfaces found.")
		return nil
	}
	printInterfaces(os.Stdout, names, client.Interface)
	return nil
}

func printInterfaces(w io.Writer, names []string, current string) {
	for _, name := range names {
		if name == current {
			fmt.Fprintf(w, "* %s\n", identifierColor.Sprint(name))
			continue
		}
		fmt.Fprintf(w, "  %s\n", name)
	}
}

func runConfigInit(force bool) error {
	path := configPathFlag
	if path == "" {
		var err error
		if path, err = config.DefaultConfigPath(); err != nil {
			return err
		}
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	defaults := config.Default()
	if interfaceFlag != "" {
		defaults.Interface = interfaceFlag
	}

	var err error
	if configPathFlag != "" {
		err = config.SaveConfigTo(path, defaults)
	} else {
		err = config.SaveConfig(defaults)
	}
	if err != nil {
		return err
	}
	logger.Info("configuration written", "path", path)
	successColor.Printf("Wrote %s\n", identifierColor.Sprint(path))
	return nil
}

// errorText prefers the tool's own message over the wrapped chain.
func errorText(err error) string {
	var cmdErr *nmcli.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Error()
	}
	return err.Error()
}
