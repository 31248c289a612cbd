// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"context"
	"slices"
	"strings"
	"time"

	"wifi-manager/internal/config"
	"wifi-manager/internal/iface"
	"wifi-manager/internal/nmcli"

	"github.com/spf13/cobra"
)

// Shells give up on slow completions; a cached scan is good enough.
const completionTimeout = 3 * time.Second

// completionClient builds a client from the config file and flags. The
// persistent pre-run hook does not run for completion requests.
func completionClient() *nmcli.Client {
	var loaded config.Config
	var err error
	if configPathFlag != "" {
		loaded, err = config.LoadConfigFrom(configPathFlag)
	} else {
		loaded, err = config.LoadConfig()
	}
	if err != nil {
		// Ignore config load errors during completion
		loaded = config.Default()
	}
	if interfaceFlag != "" {
		loaded.Interface = interfaceFlag
	}
	return nmcli.NewClient(loaded.Tool, loaded.Interface)
}

// filterPrefix returns the unique candidates starting with prefix, in order.
func filterPrefix(candidates []string, prefix string) []string {
	suggestions := []string{}
	for _, c := range candidates {
		if c == "" || !strings.HasPrefix(c, prefix) || slices.Contains(suggestions, c) {
			continue
		}
		suggestions = append(suggestions, c)
	}
	return suggestions
}

// ssidCompletionFunc completes SSIDs from the current scan results.
func ssidCompletionFunc(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	ctx, cancel := context.WithTimeout(context.Background(), completionTimeout)
	defer cancel()

	networks, err := completionClient().Networks(ctx)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	ssids := make([]string, 0, len(networks))
	for _, n := range networks {
		ssids = append(ssids, n.SSID)
	}
	return filterPrefix(ssids, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// profileCompletionFunc completes saved Wi-Fi profile names.
func profileCompletionFunc(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	ctx, cancel := context.WithTimeout(context.Background(), completionTimeout)
	defer cancel()

	profiles, err := completionClient().SavedProfiles(ctx)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	names := make([]string, 0, len(profiles))
	for _, p := range profiles {
		names = append(names, p.Name)
	}
	return filterPrefix(names, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// interfaceCompletionFunc completes wireless interface names for --interface.
func interfaceCompletionFunc(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	ctx, cancel := context.WithTimeout(context.Background(), completionTimeout)
	defer cancel()

	names, err := iface.Discover(ctx)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return filterPrefix(names, toComplete), cobra.ShellCompDirectiveNoFileComp
}
