// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"wifi-manager/cmd/tui"
	"wifi-manager/internal/config"
	"wifi-manager/internal/iface"
	"wifi-manager/internal/logger"
	"wifi-manager/internal/nmcli"
	"wifi-manager/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	statusColor      = color.New(color.FgCyan)
	errorColor       = color.New(color.FgRed)
	successColor     = color.New(color.FgGreen)
	warnColor        = color.New(color.FgYellow)
	statusUpColor    = color.New(color.FgGreen)
	statusDownColor  = color.New(color.FgRed)
	identifierColor  = color.New(color.FgBlue)
	savedMarkerColor = color.New(color.FgMagenta)
)

// Flags shared by the root command and its subcommands.
var (
	interfaceFlag  string
	configPathFlag string
	debugFlag      bool

	statusFlag     bool
	rescanFlag     bool
	disconnectFlag bool
)

// Loaded in PersistentPreRunE.
var (
	cfg    config.Config
	client *nmcli.Client
)

var rootCmd = &cobra.Command{
	Use:   "wm",
	Short: "Wi-Fi manager for NetworkManager",
	Long: `A terminal front-end for NetworkManager's nmcli.

Run without arguments to pick a network interactively. The action flags and
subcommands give non-interactive access to the same operations.
Settings are read from ~/.config/wifi-manager/config.yaml.`,
	Example: "  wm\n  wm -i wlan1\n  wm --status\n  wm connect HomeNet --ask",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		switch {
		case statusFlag:
			return runStatus(cmd.Context())
		case rescanFlag:
			return runList(cmd.Context(), true)
		case disconnectFlag:
			return runDisconnect(cmd.Context())
		}
		logger.Info("starting terminal interface", "interface", client.Interface)
		return tui.RunTUI(ui.Options{
			Client:     client,
			Discoverer: iface.NewDiscoverer(),
			Timeout:    cfg.CommandTimeout,
			SSIDWidth:  cfg.SSIDWidth,
			NerdFont:   cfg.NerdFont,
		})
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// loadSettings reads the configuration, applies command-line overrides and
// starts logging.
func loadSettings(isTUI bool) error {
	var err error
	if configPathFlag != "" {
		cfg, err = config.LoadConfigFrom(configPathFlag)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if interfaceFlag != "" {
		cfg.Interface = interfaceFlag
	}

	logger.InitLogger(isTUI, cfg.LogLevel, debugFlag)
	client = nmcli.NewClient(cfg.Tool, cfg.Interface)
	logger.Debug("configuration loaded", "tool", client.Tool, "interface", cfg.Interface, "timeout", cfg.CommandTimeout)
	return nil
}

// RunCLI executes the command tree and exits with status 1 on failure.
func RunCLI() {
	if err := execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

// execute runs the command tree and closes the log file on every path,
// including failures.
func execute() error {
	defer logger.Close()
	err := rootCmd.Execute()
	if err != nil {
		logger.Errorf("wm failed: %v", err)
	}
	return err
}

func printError(err error) {
	var cmdErr *nmcli.CommandError
	switch {
	case errors.Is(err, nmcli.ErrToolNotFound):
		errorColor.Fprintf(os.Stderr, "Error: %v\nIs NetworkManager installed?\n", err)
	case errors.As(err, &cmdErr):
		errorColor.Fprintln(os.Stderr, cmdErr.Error())
	default:
		errorColor.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

func init() {
	// Assigned here rather than in the literal to avoid an initialization cycle.
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		isTUI := cmd == rootCmd && !statusFlag && !rescanFlag && !disconnectFlag
		return loadSettings(isTUI)
	}

	rootCmd.PersistentFlags().StringVarP(&interfaceFlag, "interface", "i", "", "wireless interface to operate on (default: all)")
	rootCmd.PersistentFlags().StringVar(&configPathFlag, "config", "", "path to the configuration file")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "log debug output to stderr")

	rootCmd.Flags().BoolVarP(&statusFlag, "status", "s", false, "show the Wi-Fi connection status and exit")
	rootCmd.Flags().BoolVarP(&rescanFlag, "rescan", "r", false, "rescan, print the network list and exit")
	rootCmd.Flags().BoolVarP(&disconnectFlag, "disconnect", "d", false, "disconnect Wi-Fi and exit")
	rootCmd.MarkFlagsMutuallyExclusive("status", "rescan", "disconnect")

	_ = rootCmd.RegisterFlagCompletionFunc("interface", interfaceCompletionFunc)

	listCmd.Flags().BoolVarP(&listRescan, "rescan", "r", false, "ask NetworkManager for a fresh scan first")
	connectCmd.Flags().StringVarP(&connectPassword, "password", "p", "", "password for secured networks")
	connectCmd.Flags().BoolVar(&connectAsk, "ask", false, "prompt for the password without echo")
	connectCmd.MarkFlagsMutuallyExclusive("password", "ask")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(connectCmd)
	rootCmd.AddCommand(disconnectCmd)
	rootCmd.AddCommand(forgetCmd)
	rootCmd.AddCommand(interfacesCmd)

	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing configuration file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

var (
	listRescan      bool
	connectPassword string
	connectAsk      bool
	configForce     bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List visible Wi-Fi networks",
	Example: "  wm list\n  wm list --rescan\n  wm -i wlan1 list",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd.Context(), listRescan)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show Wi-Fi devices and their current connection",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatus(cmd.Context())
	},
}

var connectCmd = &cobra.Command{
	Use:   "connect <ssid>",
	Short: "Connect to a Wi-Fi network",
	Long: `Connects to the named network.

Saved networks are activated from their stored profile. Secured networks
without a saved profile need a password, given with --password or typed
after --ask.`,
	Example:           "  wm connect CafeGuest\n  wm connect HomeNet --ask\n  wm -i wlan1 connect Office -p secret",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: ssidCompletionFunc,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConnect(cmd.Context(), args[0], connectPassword, connectAsk)
	},
}

var disconnectCmd = &cobra.Command{
	Use:   "disconnect",
	Short: "Disconnect the Wi-Fi device",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDisconnect(cmd.Context())
	},
}

var forgetCmd = &cobra.Command{
	Use:               "forget <name>",
	Short:             "Delete a saved Wi-Fi connection profile",
	Example:           "  wm forget OldNetwork",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: profileCompletionFunc,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runForget(cmd.Context(), args[0])
	},
}

var interfacesCmd = &cobra.Command{
	Use:   "interfaces",
	Short: "List wireless interfaces",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInterfaces(cmd.Context())
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:     "init",
	Short:   "Write a configuration file with the default settings",
	Example: "  wm config init\n  wm -i wlan1 config init --force\n  wm --config ./wm.yaml config init",
	Args:    cobra.NoArgs,
	// The existing file may be the broken one being replaced, so it is not loaded.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.InitLogger(false, config.DefaultLogLevel, debugFlag)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigInit(configForce)
	},
}

func commandContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	if cfg.CommandTimeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, cfg.CommandTimeout)
}
