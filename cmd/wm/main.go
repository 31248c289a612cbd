package main

import "wifi-manager/cmd/cli"

func main() {
	// With no arguments the root command starts the TUI.
	cli.RunCLI()
}
