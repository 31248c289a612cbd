// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package nmcli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"syscall"

	"wifi-manager/internal/logger"
	"wifi-manager/internal/util"
)

// secretKeywords are argument keywords whose following value must never be
// logged or echoed back in error messages.
var secretKeywords = []string{"password", "wifi-sec.psk", "802-1x.password"}

// ErrToolNotFound is returned when the network-management executable cannot
// be located.
var ErrToolNotFound = errors.New("network-management tool not found")

// Runner executes an external command and returns its captured output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

// ExecRunner runs commands on the local host with os/exec.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// nmcli localises its messages; pin them so parsing stays stable.
	cmd.Env = append(cmd.Environ(), "LC_ALL=C", "LANG=C")
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// CommandError reports a non-zero exit of the external tool.
type CommandError struct {
	Command  string
	Args     []string // already redacted
	ExitCode int      // -1 when unknown
	Output   string   // stderr, or stdout when stderr was empty
	Err      error
}

func (e *CommandError) Error() string {
	if e.Output != "" {
		return e.Output
	}
	if e.ExitCode != -1 {
		return fmt.Sprintf("%s exited with status %d", e.Command, e.ExitCode)
	}
	return fmt.Sprintf("%s failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

// CommandLine returns the redacted, shell-quoted invocation.
func (e *CommandError) CommandLine() string {
	return util.CommandLine(e.Command, e.Args)
}

// run invokes the tool and converts failures into *CommandError or
// ErrToolNotFound. The returned output is trimmed.
func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	redacted := util.RedactArgs(args, secretKeywords...)
	cmdLine := util.CommandLine(c.Tool, redacted)
	logger.Debug("running command", "cmd", cmdLine)

	stdout, stderr, err := c.Runner.Run(ctx, c.Tool, args...)
	out := strings.TrimSpace(string(stdout))
	if err == nil {
		return out, nil
	}

	if errors.Is(err, exec.ErrNotFound) {
		logger.Error("command not found", "tool", c.Tool)
		return "", fmt.Errorf("%w: %s: %w", ErrToolNotFound, c.Tool, err)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		logger.Error("command interrupted", "cmd", cmdLine, "error", ctxErr)
		return "", fmt.Errorf("%s: %w", cmdLine, ctxErr)
	}

	exitCode := -1
	var exitError *exec.ExitError
	if errors.As(err, &exitError) {
		if status, ok := exitError.Sys().(syscall.WaitStatus); ok {
			exitCode = status.ExitStatus()
		}
	}

	msg := strings.TrimSpace(string(stderr))
	if msg == "" {
		msg = out
	}
	msg = scrubSecrets(msg, args)

	logger.Error("command failed", "cmd", cmdLine, "exit_code", exitCode, "output", msg)
	return "", &CommandError{
		Command:  c.Tool,
		Args:     redacted,
		ExitCode: exitCode,
		Output:   msg,
		Err:      err,
	}
}

// scrubSecrets removes secret argument values from tool output, which can
// echo them back in diagnostics.
func scrubSecrets(msg string, args []string) string {
	for i := 0; i < len(args)-1; i++ {
		for _, kw := range secretKeywords {
			if args[i] == kw && args[i+1] != "" {
				msg = strings.ReplaceAll(msg, args[i+1], util.RedactedValue)
			}
		}
	}
	return msg
}
