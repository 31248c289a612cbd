// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package util

import "strings"

// RedactedValue replaces secrets in rendered command lines.
const RedactedValue = "********"

// QuoteArgForShell quotes an argument for safe use in a POSIX shell command.
// Arguments made only of safe characters are returned unchanged so that
// logged command lines stay readable.
func QuoteArgForShell(arg string) string {
	if arg == "" {
		return "''"
	}
	if strings.IndexFunc(arg, needsQuoting) == -1 {
		return arg
	}
	quotedArg := strings.ReplaceAll(arg, "'", `'\''`)
	return `'` + quotedArg + `'`
}

func needsQuoting(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	case strings.ContainsRune("-_./,:=@%+", r):
		return false
	}
	return true
}

// RedactArgs returns a copy of args where the value following any of the
// secret keywords is replaced with RedactedValue.
func RedactArgs(args []string, secretKeywords ...string) []string {
	out := make([]string, len(args))
	copy(out, args)
	for i := 0; i < len(out)-1; i++ {
		for _, kw := range secretKeywords {
			if out[i] == kw {
				out[i+1] = RedactedValue
				i++
				break
			}
		}
	}
	return out
}

// CommandLine renders name and args as a single shell-quoted line.
func CommandLine(name string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, QuoteArgForShell(name))
	for _, arg := range args {
		parts = append(parts, QuoteArgForShell(arg))
	}
	return strings.Join(parts, " ")
}
