// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"errors"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

var errEmptyPassword = errors.New("password cannot be empty")

func createPasswordInput() textinput.Model {
	t := textinput.New()
	t.Placeholder = "Password"
	t.Prompt = cursorStyle.Render("> ")
	t.EchoMode = textinput.EchoPassword
	t.EchoCharacter = '*'
	t.CharLimit = passwordCharLimit
	t.Width = 40
	return t
}

// resetPasswordInput clears the prompt and focuses it. Visibility always
// starts hidden.
func (m *Model) resetPasswordInput() tea.Cmd {
	m.passwordInput.Reset()
	m.showPassword = false
	m.passwordInput.EchoMode = textinput.EchoPassword
	m.formError = nil
	return m.passwordInput.Focus()
}

func (m *Model) togglePasswordVisibility() {
	m.showPassword = !m.showPassword
	if m.showPassword {
		m.passwordInput.EchoMode = textinput.EchoNormal
	} else {
		m.passwordInput.EchoMode = textinput.EchoPassword
	}
}

// validatePassword accepts anything non-empty; WEP keys and WPA passphrases
// have different rules and nmcli reports the precise problem.
func validatePassword(pw string) error {
	if utf8.RuneCountInString(pw) == 0 {
		return errEmptyPassword
	}
	return nil
}
