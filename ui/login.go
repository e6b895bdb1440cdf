// Copyright (c) 2026 The Crewkerne Gazette.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// loginModel is the admin sign-in form.
type loginModel struct {
	styles   Styles
	username textinput.Model
	password textinput.Model
	focus    int // 0 username, 1 password
	busy     bool
	errText  string
}

func newLoginModel(styles Styles) loginModel {
	user := textinput.New()
	user.Placeholder = "username"
	user.Width = 32

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.Width = 32
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '*'

	return loginModel{styles: styles, username: user, password: pass}
}

func (l *loginModel) focusFirst() {
	l.focus = 0
	l.errText = ""
	l.username.Focus()
	l.password.Blur()
}

func (l *loginModel) reset() {
	l.username.Reset()
	l.password.Reset()
	l.username.Blur()
	l.password.Blur()
	l.focus = 0
	l.busy = false
	l.errText = ""
}

func (l *loginModel) cycle() {
	if l.focus == 0 {
		l.focus = 1
		l.username.Blur()
		l.password.Focus()
	} else {
		l.focus = 0
		l.password.Blur()
		l.username.Focus()
	}
}

func (m Model) updateLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	l := &m.login

	switch msg.Type {
	case tea.KeyEsc:
		l.reset()
		m.navigate(PageHome)
		return m, m.loadHome(m.pageGen)

	case tea.KeyTab, tea.KeyShiftTab, tea.KeyDown, tea.KeyUp:
		l.cycle()
		return m, nil

	case tea.KeyEnter:
		if l.focus == 0 {
			l.cycle()
			return m, nil
		}
		if l.busy {
			return m, nil
		}
		username := strings.TrimSpace(l.username.Value())
		password := l.password.Value()
		if username == "" || password == "" {
			l.errText = "Username and password are required"
			return m, nil
		}
		l.busy = true
		l.errText = ""
		return m, m.submitLogin(username, password)
	}

	var cmd tea.Cmd
	if l.focus == 0 {
		l.username, cmd = l.username.Update(msg)
	} else {
		l.password, cmd = l.password.Update(msg)
	}
	return m, cmd
}

func (l loginModel) view() string {
	var b strings.Builder
	b.WriteString("\n " + l.styles.Kicker.Render("ADMIN SIGN IN") + "\n")
	b.WriteString("\n " + l.username.View())
	b.WriteString("\n " + l.password.View())

	if l.busy {
		b.WriteString("\n\n " + l.styles.Byline.Render("signing in..."))
	}
	if l.errText != "" {
		b.WriteString("\n\n " + l.styles.Error.Render(l.errText))
	}

	b.WriteString("\n\n " + l.styles.Byline.Render("enter to sign in · esc to leave"))
	return b.String()
}
