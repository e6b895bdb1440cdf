// Copyright (c) 2026 The Crewkerne Gazette.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/crewkernegazette/gazette/models"
)

// contactModel is the public tip-off form: name, email, message.
type contactModel struct {
	styles  Styles
	inputs  []textinput.Model
	focus   int
	busy    bool
	errText string
}

const (
	contactName = iota
	contactEmail
	contactMessage
)

func newContactModel(styles Styles) contactModel {
	name := textinput.New()
	name.Placeholder = "your name"
	name.Width = 40

	email := textinput.New()
	email.Placeholder = "email"
	email.Width = 40

	message := textinput.New()
	message.Placeholder = "what should we know?"
	message.Width = 60
	message.CharLimit = 2000

	return contactModel{styles: styles, inputs: []textinput.Model{name, email, message}}
}

func (c *contactModel) focusFirst() {
	c.focus = contactName
	c.errText = ""
	for i := range c.inputs {
		if i == c.focus {
			c.inputs[i].Focus()
		} else {
			c.inputs[i].Blur()
		}
	}
}

func (c *contactModel) reset() {
	for i := range c.inputs {
		c.inputs[i].Reset()
		c.inputs[i].Blur()
	}
	c.focus = contactName
	c.errText = ""
}

func (c *contactModel) cycle(delta int) {
	c.inputs[c.focus].Blur()
	c.focus = (c.focus + delta + len(c.inputs)) % len(c.inputs)
	c.inputs[c.focus].Focus()
}

func (c contactModel) request() (models.SubmitContactRequest, string) {
	req := models.SubmitContactRequest{
		Name:    strings.TrimSpace(c.inputs[contactName].Value()),
		Email:   strings.TrimSpace(c.inputs[contactEmail].Value()),
		Message: strings.TrimSpace(c.inputs[contactMessage].Value()),
	}
	if req.Name == "" || req.Message == "" {
		return req, "Name and message are required"
	}
	return req, ""
}

func (m Model) updateContactKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := &m.contact

	switch msg.Type {
	case tea.KeyEsc:
		c.reset()
		m.navigate(PageHome)
		return m, m.loadHome(m.pageGen)

	case tea.KeyTab, tea.KeyDown:
		c.cycle(1)
		return m, nil

	case tea.KeyShiftTab, tea.KeyUp:
		c.cycle(-1)
		return m, nil

	case tea.KeyEnter:
		if c.focus < contactMessage {
			c.cycle(1)
			return m, nil
		}
		if c.busy {
			return m, nil
		}
		req, problem := c.request()
		if problem != "" {
			c.errText = problem
			return m, nil
		}
		c.busy = true
		c.errText = ""
		return m, m.submitContact(m.pageGen, req)
	}

	var cmd tea.Cmd
	c.inputs[c.focus], cmd = c.inputs[c.focus].Update(msg)
	return m, cmd
}

func (c contactModel) view() string {
	var b strings.Builder
	b.WriteString("\n " + c.styles.Kicker.Render("CONTACT THE NEWSROOM") + "\n")

	labels := []string{"Name", "Email", "Message"}
	for i, in := range c.inputs {
		b.WriteString("\n " + c.styles.Byline.Render(labels[i]))
		b.WriteString("\n " + in.View())
	}

	if c.busy {
		b.WriteString("\n\n " + c.styles.Byline.Render("sending..."))
	}
	if c.errText != "" {
		b.WriteString("\n\n " + c.styles.Error.Render(c.errText))
	}

	b.WriteString("\n\n " + c.styles.Byline.Render("tab to move · enter to send · esc to leave"))
	return b.String()
}
