// Copyright (c) 2026 The Crewkerne Gazette.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/crewkernegazette/gazette/models"
)

// adminModel is the dashboard: stats, contact triage and site toggles.
type adminModel struct {
	styles   Styles
	stats    models.DashboardStats
	contacts []models.Contact
	settings models.Settings
	cursor   int

	bannerOpen  bool
	bannerInput textinput.Model
}

func newAdminModel(styles Styles) adminModel {
	banner := textinput.New()
	banner.Placeholder = "breaking news text"
	banner.Width = 60
	banner.CharLimit = 200

	return adminModel{styles: styles, bannerInput: banner}
}

func (a *adminModel) set(stats models.DashboardStats, contacts []models.Contact, settings models.Settings) {
	a.stats = stats
	a.contacts = contacts
	a.settings = settings
	if a.cursor >= len(contacts) {
		a.cursor = 0
	}
}

func (a *adminModel) updateContact(c models.Contact) {
	for i := range a.contacts {
		if a.contacts[i].ID == c.ID {
			a.contacts[i] = c
			return
		}
	}
}

func (a *adminModel) removeContact(id string) {
	for i := range a.contacts {
		if a.contacts[i].ID == id {
			a.contacts = append(a.contacts[:i], a.contacts[i+1:]...)
			break
		}
	}
	if a.cursor >= len(a.contacts) && a.cursor > 0 {
		a.cursor--
	}
}

func (a adminModel) typing() bool {
	return a.bannerOpen
}

func (m Model) updateAdminKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := &m.admin

	if a.bannerOpen {
		switch msg.Type {
		case tea.KeyEsc:
			a.bannerOpen = false
			a.bannerInput.Blur()
			return m, nil
		case tea.KeyEnter:
			text := strings.TrimSpace(a.bannerInput.Value())
			a.bannerOpen = false
			a.bannerInput.Blur()
			return m, m.setBanner(m.pageGen, text != "", text)
		}
		var cmd tea.Cmd
		a.bannerInput, cmd = a.bannerInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "j", "down":
		if a.cursor < len(a.contacts)-1 {
			a.cursor++
		}
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
	case "t":
		if a.cursor < len(a.contacts) {
			c := a.contacts[a.cursor]
			return m, m.markContactHandled(m.pageGen, c.ID, !c.Handled)
		}
	case "x":
		if a.cursor < len(a.contacts) {
			return m, m.deleteContact(m.pageGen, a.contacts[a.cursor].ID)
		}
	case "M":
		return m, m.setMaintenance(m.pageGen, !a.settings.MaintenanceMode)
	case "B":
		a.bannerOpen = true
		a.bannerInput.SetValue(a.settings.BreakingNewsText)
		a.bannerInput.Focus()
	case "R":
		m.loading = true
		return m, m.loadDashboard(m.pageGen)
	}
	return m, nil
}

func (a adminModel) view() string {
	var b strings.Builder
	b.WriteString("\n " + a.styles.Kicker.Render("NEWSROOM DASHBOARD") + "\n")

	s := a.stats
	b.WriteString(fmt.Sprintf("\n %s %d   %s %d   %s %d   %s %d",
		a.styles.Byline.Render("articles"), s.ArticleCount,
		a.styles.Byline.Render("opinions"), s.OpinionCount,
		a.styles.Byline.Render("comments"), s.CommentCount,
		a.styles.Byline.Render("votes today"), s.VotesCastToday))
	b.WriteString("\n")

	maintenance := "off"
	if a.settings.MaintenanceMode {
		maintenance = a.styles.Warning.Render("ON")
	}
	banner := "off"
	if a.settings.ShowBreakingNewsBanner {
		banner = a.styles.Warning.Render("ON: " + a.settings.BreakingNewsText)
	}
	b.WriteString("\n " + a.styles.Byline.Render("maintenance") + " " + maintenance)
	b.WriteString("   " + a.styles.Byline.Render("banner") + " " + banner)
	b.WriteString("\n")

	b.WriteString("\n " + a.styles.Kicker.Render(fmt.Sprintf("INBOX (%d unhandled)", s.UnhandledCount)))
	if len(a.contacts) == 0 {
		b.WriteString("\n " + a.styles.Byline.Render("No messages."))
	}
	for i, c := range a.contacts {
		mark := "·"
		if c.Handled {
			mark = a.styles.Success.Render("✓")
		}
		line := fmt.Sprintf("%s %s <%s>  %s", mark, c.Name, c.Email, a.styles.Byline.Render(humanize.Time(c.CreatedAt)))
		if i == a.cursor {
			b.WriteString("\n" + a.styles.Selected.Render(line))
			b.WriteString("\n   " + a.styles.Body.Render(c.Message))
		} else {
			b.WriteString("\n " + line)
		}
	}
	b.WriteString("\n")

	if a.bannerOpen {
		b.WriteString("\n " + a.bannerInput.View())
		b.WriteString("\n " + a.styles.Byline.Render("enter to save (empty clears) · esc to cancel"))
	} else {
		b.WriteString("\n " + a.styles.Byline.Render("t toggle handled · x delete · M maintenance · B banner · R refresh"))
	}

	return b.String()
}
