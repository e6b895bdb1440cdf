// Copyright (c) 2026 The Crewkerne Gazette.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/crewkernegazette/gazette/auth"
	"github.com/crewkernegazette/gazette/gazette"
	"github.com/crewkernegazette/gazette/models"
	"github.com/crewkernegazette/gazette/opinions"
	"github.com/crewkernegazette/gazette/transport"
)

// Page identifies which screen owns the content area.
type Page int

const (
	PageHome Page = iota
	PageSection
	PageArticle
	PageOpinions
	PageArchive
	PageContact
	PageLogin
	PageAdmin
)

const toastDuration = 4 * time.Second

// Deps is everything the app needs from the outside. Constructed once in
// main and never mutated.
type Deps struct {
	API    *gazette.Client
	Auth   *auth.Machine
	Flow   *opinions.Flow
	Logger *zap.Logger
}

type toast struct {
	id   int
	text string
	kind string // "error", "success", "info"
}

// Model is the root bubbletea model. It owns navigation, the shared chrome
// (masthead, banner, footer, toast), and routes everything else to the page
// models.
type Model struct {
	deps   Deps
	styles Styles

	page    Page
	pageGen int // bumped on navigation; stale async replies are dropped
	width   int
	height  int

	spinner  spinner.Model
	loading  bool
	settings models.Settings
	authed   bool

	toast   toast
	toastID int

	home     homeModel
	section  sectionModel
	article  articleModel
	opinions opinionModel
	archive  archiveModel
	contact  contactModel
	login    loginModel
	admin    adminModel
}

func NewModel(deps Deps) Model {
	styles := NewStyles()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Prompt

	return Model{
		deps:     deps,
		styles:   styles,
		spinner:  sp,
		loading:  true,
		home:     newHomeModel(styles),
		section:  newSectionModel(styles),
		article:  newArticleModel(styles),
		opinions: newOpinionModel(styles),
		archive:  newArchiveModel(styles),
		contact:  newContactModel(styles),
		login:    newLoginModel(styles),
		admin:    newAdminModel(styles),
	}
}

// SessionExpired is sent into the program when the transport reports a dead
// admin token mid-session.
func SessionExpired() tea.Msg {
	return sessionExpiredMsg{}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.resolveAuth(), m.loadHome(m.pageGen))
}

// navigate switches pages and invalidates every in-flight reply for the old
// one.
func (m *Model) navigate(page Page) {
	m.page = page
	m.pageGen++
	m.loading = true
}

func (m *Model) showToast(text, kind string) tea.Cmd {
	m.toastID++
	m.toast = toast{id: m.toastID, text: text, kind: kind}
	return expireToast(m.toastID)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Stale replies from abandoned pages are dropped wholesale.
	if g, ok := msg.(generational); ok && g.generation() != m.pageGen {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.home.SetSize(msg.Width, msg.Height)
		m.article.SetSize(msg.Width, msg.Height)
		m.opinions.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.updateKey(msg)

	case tea.MouseMsg:
		if m.page == PageOpinions {
			return m.updateOpinionMouse(msg)
		}
		return m, nil

	case errMsg:
		m.loading = false
		m.deps.Logger.Warn("page load failed", zap.Error(msg.err))
		return m, m.showToast(errorText(msg.err), "error")

	case toastExpiredMsg:
		if msg.id == m.toast.id {
			m.toast = toast{}
		}
		return m, nil

	case authResolvedMsg:
		m.authed = msg.state == auth.StateAuthenticated
		return m, nil

	case sessionExpiredMsg:
		m.authed = false
		if m.page == PageAdmin {
			m.navigate(PageHome)
			return m, tea.Batch(m.loadHome(m.pageGen), m.showToast("Your session expired. Sign in again.", "error"))
		}
		return m, m.showToast("Your session expired. Sign in again.", "error")

	case loginDoneMsg:
		m.login.busy = false
		if !msg.result.Success {
			m.login.errText = msg.result.Error
			return m, nil
		}
		m.authed = true
		m.login.reset()
		m.navigate(PageAdmin)
		return m, tea.Batch(m.loadDashboard(m.pageGen), m.showToast("Signed in.", "success"))

	// ---- page data ----

	case homeLoadedMsg:
		m.loading = false
		m.settings = msg.settings
		m.home.rail = msg.rail
		return m, nil

	case sectionLoadedMsg:
		m.loading = false
		m.section.category = msg.category
		m.section.articles = msg.articles
		m.section.cursor = 0
		return m, nil

	case articleLoadedMsg:
		m.loading = false
		m.article.set(msg.article, msg.related)
		return m, nil

	case opinionLoadedMsg:
		m.loading = false
		m.opinions.setDetail(msg.detail, msg.userVote)
		return m, m.loadComments(m.pageGen, msg.detail.Opinion.ID)

	case opinionMissingMsg:
		m.loading = false
		m.opinions.missing = true
		return m, nil

	case commentsLoadedMsg:
		if msg.opinionID == m.opinions.detail.Opinion.ID {
			m.opinions.setComments(msg.comments, msg.userVotes)
		}
		return m, nil

	case voteAppliedMsg:
		m.opinions.applyVote(msg.subject, msg.id, msg.resp)
		return m, nil

	case registerDoneMsg:
		m.opinions.registerBusy = false
		if msg.err != nil {
			m.opinions.registerErr = errorText(msg.err)
			return m, nil
		}
		m.opinions.closeRegister()
		return m, m.showToast("Welcome, "+msg.username+".", "success")

	case commentAddedMsg:
		m.opinions.commentBusy = false
		if msg.err != nil {
			// The draft stays in the box so a retry is one keypress away.
			return m, m.showToast(errorText(msg.err), "error")
		}
		m.opinions.addComment(msg.comment)
		return m, nil

	case archiveLoadedMsg:
		m.loading = false
		m.archive.groups = msg.groups
		m.archive.top = msg.top
		m.archive.cursor = 0
		return m, nil

	case contactSentMsg:
		m.contact.busy = false
		if msg.err != nil {
			return m, m.showToast(errorText(msg.err), "error")
		}
		m.contact.reset()
		return m, m.showToast("Thanks - your message is in.", "success")

	case dashboardLoadedMsg:
		m.loading = false
		m.settings = msg.settings
		m.admin.set(msg.stats, msg.contacts, msg.settings)
		return m, nil

	case contactUpdatedMsg:
		m.admin.updateContact(msg.contact)
		return m, nil

	case contactDeletedMsg:
		m.admin.removeContact(msg.id)
		return m, m.showToast("Message deleted.", "success")

	case settingsSavedMsg:
		m.settings = msg.settings
		m.admin.settings = msg.settings
		return m, m.showToast("Settings saved.", "success")
	}

	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Pages with focused text inputs swallow everything except quit.
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.typing() {
		return m.updatePageKey(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "h":
		if m.page != PageHome {
			m.navigate(PageHome)
			return m, m.loadHome(m.pageGen)
		}
		return m, nil
	case "1", "2", "3", "4":
		categories := []string{models.CategoryNews, models.CategoryMusic, models.CategoryDocumentaries, models.CategoryComedy}
		category := categories[int(msg.String()[0]-'1')]
		m.navigate(PageSection)
		return m, m.loadSection(m.pageGen, category)
	case "o":
		m.navigate(PageOpinions)
		return m, m.loadOpinion(m.pageGen, "")
	case "v":
		m.navigate(PageArchive)
		return m, m.loadArchive(m.pageGen)
	case "c":
		if m.page != PageOpinions {
			m.navigate(PageContact)
			m.loading = false
			m.contact.focusFirst()
			return m, nil
		}
	case "l":
		if m.authed {
			m.deps.Auth.Logout()
			m.authed = false
			if m.page == PageAdmin {
				m.navigate(PageHome)
				return m, tea.Batch(m.loadHome(m.pageGen), m.showToast("Signed out.", "info"))
			}
			return m, m.showToast("Signed out.", "info")
		}
		m.navigate(PageLogin)
		m.loading = false
		m.login.focusFirst()
		return m, nil
	case "a":
		if m.authed {
			m.navigate(PageAdmin)
			return m, m.loadDashboard(m.pageGen)
		}
		m.navigate(PageLogin)
		m.loading = false
		m.login.focusFirst()
		return m, nil
	}

	return m.updatePageKey(msg)
}

// typing reports whether the current page has a focused text input, in which
// case global single-letter shortcuts must not fire.
func (m Model) typing() bool {
	switch m.page {
	case PageLogin:
		return true
	case PageContact:
		return true
	case PageOpinions:
		return m.opinions.typing()
	case PageAdmin:
		return m.admin.typing()
	default:
		return false
	}
}

func (m Model) updatePageKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.page {
	case PageSection:
		return m.updateSectionKey(msg)
	case PageArticle:
		var cmd tea.Cmd
		m.article, cmd = m.article.update(msg)
		return m, cmd
	case PageOpinions:
		return m.updateOpinionKey(msg)
	case PageArchive:
		return m.updateArchiveKey(msg)
	case PageContact:
		return m.updateContactKey(msg)
	case PageLogin:
		return m.updateLoginKey(msg)
	case PageAdmin:
		return m.updateAdminKey(msg)
	}
	return m, nil
}

func (m Model) updateSectionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.section.cursor > 0 {
			m.section.cursor--
		}
	case "down", "j":
		if m.section.cursor < len(m.section.articles)-1 {
			m.section.cursor++
		}
	case "enter":
		if m.section.cursor < len(m.section.articles) {
			id := m.section.articles[m.section.cursor].ID
			m.navigate(PageArticle)
			return m, m.loadArticle(m.pageGen, id)
		}
	}
	return m, nil
}

func (m Model) updateArchiveKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	flat := m.archive.flatten()
	switch msg.String() {
	case "up", "k":
		if m.archive.cursor > 0 {
			m.archive.cursor--
		}
	case "down", "j":
		if m.archive.cursor < len(flat)-1 {
			m.archive.cursor++
		}
	case "enter":
		if m.archive.cursor < len(flat) {
			id := flat[m.archive.cursor].ID
			m.navigate(PageOpinions)
			return m, m.loadOpinion(m.pageGen, id)
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.width == 0 {
		return "warming up the presses..."
	}

	var b strings.Builder
	b.WriteString(m.masthead())
	b.WriteString("\n")

	if m.settings.MaintenanceMode && !m.authed {
		b.WriteString(m.maintenanceView())
		return b.String()
	}

	if m.settings.ShowBreakingNewsBanner && m.settings.BreakingNewsText != "" {
		b.WriteString(m.styles.Banner.Width(m.width).Render("BREAKING: " + m.settings.BreakingNewsText))
		b.WriteString("\n")
	}

	if m.loading {
		b.WriteString("\n " + m.spinner.View() + " fetching the latest...\n")
	} else {
		b.WriteString(m.pageView())
	}

	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

func (m Model) pageView() string {
	switch m.page {
	case PageHome:
		return m.home.view()
	case PageSection:
		return m.section.view()
	case PageArticle:
		return m.article.view()
	case PageOpinions:
		return m.opinions.view()
	case PageArchive:
		return m.archive.view()
	case PageContact:
		return m.contact.view()
	case PageLogin:
		return m.login.view()
	case PageAdmin:
		return m.admin.view()
	}
	return ""
}

func (m Model) masthead() string {
	title := "THE CREWKERNE GAZETTE"
	status := ""
	if m.authed {
		status = "  [admin]"
	}
	return m.styles.MastheadBar.Width(m.width).Render(title + status)
}

func (m Model) maintenanceView() string {
	notice := m.styles.Maintenance.Render(" The Gazette is down for maintenance. Back shortly. ")
	return "\n" + lipgloss.PlaceHorizontal(m.width, lipgloss.Center, notice) + "\n"
}

func (m Model) footer() string {
	var parts []string
	if m.toast.text != "" {
		switch m.toast.kind {
		case "error":
			parts = append(parts, m.styles.Error.Render(m.toast.text))
		case "success":
			parts = append(parts, m.styles.Success.Render(m.toast.text))
		default:
			parts = append(parts, m.toast.text)
		}
	}
	keys := "h home · 1-4 sections · o opinions · v archive · c contact · l sign in · q quit"
	if m.authed {
		keys = "h home · 1-4 sections · o opinions · a admin · l sign out · q quit"
	}
	parts = append(parts, m.styles.Footer.Render(keys))
	return strings.Join(parts, "\n")
}

// errorText converts any error to the line shown in the toast. Transport
// errors already carry human wording.
func errorText(err error) string {
	if err == nil {
		return ""
	}
	return transport.Message(err)
}
