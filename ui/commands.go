// Copyright (c) 2026 The Crewkerne Gazette.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/crewkernegazette/gazette/models"
	"github.com/crewkernegazette/gazette/transport"
)

// Commands run on background goroutines under bubbletea; the transport
// bounds each call with its own timeout, so a plain Background context is
// enough here.

func (m Model) loadHome(g int) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		rail, err := m.deps.API.TopRail(ctx)
		if err != nil {
			return errMsg{gen: gen(g), err: err}
		}
		// Settings failures degrade to defaults: the front page still
		// renders without the banner state.
		settings, _ := m.deps.API.PublicSettings(ctx)

		return homeLoadedMsg{gen: gen(g), rail: rail, settings: settings}
	}
}

func (m Model) loadSection(g int, category string) tea.Cmd {
	return func() tea.Msg {
		articles, err := m.deps.API.ArticlesByCategory(context.Background(), category)
		if err != nil {
			return errMsg{gen: gen(g), err: err}
		}
		return sectionLoadedMsg{gen: gen(g), category: category, articles: articles}
	}
}

func (m Model) loadArticle(g int, id string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		article, err := m.deps.API.Article(ctx, id)
		if err != nil {
			return errMsg{gen: gen(g), err: err}
		}
		related, _ := m.deps.API.RelatedArticles(ctx, id)

		return articleLoadedMsg{gen: gen(g), article: article, related: related}
	}
}

// loadOpinion fetches by id, or the latest opinion when id is "".
func (m Model) loadOpinion(g int, id string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		var detail models.OpinionDetail
		var err error
		if id == "" {
			detail, err = m.deps.API.LatestOpinion(ctx)
		} else {
			detail, err = m.deps.API.Opinion(ctx, id)
		}
		if err != nil {
			if transport.IsKind(err, transport.KindNotFound) {
				return opinionMissingMsg{gen: gen(g)}
			}
			return errMsg{gen: gen(g), err: err}
		}

		userVote := m.deps.Flow.OpinionUserVote(ctx, detail.Opinion.ID)
		return opinionLoadedMsg{gen: gen(g), detail: detail, userVote: userVote}
	}
}

func (m Model) loadComments(g int, opinionID string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		comments, err := m.deps.API.Comments(ctx, opinionID)
		if err != nil {
			return errMsg{gen: gen(g), err: err}
		}

		ids := make([]string, len(comments))
		for i, c := range comments {
			ids[i] = c.ID
		}
		votes := m.deps.Flow.FetchUserVotes(ctx, ids)

		return commentsLoadedMsg{gen: gen(g), opinionID: opinionID, comments: comments, userVotes: votes}
	}
}

func (m Model) castVote(g int, subject, id, direction string) tea.Cmd {
	return func() tea.Msg {
		resp, err := m.deps.Flow.CastVote(context.Background(), subject, id, direction)
		if err != nil {
			return errMsg{gen: gen(g), err: err}
		}
		return voteAppliedMsg{gen: gen(g), subject: subject, id: id, resp: resp}
	}
}

func (m Model) register(g int, username string) tea.Cmd {
	return func() tea.Msg {
		err := m.deps.Flow.Register(context.Background(), username)
		return registerDoneMsg{gen: gen(g), username: m.deps.Flow.Username(), err: err}
	}
}

func (m Model) addComment(g int, opinionID, text string) tea.Cmd {
	return func() tea.Msg {
		comment, err := m.deps.Flow.AddComment(context.Background(), opinionID, text)
		return commentAddedMsg{gen: gen(g), comment: comment, err: err}
	}
}

func (m Model) loadArchive(g int) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		groups, err := m.deps.API.OpinionArchive(ctx)
		if err != nil {
			return errMsg{gen: gen(g), err: err}
		}
		// The most-debated strip is decoration; the archive renders
		// without it.
		top, _ := m.deps.API.TopOpinions(ctx)

		return archiveLoadedMsg{gen: gen(g), groups: groups, top: top}
	}
}

func (m Model) submitContact(g int, req models.SubmitContactRequest) tea.Cmd {
	return func() tea.Msg {
		return contactSentMsg{gen: gen(g), err: m.deps.API.SubmitContact(context.Background(), req)}
	}
}

func (m Model) loadDashboard(g int) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		stats, err := m.deps.API.DashboardStats(ctx)
		if err != nil {
			return errMsg{gen: gen(g), err: err}
		}
		contacts, err := m.deps.API.Contacts(ctx)
		if err != nil {
			return errMsg{gen: gen(g), err: err}
		}
		settings, _ := m.deps.API.PublicSettings(ctx)

		return dashboardLoadedMsg{gen: gen(g), stats: stats, contacts: contacts, settings: settings}
	}
}

func (m Model) markContactHandled(g int, id string, handled bool) tea.Cmd {
	return func() tea.Msg {
		contact, err := m.deps.API.MarkContactHandled(context.Background(), id, handled)
		if err != nil {
			return errMsg{gen: gen(g), err: err}
		}
		return contactUpdatedMsg{gen: gen(g), contact: contact}
	}
}

func (m Model) deleteContact(g int, id string) tea.Cmd {
	return func() tea.Msg {
		if err := m.deps.API.DeleteContact(context.Background(), id); err != nil {
			return errMsg{gen: gen(g), err: err}
		}
		return contactDeletedMsg{gen: gen(g), id: id}
	}
}

func (m Model) setMaintenance(g int, enabled bool) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if err := m.deps.API.SetMaintenance(ctx, enabled); err != nil {
			return errMsg{gen: gen(g), err: err}
		}
		settings, _ := m.deps.API.PublicSettings(ctx)
		return settingsSavedMsg{gen: gen(g), settings: settings}
	}
}

func (m Model) setBanner(g int, enabled bool, text string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if err := m.deps.API.SetBreakingBanner(ctx, enabled, text); err != nil {
			return errMsg{gen: gen(g), err: err}
		}
		settings, _ := m.deps.API.PublicSettings(ctx)
		return settingsSavedMsg{gen: gen(g), settings: settings}
	}
}

func (m Model) resolveAuth() tea.Cmd {
	return func() tea.Msg {
		return authResolvedMsg{state: m.deps.Auth.Resolve(context.Background())}
	}
}

func (m Model) submitLogin(username, password string) tea.Cmd {
	return func() tea.Msg {
		return loginDoneMsg{result: m.deps.Auth.Login(context.Background(), username, password)}
	}
}

func expireToast(id int) tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}
