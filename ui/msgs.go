// Copyright (c) 2026 The Crewkerne Gazette.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ui

import (
	"github.com/crewkernegazette/gazette/auth"
	"github.com/crewkernegazette/gazette/models"
)

// Async replies carry the navigation generation they were issued under. The
// root model drops any reply whose generation is stale; a page that has been
// left can never mutate the page that replaced it.
type generational interface {
	generation() int
}

type gen int

func (g gen) generation() int { return int(g) }

type errMsg struct {
	gen
	err error
}

type homeLoadedMsg struct {
	gen
	rail     models.TopRail
	settings models.Settings
}

type sectionLoadedMsg struct {
	gen
	category string
	articles []models.Article
}

type articleLoadedMsg struct {
	gen
	article models.Article
	related []models.Article
}

type opinionLoadedMsg struct {
	gen
	detail   models.OpinionDetail
	userVote string
}

type commentsLoadedMsg struct {
	gen
	opinionID string
	comments  []models.Comment
	userVotes map[string]string
}

type voteAppliedMsg struct {
	gen
	subject string
	id      string
	resp    models.VoteResponse
}

type registerDoneMsg struct {
	gen
	username string
	err      error
}

type commentAddedMsg struct {
	gen
	comment models.Comment
	err     error
}

type archiveLoadedMsg struct {
	gen
	groups []models.ArchiveGroup
	top    []models.Opinion
}

type opinionMissingMsg struct {
	gen
}

type contactSentMsg struct {
	gen
	err error
}

type dashboardLoadedMsg struct {
	gen
	stats    models.DashboardStats
	contacts []models.Contact
	settings models.Settings
}

type contactUpdatedMsg struct {
	gen
	contact models.Contact
}

type contactDeletedMsg struct {
	gen
	id string
}

type settingsSavedMsg struct {
	gen
	settings models.Settings
}

// Auth messages are not generational: the admin session is app-wide state,
// not page state.
type authResolvedMsg struct {
	state auth.State
}

type loginDoneMsg struct {
	result auth.LoginResult
}

type sessionExpiredMsg struct{}

type toastExpiredMsg struct {
	id int
}
