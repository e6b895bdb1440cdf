// Copyright (c) 2026 The Crewkerne Gazette.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package ui is the terminal front page of the Gazette: a bubbletea app with
// one page model per screen and a shared masthead/footer chrome.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Gazette palette. Print-inspired: ink on newsprint with a red masthead.
var (
	Ink       = lipgloss.Color("#1a1a1a")
	Newsprint = lipgloss.Color("#f5f1e8")
	Masthead  = lipgloss.Color("#8b0000")
	Byline    = lipgloss.Color("#6b6b6b")
	Rule      = lipgloss.Color("#c9c2b4")

	// Semantic colors
	Alert   = lipgloss.Color("#e53935")
	Confirm = lipgloss.Color("#2e7d32")
	Notice  = lipgloss.Color("#f9a825")
)

// Styles holds every lipgloss style the pages share. Built once at startup
// and passed down; pages never construct styles ad hoc.
type Styles struct {
	// Chrome
	MastheadBar lipgloss.Style
	Footer      lipgloss.Style
	Banner      lipgloss.Style
	Maintenance lipgloss.Style

	// Text
	Headline lipgloss.Style
	Kicker   lipgloss.Style
	Body     lipgloss.Style
	Byline   lipgloss.Style
	Rule     lipgloss.Style

	// Interactive
	Selected lipgloss.Style
	Prompt   lipgloss.Style
	Badge    lipgloss.Style

	// Status
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style

	// Voting
	VoteActive lipgloss.Style
	VoteIdle   lipgloss.Style
}

func NewStyles() Styles {
	return Styles{
		MastheadBar: lipgloss.NewStyle().
			Background(Masthead).
			Foreground(Newsprint).
			Padding(0, 2).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(Byline).
			Padding(0, 1),

		Banner: lipgloss.NewStyle().
			Background(Alert).
			Foreground(Newsprint).
			Padding(0, 1).
			Bold(true),

		Maintenance: lipgloss.NewStyle().
			Background(Notice).
			Foreground(Ink).
			Padding(0, 1),

		Headline: lipgloss.NewStyle().
			Foreground(Ink).
			Bold(true),

		Kicker: lipgloss.NewStyle().
			Foreground(Masthead).
			Bold(true),

		Body: lipgloss.NewStyle().
			Foreground(Ink),

		Byline: lipgloss.NewStyle().
			Foreground(Byline).
			Italic(true),

		Rule: lipgloss.NewStyle().
			Foreground(Rule),

		Selected: lipgloss.NewStyle().
			Foreground(Newsprint).
			Background(Masthead).
			Padding(0, 1),

		Prompt: lipgloss.NewStyle().
			Foreground(Masthead),

		Badge: lipgloss.NewStyle().
			Background(Rule).
			Foreground(Ink).
			Padding(0, 1),

		Success: lipgloss.NewStyle().Foreground(Confirm),
		Error:   lipgloss.NewStyle().Foreground(Alert),
		Warning: lipgloss.NewStyle().Foreground(Notice),

		VoteActive: lipgloss.NewStyle().Foreground(Masthead).Bold(true),
		VoteIdle:   lipgloss.NewStyle().Foreground(Byline),
	}
}
