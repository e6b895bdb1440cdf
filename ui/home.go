// Copyright (c) 2026 The Crewkerne Gazette.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ui

import (
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/crewkernegazette/gazette/models"
)

// homeModel renders the top rail: lead story, secondary list, grid.
type homeModel struct {
	styles Styles
	rail   models.TopRail
	width  int
}

func newHomeModel(styles Styles) homeModel {
	return homeModel{styles: styles}
}

func (h *homeModel) SetSize(w, _ int) {
	h.width = w
}

func (h homeModel) view() string {
	var b strings.Builder

	if h.rail.Lead != nil {
		lead := h.rail.Lead
		b.WriteString("\n")
		b.WriteString(" " + h.styles.Kicker.Render(strings.ToUpper(lead.Category)))
		b.WriteString("\n ")
		b.WriteString(h.styles.Headline.Render(lead.Title))
		b.WriteString("\n ")
		b.WriteString(h.styles.Byline.Render(humanize.Time(lead.CreatedAt)))
		b.WriteString("\n\n ")
		b.WriteString(h.styles.Body.Render(lead.Summary))
		b.WriteString("\n")
	}

	if len(h.rail.Secondary) > 0 {
		b.WriteString("\n" + h.rule())
		for _, a := range h.rail.Secondary {
			b.WriteString("\n " + h.styles.Headline.Render(a.Title))
			b.WriteString("\n " + h.styles.Byline.Render(strings.ToUpper(a.Category)+" · "+humanize.Time(a.CreatedAt)))
			b.WriteString("\n")
		}
	}

	if len(h.rail.Grid) > 0 {
		b.WriteString("\n" + h.rule())
		for _, a := range h.rail.Grid {
			b.WriteString("\n " + h.styles.Body.Render(a.Title) + "  " + h.styles.Badge.Render(a.Category))
		}
		b.WriteString("\n")
	}

	if h.rail.Lead == nil && len(h.rail.Secondary) == 0 && len(h.rail.Grid) == 0 {
		b.WriteString("\n " + h.styles.Byline.Render("Nothing on the front page yet."))
		b.WriteString("\n")
	}

	return b.String()
}

func (h homeModel) rule() string {
	w := h.width
	if w <= 0 {
		w = 72
	}
	return h.styles.Rule.Render(strings.Repeat("─", w))
}
