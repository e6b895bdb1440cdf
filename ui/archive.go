// Copyright (c) 2026 The Crewkerne Gazette.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ui

import (
	"fmt"
	"strings"

	"github.com/crewkernegazette/gazette/models"
)

// archiveModel lists past opinions grouped by the backend's time buckets.
// The cursor walks the flattened list; group labels are display-only.
type archiveModel struct {
	styles Styles
	groups []models.ArchiveGroup
	top    []models.Opinion
	cursor int
}

func newArchiveModel(styles Styles) archiveModel {
	return archiveModel{styles: styles}
}

func (a archiveModel) flatten() []models.Opinion {
	var out []models.Opinion
	for _, g := range a.groups {
		out = append(out, g.Opinions...)
	}
	return out
}

func (a archiveModel) view() string {
	var b strings.Builder
	b.WriteString("\n " + a.styles.Kicker.Render("OPINION ARCHIVE") + "\n")

	if len(a.top) > 0 {
		b.WriteString("\n " + a.styles.Headline.Render("Most debated"))
		for _, op := range a.top {
			b.WriteString("\n  " + fmt.Sprintf("%s  ▲ %d ▼ %d", op.ID, op.Upvotes, op.Downvotes))
		}
		b.WriteString("\n")
	}

	if len(a.groups) == 0 {
		b.WriteString("\n " + a.styles.Byline.Render("The archive is empty.") + "\n")
		return b.String()
	}

	idx := 0
	for _, g := range a.groups {
		b.WriteString("\n " + a.styles.Headline.Render(g.Label))
		for _, op := range g.Opinions {
			line := fmt.Sprintf("%s  ▲ %d ▼ %d", op.ID, op.Upvotes, op.Downvotes)
			if idx == a.cursor {
				b.WriteString("\n" + a.styles.Selected.Render(line))
			} else {
				b.WriteString("\n  " + line)
			}
			idx++
		}
	}
	b.WriteString("\n\n " + a.styles.Byline.Render("enter to open · j/k to move"))
	return b.String()
}
