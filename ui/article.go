// Copyright (c) 2026 The Crewkerne Gazette.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/crewkernegazette/gazette/models"
)

// sectionModel lists one category's articles.
type sectionModel struct {
	styles   Styles
	category string
	articles []models.Article
	cursor   int
}

func newSectionModel(styles Styles) sectionModel {
	return sectionModel{styles: styles}
}

func (s sectionModel) view() string {
	var b strings.Builder
	b.WriteString("\n " + s.styles.Kicker.Render(strings.ToUpper(s.category)) + "\n")

	if len(s.articles) == 0 {
		b.WriteString("\n " + s.styles.Byline.Render("Nothing filed under this section yet.") + "\n")
		return b.String()
	}

	for i, a := range s.articles {
		line := a.Title + "  " + s.styles.Byline.Render(humanize.Time(a.CreatedAt))
		if i == s.cursor {
			b.WriteString("\n" + s.styles.Selected.Render(line))
		} else {
			b.WriteString("\n " + line)
		}
	}
	b.WriteString("\n\n " + s.styles.Byline.Render("enter to read · j/k to move"))
	return b.String()
}

// articleModel is the story reader: a scrolling body plus related links.
type articleModel struct {
	styles   Styles
	article  models.Article
	related  []models.Article
	viewport viewport.Model
	ready    bool
	width    int
	height   int
}

func newArticleModel(styles Styles) articleModel {
	return articleModel{styles: styles}
}

func (a *articleModel) SetSize(w, h int) {
	a.width = w
	a.height = h
	a.viewport.Width = w
	a.viewport.Height = bodyHeight(h)
	if a.ready {
		a.viewport.SetContent(a.renderBody())
	}
}

// bodyHeight reserves rows for the masthead, headline block and footer.
func bodyHeight(h int) int {
	reserved := 9
	if h-reserved < 3 {
		return 3
	}
	return h - reserved
}

func (a *articleModel) set(article models.Article, related []models.Article) {
	a.article = article
	a.related = related
	a.viewport = viewport.New(a.width, bodyHeight(a.height))
	a.viewport.SetContent(a.renderBody())
	a.ready = true
}

func (a articleModel) renderBody() string {
	var b strings.Builder
	b.WriteString(a.styles.Body.Render(a.article.Body))

	if len(a.related) > 0 {
		b.WriteString("\n\n" + a.styles.Kicker.Render("RELATED"))
		for _, r := range a.related {
			b.WriteString("\n · " + r.Title)
		}
	}
	return b.String()
}

func (a articleModel) update(msg tea.KeyMsg) (articleModel, tea.Cmd) {
	if !a.ready {
		return a, nil
	}
	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	return a, cmd
}

func (a articleModel) view() string {
	if !a.ready {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n " + a.styles.Kicker.Render(strings.ToUpper(a.article.Category)))
	if a.article.IsBreaking {
		b.WriteString(" " + a.styles.Banner.Render("BREAKING"))
	}
	b.WriteString("\n " + a.styles.Headline.Render(a.article.Title))
	b.WriteString("\n " + a.styles.Byline.Render(humanize.Time(a.article.CreatedAt)))
	b.WriteString("\n\n")
	b.WriteString(a.viewport.View())
	return b.String()
}
