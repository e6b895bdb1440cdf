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
	"github.com/crewkernegazette/gazette/opinions"
)

// opinionModel is the opinion-of-the-day screen: the current opinion with
// its tallies, the ranked comment thread, and the registration / comment
// prompts. Browsing runs on keys and on horizontal mouse drags.
type opinionModel struct {
	styles Styles
	width  int
	height int

	detail   models.OpinionDetail
	userVote string
	thread   *opinions.Thread
	cursor   int // selected comment
	missing  bool

	dragging   bool
	dragStartX int

	registerOpen  bool
	registerBusy  bool
	registerErr   string
	registerInput textinput.Model

	commentOpen  bool
	commentBusy  bool
	commentInput textinput.Model
}

func newOpinionModel(styles Styles) opinionModel {
	reg := textinput.New()
	reg.Placeholder = "pick a username"
	reg.CharLimit = opinions.MaxUsernameLen
	reg.Width = 40

	com := textinput.New()
	com.Placeholder = "say your piece"
	com.CharLimit = 500
	com.Width = 60

	return opinionModel{
		styles:        styles,
		thread:        opinions.NewThread(nil),
		registerInput: reg,
		commentInput:  com,
	}
}

func (o *opinionModel) SetSize(w, h int) {
	o.width = w
	o.height = h
}

func (o *opinionModel) setDetail(detail models.OpinionDetail, userVote string) {
	o.detail = detail
	o.userVote = userVote
	o.thread = opinions.NewThread(nil)
	o.cursor = 0
	o.dragging = false
	o.missing = false
}

func (o *opinionModel) setComments(comments []models.Comment, votes map[string]string) {
	o.thread = opinions.NewThread(comments)
	o.thread.SetUserVotes(votes)
	if o.cursor >= len(comments) {
		o.cursor = 0
	}
}

func (o *opinionModel) applyVote(subject, id string, resp models.VoteResponse) {
	if subject == models.SubjectOpinion && id == o.detail.Opinion.ID {
		o.detail.Opinion.Upvotes = resp.Upvotes
		o.detail.Opinion.Downvotes = resp.Downvotes
		if resp.UserVote != nil {
			o.userVote = *resp.UserVote
		} else {
			o.userVote = ""
		}
		return
	}
	o.thread.ApplyVote(id, resp)
}

func (o *opinionModel) addComment(c models.Comment) {
	o.thread.Prepend(c)
	o.cursor = 0
	o.closeComment()
}

func (o *opinionModel) openRegister() {
	o.registerOpen = true
	o.registerErr = ""
	o.registerInput.Reset()
	o.registerInput.Focus()
}

func (o *opinionModel) closeRegister() {
	o.registerOpen = false
	o.registerErr = ""
	o.registerInput.Reset()
	o.registerInput.Blur()
}

func (o *opinionModel) openComment() {
	o.commentOpen = true
	o.commentInput.Reset()
	o.commentInput.Focus()
}

func (o *opinionModel) closeComment() {
	o.commentOpen = false
	o.commentBusy = false
	o.commentInput.Reset()
	o.commentInput.Blur()
}

func (o opinionModel) typing() bool {
	return o.registerOpen || o.commentOpen
}

// updateOpinionMouse turns a left-button press/release pair into a swipe.
// The threshold and direction mapping live in the opinions package; the page
// only tracks the drag endpoints.
func (m Model) updateOpinionMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.opinions.dragging = true
			m.opinions.dragStartX = msg.X
		}
	case tea.MouseActionRelease:
		if !m.opinions.dragging {
			break
		}
		m.opinions.dragging = false
		id, ok := opinions.ResolveSwipe(m.opinions.dragStartX, msg.X, m.opinions.detail.PrevID, m.opinions.detail.NextID)
		if ok {
			m.navigate(PageOpinions)
			return m, m.loadOpinion(m.pageGen, id)
		}
	}
	return m, nil
}

func (m Model) updateOpinionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	o := &m.opinions

	if o.registerOpen {
		switch msg.Type {
		case tea.KeyEsc:
			o.closeRegister()
			return m, nil
		case tea.KeyEnter:
			if o.registerBusy {
				return m, nil
			}
			o.registerBusy = true
			o.registerErr = ""
			return m, m.register(m.pageGen, o.registerInput.Value())
		}
		var cmd tea.Cmd
		o.registerInput, cmd = o.registerInput.Update(msg)
		return m, cmd
	}

	if o.commentOpen {
		switch msg.Type {
		case tea.KeyEsc:
			o.closeComment()
			return m, nil
		case tea.KeyEnter:
			if o.commentBusy {
				return m, nil
			}
			text := o.commentInput.Value()
			if strings.TrimSpace(text) == "" {
				return m, nil
			}
			o.commentBusy = true
			return m, m.addComment(m.pageGen, o.detail.Opinion.ID, text)
		}
		var cmd tea.Cmd
		o.commentInput, cmd = o.commentInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "u", "d":
		direction := models.VoteUp
		if msg.String() == "d" {
			direction = models.VoteDown
		}
		if !m.deps.Flow.Registered() {
			o.openRegister()
			return m, nil
		}
		return m, m.castVote(m.pageGen, models.SubjectOpinion, o.detail.Opinion.ID, direction)

	case "U", "D":
		comments := o.thread.Comments()
		if o.cursor >= len(comments) {
			return m, nil
		}
		direction := models.VoteUp
		if msg.String() == "D" {
			direction = models.VoteDown
		}
		if !m.deps.Flow.Registered() {
			o.openRegister()
			return m, nil
		}
		return m, m.castVote(m.pageGen, models.SubjectComment, comments[o.cursor].ID, direction)

	case "n", "right":
		if o.detail.NextID != nil {
			id := *o.detail.NextID
			m.navigate(PageOpinions)
			return m, m.loadOpinion(m.pageGen, id)
		}

	case "p", "left":
		if o.detail.PrevID != nil {
			id := *o.detail.PrevID
			m.navigate(PageOpinions)
			return m, m.loadOpinion(m.pageGen, id)
		}

	case "j", "down":
		if o.cursor < len(o.thread.Comments())-1 {
			o.cursor++
		}

	case "k", "up":
		if o.cursor > 0 {
			o.cursor--
		}

	case "m":
		if !m.deps.Flow.Registered() {
			o.openRegister()
			return m, nil
		}
		o.openComment()

	case "r":
		if !m.deps.Flow.Registered() {
			o.openRegister()
		}
	}

	return m, nil
}

func (o opinionModel) view() string {
	var b strings.Builder

	if o.missing {
		b.WriteString("\n " + o.styles.Kicker.Render("OPINION"))
		b.WriteString("\n\n " + o.styles.Body.Render("That opinion has gone missing."))
		b.WriteString("\n " + o.styles.Byline.Render("press v for the archive"))
		b.WriteString("\n")
		return b.String()
	}

	op := o.detail.Opinion
	b.WriteString("\n " + o.styles.Kicker.Render("OPINION"))
	b.WriteString("  " + o.styles.Byline.Render(humanize.Time(op.CreatedAt)))
	b.WriteString("\n")

	if op.ImageURL != "" {
		b.WriteString(" " + o.styles.Body.Render("["+op.ImageURL+"]") + "\n")
	}

	b.WriteString("\n " + o.voteLine(op.Upvotes, op.Downvotes, o.userVote))
	b.WriteString("  " + o.styles.Byline.Render(o.neighbourHint()))
	b.WriteString("\n")

	b.WriteString("\n " + o.styles.Kicker.Render("COMMENTS"))
	comments := o.thread.Comments()
	if len(comments) == 0 {
		b.WriteString("\n " + o.styles.Byline.Render("No comments yet. Press m to be first."))
	}
	for i, c := range comments {
		line := fmt.Sprintf("%s  %s", o.styles.Headline.Render(c.Username), o.styles.Byline.Render(humanize.Time(c.CreatedAt)))
		body := c.Content
		score := o.voteLine(c.Upvotes, c.Downvotes, o.thread.UserVote(c.ID))
		if i == o.cursor {
			b.WriteString("\n" + o.styles.Selected.Render(line))
		} else {
			b.WriteString("\n " + line)
		}
		b.WriteString("\n   " + o.styles.Body.Render(body))
		b.WriteString("\n   " + score)
	}
	b.WriteString("\n")

	if o.registerOpen {
		b.WriteString("\n " + o.styles.Prompt.Render("Register to vote and comment:"))
		b.WriteString("\n " + o.registerInput.View())
		if o.registerBusy {
			b.WriteString("\n " + o.styles.Byline.Render("registering..."))
		}
		if o.registerErr != "" {
			b.WriteString("\n " + o.styles.Error.Render(o.registerErr))
		}
		b.WriteString("\n " + o.styles.Byline.Render("enter to register · esc to cancel"))
	} else if o.commentOpen {
		b.WriteString("\n " + o.commentInput.View())
		if o.commentBusy {
			b.WriteString("\n " + o.styles.Byline.Render("posting..."))
		}
		b.WriteString("\n " + o.styles.Byline.Render("enter to post · esc to cancel"))
	} else {
		b.WriteString("\n " + o.styles.Byline.Render("u/d vote · U/D vote comment · m comment · n/p or drag to browse"))
	}

	return b.String()
}

func (o opinionModel) voteLine(up, down int, userVote string) string {
	upStyle, downStyle := o.styles.VoteIdle, o.styles.VoteIdle
	switch userVote {
	case models.VoteUp:
		upStyle = o.styles.VoteActive
	case models.VoteDown:
		downStyle = o.styles.VoteActive
	}
	return upStyle.Render(fmt.Sprintf("▲ %d", up)) + "  " + downStyle.Render(fmt.Sprintf("▼ %d", down))
}

func (o opinionModel) neighbourHint() string {
	switch {
	case o.detail.PrevID != nil && o.detail.NextID != nil:
		return "← older · newer →"
	case o.detail.PrevID != nil:
		return "← older"
	case o.detail.NextID != nil:
		return "newer →"
	default:
		return ""
	}
}
