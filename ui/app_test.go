// Copyright (c) 2026 The Crewkerne Gazette.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/crewkernegazette/gazette/auth"
	"github.com/crewkernegazette/gazette/gazette"
	"github.com/crewkernegazette/gazette/models"
	"github.com/crewkernegazette/gazette/opinions"
	"github.com/crewkernegazette/gazette/testutil"
)

func newTestModel(t *testing.T) (Model, *testutil.FakeGazette, *testutil.MemCreds) {
	t.Helper()

	fake := testutil.NewFakeGazette(t)
	creds := testutil.NewMemCreds()
	tc := fake.NewTransport(t, creds)
	api := gazette.NewClient(tc)

	m := NewModel(Deps{
		API:    api,
		Auth:   auth.NewMachine(tc, creds, zap.NewNop()),
		Flow:   opinions.NewFlow(api, creds, zap.NewNop()),
		Logger: zap.NewNop(),
	})
	m.width = 100
	m.height = 40
	m.loading = false
	return m, fake, creds
}

// drive runs one Update and returns the new Model plus the command.
func drive(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()

	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func strptr(s string) *string { return &s }

func TestStaleRepliesAreDropped(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.page = PageOpinions
	m.pageGen = 3

	stale := opinionLoadedMsg{
		gen:    gen(2),
		detail: models.OpinionDetail{Opinion: models.Opinion{ID: "op-old"}},
	}
	m, cmd := drive(t, m, stale)

	assert.Nil(t, cmd)
	assert.Empty(t, m.opinions.detail.Opinion.ID, "reply from an abandoned page must not land")

	fresh := opinionLoadedMsg{
		gen:    gen(3),
		detail: models.OpinionDetail{Opinion: models.Opinion{ID: "op-new"}},
	}
	m, _ = drive(t, m, fresh)

	assert.Equal(t, "op-new", m.opinions.detail.Opinion.ID)
}

func TestSwipeAdvancesToNext(t *testing.T) {
	m, fake, _ := newTestModel(t)
	older := fake.AddOpinion("")
	current := fake.AddOpinion("")
	newer := fake.AddOpinion("")

	m.page = PageOpinions
	m.opinions.setDetail(models.OpinionDetail{
		Opinion: models.Opinion{ID: current},
		PrevID:  strptr(older),
		NextID:  strptr(newer),
	}, "")
	startGen := m.pageGen

	m, _ = drive(t, m, tea.MouseMsg{X: 300, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, cmd := drive(t, m, tea.MouseMsg{X: 240, Action: tea.MouseActionRelease})

	require.NotNil(t, cmd)
	assert.Equal(t, startGen+1, m.pageGen, "navigation must invalidate in-flight replies")

	loaded, ok := cmd().(opinionLoadedMsg)
	require.True(t, ok)
	assert.Equal(t, newer, loaded.detail.Opinion.ID)
}

func TestShortDragIsATap(t *testing.T) {
	m, fake, _ := newTestModel(t)
	current := fake.AddOpinion("")
	newer := fake.AddOpinion("")

	m.page = PageOpinions
	m.opinions.setDetail(models.OpinionDetail{
		Opinion: models.Opinion{ID: current},
		NextID:  strptr(newer),
	}, "")
	startGen := m.pageGen

	m, _ = drive(t, m, tea.MouseMsg{X: 300, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, cmd := drive(t, m, tea.MouseMsg{X: 280, Action: tea.MouseActionRelease})

	assert.Nil(t, cmd)
	assert.Equal(t, startGen, m.pageGen)
}

func TestSwipeAtEdgeIsANoOp(t *testing.T) {
	m, fake, _ := newTestModel(t)
	current := fake.AddOpinion("")

	m.page = PageOpinions
	m.opinions.setDetail(models.OpinionDetail{Opinion: models.Opinion{ID: current}}, "")

	m, _ = drive(t, m, tea.MouseMsg{X: 300, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, cmd := drive(t, m, tea.MouseMsg{X: 100, Action: tea.MouseActionRelease})

	assert.Nil(t, cmd)
}

func TestVoteKeyPromptsRegistrationFirst(t *testing.T) {
	m, fake, _ := newTestModel(t)
	id := fake.AddOpinion("")
	before := fake.Requests()

	m.page = PageOpinions
	m.opinions.setDetail(models.OpinionDetail{Opinion: models.Opinion{ID: id}}, "")

	m, cmd := drive(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'u'}})

	assert.Nil(t, cmd)
	assert.True(t, m.opinions.registerOpen)
	assert.Equal(t, before, fake.Requests(), "unregistered vote must not hit the network")
}

func TestVoteKeyCastsWhenRegistered(t *testing.T) {
	m, fake, _ := newTestModel(t)
	id := fake.AddOpinion("")
	require.NoError(t, m.deps.Flow.Register(context.Background(), "cider-press"))

	m.page = PageOpinions
	m.opinions.setDetail(models.OpinionDetail{Opinion: models.Opinion{ID: id}}, "")

	m, cmd := drive(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'u'}})
	require.NotNil(t, cmd)

	applied, ok := cmd().(voteAppliedMsg)
	require.True(t, ok)

	m, _ = drive(t, m, applied)
	assert.Equal(t, 1, m.opinions.detail.Opinion.Upvotes)
	assert.Equal(t, models.VoteUp, m.opinions.userVote)

	// Repeating the vote toggles it off and the highlight follows.
	m, cmd = drive(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'u'}})
	require.NotNil(t, cmd)
	applied, ok = cmd().(voteAppliedMsg)
	require.True(t, ok)

	m, _ = drive(t, m, applied)
	assert.Equal(t, 0, m.opinions.detail.Opinion.Upvotes)
	assert.Empty(t, m.opinions.userVote)
}

func TestNewCommentLandsOnTop(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.page = PageOpinions
	m.opinions.setDetail(models.OpinionDetail{Opinion: models.Opinion{ID: "op-1"}}, "")
	m.opinions.setComments([]models.Comment{
		{ID: "c-1", Upvotes: 8},
		{ID: "c-2", Upvotes: 2},
	}, nil)

	m, _ = drive(t, m, commentAddedMsg{gen: gen(m.pageGen), comment: models.Comment{ID: "c-new", Content: "fresh"}})

	got := m.opinions.thread.Comments()
	require.Len(t, got, 3)
	assert.Equal(t, "c-new", got[0].ID, "a new comment outranks higher scores until the next re-sort")
}

func TestRepeatedEnterPostsOneComment(t *testing.T) {
	m, fake, _ := newTestModel(t)
	id := fake.AddOpinion("")
	require.NoError(t, m.deps.Flow.Register(context.Background(), "cider-press"))

	m.page = PageOpinions
	m.opinions.setDetail(models.OpinionDetail{Opinion: models.Opinion{ID: id}}, "")
	m.opinions.openComment()
	for _, r := range "hot take" {
		m, _ = drive(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	m, cmd := drive(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.opinions.commentBusy)

	// A second enter before the reply lands must not dispatch again.
	m, second := drive(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, second)

	added, ok := cmd().(commentAddedMsg)
	require.True(t, ok)
	require.NoError(t, added.err)

	m, _ = drive(t, m, added)
	assert.False(t, m.opinions.commentBusy)
	assert.False(t, m.opinions.commentOpen)

	got, err := m.deps.API.Comments(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "hot take", got[0].Content)
}

func TestCommentDraftSurvivesFailure(t *testing.T) {
	m, _, _ := newTestModel(t)
	require.NoError(t, m.deps.Flow.Register(context.Background(), "cider-press"))

	m.page = PageOpinions
	m.opinions.setDetail(models.OpinionDetail{Opinion: models.Opinion{ID: "op-nope"}}, "")
	m.opinions.openComment()
	for _, r := range "hot take" {
		m, _ = drive(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	m, cmd := drive(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	added, ok := cmd().(commentAddedMsg)
	require.True(t, ok)
	require.Error(t, added.err)

	m, _ = drive(t, m, added)
	assert.False(t, m.opinions.commentBusy, "a failed post must unlock the form")
	assert.True(t, m.opinions.commentOpen)
	assert.Equal(t, "hot take", m.opinions.commentInput.Value())
}

func TestSessionExpiryLeavesAdminPage(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.page = PageAdmin
	m.authed = true

	m, cmd := drive(t, m, sessionExpiredMsg{})

	assert.False(t, m.authed)
	assert.Equal(t, PageHome, m.page)
	assert.NotNil(t, cmd)
}

func TestMissingOpinionShowsArchiveHint(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.page = PageOpinions

	msg := m.loadOpinion(m.pageGen, "op-nope")()
	missing, ok := msg.(opinionMissingMsg)
	require.True(t, ok, "a 404 must map to the dedicated missing state")

	m, _ = drive(t, m, missing)
	view := m.opinions.view()
	assert.Contains(t, view, "gone missing")
	assert.Contains(t, view, "archive")
}

func TestMaintenanceHidesContentFromAnonymous(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.settings = models.Settings{MaintenanceMode: true}

	view := m.View()
	assert.Contains(t, view, "down for maintenance")

	m.authed = true
	view = m.View()
	assert.NotContains(t, view, "down for maintenance", "admins see past the curtain")
}

func TestRegisterPromptFlow(t *testing.T) {
	m, fake, _ := newTestModel(t)
	id := fake.AddOpinion("")

	m.page = PageOpinions
	m.opinions.setDetail(models.OpinionDetail{Opinion: models.Opinion{ID: id}}, "")
	m.opinions.openRegister()

	for _, r := range "cider-press" {
		m, _ = drive(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m, cmd := drive(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	done, ok := cmd().(registerDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.err)

	m, _ = drive(t, m, done)
	assert.False(t, m.opinions.registerOpen)
	assert.True(t, m.deps.Flow.Registered())
	assert.Equal(t, "cider-press", done.username)
}
