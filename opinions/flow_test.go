// Copyright (c) 2026 The Crewkerne Gazette.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package opinions

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/crewkernegazette/gazette/gazette"
	"github.com/crewkernegazette/gazette/models"
	"github.com/crewkernegazette/gazette/session"
	"github.com/crewkernegazette/gazette/testutil"
	"github.com/crewkernegazette/gazette/transport"
)

func newFlow(t *testing.T) (*Flow, *testutil.FakeGazette, *testutil.MemCreds) {
	t.Helper()

	fake := testutil.NewFakeGazette(t)
	creds := testutil.NewMemCreds()
	api := gazette.NewClient(fake.NewTransport(t, creds))
	return NewFlow(api, creds, zap.NewNop()), fake, creds
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		message  string
	}{
		{name: "empty", username: "", message: "Pick a username first"},
		{name: "whitespace only", username: "   ", message: "Pick a username first"},
		{name: "over 50 chars", username: strings.Repeat("x", 51), message: "Usernames are 50 characters at most"},
		{name: "over 50 runes", username: strings.Repeat("é", 51), message: "Usernames are 50 characters at most"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flow, fake, _ := newFlow(t)

			err := flow.Register(context.Background(), tt.username)

			require.Error(t, err)
			assert.True(t, transport.IsKind(err, transport.KindValidation))
			assert.Equal(t, tt.message, transport.Message(err))
			assert.Zero(t, fake.Requests(), "validation must not hit the network")
		})
	}
}

func TestRegisterPersistsSession(t *testing.T) {
	flow, _, creds := newFlow(t)

	err := flow.Register(context.Background(), "  cider-press  ")

	require.NoError(t, err)
	assert.True(t, flow.Registered())
	assert.Equal(t, "cider-press", flow.Username())
	assert.NotEmpty(t, creds.Get(session.SlotOpinionToken))
}

func TestRegisterMaxLengthAccepted(t *testing.T) {
	flow, _, _ := newFlow(t)

	err := flow.Register(context.Background(), strings.Repeat("x", 50))

	require.NoError(t, err)
	assert.True(t, flow.Registered())
}

func TestRegisterLengthCountsRunes(t *testing.T) {
	flow, _, _ := newFlow(t)

	// 50 accented runes is well over 50 bytes but still a legal name.
	err := flow.Register(context.Background(), strings.Repeat("é", 50))

	require.NoError(t, err)
	assert.True(t, flow.Registered())
}

func TestRegisterConflictVerbatim(t *testing.T) {
	first, fake, _ := newFlow(t)
	require.NoError(t, first.Register(context.Background(), "cider-press"))

	creds := testutil.NewMemCreds()
	second := NewFlow(gazette.NewClient(fake.NewTransport(t, creds)), creds, zap.NewNop())

	err := second.Register(context.Background(), "cider-press")

	require.Error(t, err)
	assert.True(t, transport.IsKind(err, transport.KindConflict))
	assert.Equal(t, "Username already taken", transport.Message(err))
	assert.False(t, second.Registered(), "failed registration must not persist a token")
}

func TestCastVoteRequiresRegistration(t *testing.T) {
	flow, fake, _ := newFlow(t)
	id := fake.AddOpinion("")

	_, err := flow.CastVote(context.Background(), models.SubjectOpinion, id, models.VoteUp)

	require.Error(t, err)
	assert.True(t, transport.IsKind(err, transport.KindUnauthorized))
}

func TestCastVoteToggle(t *testing.T) {
	flow, fake, creds := newFlow(t)
	require.NoError(t, flow.Register(context.Background(), "cider-press"))
	id := fake.AddOpinion("")
	token := creds.Get(session.SlotOpinionToken)

	// First upvote records the vote.
	resp, err := flow.CastVote(context.Background(), models.SubjectOpinion, id, models.VoteUp)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Upvotes)
	require.NotNil(t, resp.UserVote)
	assert.Equal(t, models.VoteUp, *resp.UserVote)
	assert.Equal(t, models.VoteUp, fake.UserVote("opinion:"+id, token))

	// Repeating the same direction toggles it off.
	resp, err = flow.CastVote(context.Background(), models.SubjectOpinion, id, models.VoteUp)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Upvotes)
	assert.Nil(t, resp.UserVote)
	assert.Empty(t, fake.UserVote("opinion:"+id, token))
}

func TestCastVoteFlip(t *testing.T) {
	flow, fake, _ := newFlow(t)
	require.NoError(t, flow.Register(context.Background(), "cider-press"))
	id := fake.AddOpinion("")

	_, err := flow.CastVote(context.Background(), models.SubjectOpinion, id, models.VoteUp)
	require.NoError(t, err)

	resp, err := flow.CastVote(context.Background(), models.SubjectOpinion, id, models.VoteDown)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Upvotes)
	assert.Equal(t, 1, resp.Downvotes)
	require.NotNil(t, resp.UserVote)
	assert.Equal(t, models.VoteDown, *resp.UserVote)
}

func TestCastVoteRoutesComments(t *testing.T) {
	flow, fake, creds := newFlow(t)
	require.NoError(t, flow.Register(context.Background(), "cider-press"))
	opID := fake.AddOpinion("")
	cID := fake.AddComment(opID, "rival", "hot take", 0, 0)

	resp, err := flow.CastVote(context.Background(), models.SubjectComment, cID, models.VoteDown)

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Downvotes)
	token := creds.Get(session.SlotOpinionToken)
	assert.Equal(t, models.VoteDown, fake.UserVote("comment:"+cID, token))
}

func TestAddComment(t *testing.T) {
	flow, fake, _ := newFlow(t)
	require.NoError(t, flow.Register(context.Background(), "cider-press"))
	opID := fake.AddOpinion("")

	comment, err := flow.AddComment(context.Background(), opID, "well said")

	require.NoError(t, err)
	assert.NotEmpty(t, comment.ID)
	assert.Equal(t, "cider-press", comment.Username)
	assert.Equal(t, "well said", comment.Content)
}

func TestAddCommentValidation(t *testing.T) {
	flow, fake, _ := newFlow(t)
	opID := fake.AddOpinion("")

	_, err := flow.AddComment(context.Background(), opID, "anything")
	assert.True(t, transport.IsKind(err, transport.KindUnauthorized), "unregistered users cannot comment")

	require.NoError(t, flow.Register(context.Background(), "cider-press"))

	_, err = flow.AddComment(context.Background(), opID, "   ")
	assert.True(t, transport.IsKind(err, transport.KindValidation))
}

func TestFetchUserVotes(t *testing.T) {
	flow, fake, _ := newFlow(t)
	require.NoError(t, flow.Register(context.Background(), "cider-press"))
	opID := fake.AddOpinion("")

	voted := fake.AddComment(opID, "a", "first", 0, 0)
	skipped := fake.AddComment(opID, "b", "second", 0, 0)
	downed := fake.AddComment(opID, "c", "third", 0, 0)

	_, err := flow.CastVote(context.Background(), models.SubjectComment, voted, models.VoteUp)
	require.NoError(t, err)
	_, err = flow.CastVote(context.Background(), models.SubjectComment, downed, models.VoteDown)
	require.NoError(t, err)

	votes := flow.FetchUserVotes(context.Background(), []string{voted, skipped, downed})

	assert.Equal(t, map[string]string{voted: models.VoteUp, downed: models.VoteDown}, votes)
}

func TestFetchUserVotesUnregistered(t *testing.T) {
	flow, fake, _ := newFlow(t)
	opID := fake.AddOpinion("")
	cID := fake.AddComment(opID, "a", "first", 0, 0)

	votes := flow.FetchUserVotes(context.Background(), []string{cID})

	assert.Empty(t, votes)
	assert.Zero(t, fake.Requests(), "no session means no lookups")
}
