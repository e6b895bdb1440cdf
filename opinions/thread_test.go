// Copyright (c) 2026 The Crewkerne Gazette.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package opinions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewkernegazette/gazette/models"
)

func ids(comments []models.Comment) []string {
	out := make([]string, len(comments))
	for i, c := range comments {
		out[i] = c.ID
	}
	return out
}

func strptr(s string) *string { return &s }

func TestThreadPrependStaysOnTop(t *testing.T) {
	thread := NewThread([]models.Comment{
		{ID: "c-1", Upvotes: 5},
		{ID: "c-2", Upvotes: 3},
	})

	thread.Prepend(models.Comment{ID: "c-new"})

	// A fresh zero-score comment sits above higher-scored ones until the
	// next vote re-ranks the list.
	assert.Equal(t, []string{"c-new", "c-1", "c-2"}, ids(thread.Comments()))
}

func TestThreadApplyVoteReorders(t *testing.T) {
	thread := NewThread([]models.Comment{
		{ID: "c-1", Upvotes: 5},
		{ID: "c-2", Upvotes: 3},
		{ID: "c-3", Upvotes: 1},
	})

	thread.ApplyVote("c-3", models.VoteResponse{Upvotes: 9, UserVote: strptr(models.VoteUp)})

	assert.Equal(t, []string{"c-3", "c-1", "c-2"}, ids(thread.Comments()))
	assert.Equal(t, models.VoteUp, thread.UserVote("c-3"))
}

func TestThreadApplyVoteStableOnTies(t *testing.T) {
	thread := NewThread([]models.Comment{
		{ID: "c-1", Upvotes: 2},
		{ID: "c-2", Upvotes: 2},
		{ID: "c-3", Upvotes: 2},
	})

	// Tally unchanged by the toggle-off; equal scores must keep their
	// existing order.
	thread.ApplyVote("c-2", models.VoteResponse{Upvotes: 2, UserVote: nil})

	assert.Equal(t, []string{"c-1", "c-2", "c-3"}, ids(thread.Comments()))
}

func TestThreadApplyVoteClearsCache(t *testing.T) {
	thread := NewThread([]models.Comment{{ID: "c-1", Upvotes: 1}})
	thread.SetUserVote("c-1", strptr(models.VoteUp))

	thread.ApplyVote("c-1", models.VoteResponse{Upvotes: 0, UserVote: nil})

	assert.Empty(t, thread.UserVote("c-1"))
	require.Len(t, thread.Comments(), 1)
	assert.Equal(t, 0, thread.Comments()[0].Upvotes)
}

func TestThreadNegativeScoresRankLast(t *testing.T) {
	thread := NewThread([]models.Comment{
		{ID: "c-1", Upvotes: 1, Downvotes: 4},
		{ID: "c-2"},
		{ID: "c-3", Upvotes: 2},
	})

	thread.ApplyVote("c-3", models.VoteResponse{Upvotes: 3, UserVote: strptr(models.VoteUp)})

	assert.Equal(t, []string{"c-3", "c-2", "c-1"}, ids(thread.Comments()))
}

func TestThreadSetUserVotesMerges(t *testing.T) {
	thread := NewThread(nil)
	thread.SetUserVote("c-1", strptr(models.VoteDown))

	thread.SetUserVotes(map[string]string{"c-2": models.VoteUp})

	assert.Equal(t, models.VoteDown, thread.UserVote("c-1"))
	assert.Equal(t, models.VoteUp, thread.UserVote("c-2"))
	assert.Empty(t, thread.UserVote("c-3"))
}
