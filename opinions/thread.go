// Copyright (c) 2026 The Crewkerne Gazette.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package opinions

import (
	"sort"

	"github.com/crewkernegazette/gazette/models"
)

// Thread holds the in-memory comment list for one opinion, plus the cached
// user-vote per comment used for highlighting. The cache is a read-through
// of server state, never the source of truth.
type Thread struct {
	comments  []models.Comment
	userVotes map[string]string
}

// NewThread wraps a server-returned comment list, keeping its order.
func NewThread(comments []models.Comment) *Thread {
	t := &Thread{userVotes: make(map[string]string)}
	t.comments = append(t.comments, comments...)
	return t
}

// Comments returns the list in display order.
func (t *Thread) Comments() []models.Comment {
	return t.comments
}

// Prepend inserts a freshly created comment at the top. A new comment is
// newest-first regardless of its zero score; it keeps that spot until the
// next vote-triggered re-sort touches the list.
func (t *Thread) Prepend(c models.Comment) {
	t.comments = append([]models.Comment{c}, t.comments...)
}

// ApplyVote replaces the counts of one comment with the server's canonical
// tallies, caches the caller's resulting vote, and re-ranks the whole list
// by net score descending. The sort is stable: ties keep their current
// order.
func (t *Thread) ApplyVote(commentID string, resp models.VoteResponse) {
	for i := range t.comments {
		if t.comments[i].ID == commentID {
			t.comments[i].Upvotes = resp.Upvotes
			t.comments[i].Downvotes = resp.Downvotes
			break
		}
	}
	t.SetUserVote(commentID, resp.UserVote)

	sort.SliceStable(t.comments, func(i, j int) bool {
		return t.comments[i].NetVotes() > t.comments[j].NetVotes()
	})
}

// UserVote returns the cached vote for a comment ("" when none).
func (t *Thread) UserVote(commentID string) string {
	return t.userVotes[commentID]
}

// SetUserVote stores or clears the cached vote for a comment.
func (t *Thread) SetUserVote(commentID string, vote *string) {
	if vote == nil {
		delete(t.userVotes, commentID)
		return
	}
	t.userVotes[commentID] = *vote
}

// SetUserVotes merges a batch of lookups into the cache.
func (t *Thread) SetUserVotes(votes map[string]string) {
	for id, vote := range votes {
		t.userVotes[id] = vote
	}
}
