// Copyright (c) 2026 The Crewkerne Gazette.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package opinions

import (
	"context"
	"strings"
	"sync"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/crewkernegazette/gazette/gazette"
	"github.com/crewkernegazette/gazette/models"
	"github.com/crewkernegazette/gazette/session"
	"github.com/crewkernegazette/gazette/transport"
)

// MaxUsernameLen is enforced client-side so an oversized name never costs a
// round trip.
const MaxUsernameLen = 50

// userVoteFetchLimit bounds the concurrent per-comment vote lookups.
const userVoteFetchLimit = 4

// CredentialStore is the slice of the session store the flow needs.
type CredentialStore interface {
	Get(slot string) string
	Set(slot, value string) error
	Clear(slot string) error
}

// Flow drives the anonymous opinion session: registration, vote casting and
// comment creation. It is independent of the admin auth machine - the two
// sessions never share a token namespace.
type Flow struct {
	api    *gazette.Client
	store  CredentialStore
	logger *zap.Logger
}

func NewFlow(api *gazette.Client, store CredentialStore, logger *zap.Logger) *Flow {
	return &Flow{api: api, store: store, logger: logger}
}

// Registered reports whether an opinion session exists.
func (f *Flow) Registered() bool {
	return f.store.Get(session.SlotOpinionToken) != ""
}

// Username returns the registered opinion username, or "".
func (f *Flow) Username() string {
	return f.store.Get(session.SlotOpinionUsername)
}

// Register obtains a lightweight voting identity. Validation happens before
// any network call: an empty or oversized username fails synchronously. On
// success the token and the server-normalized username are persisted.
func (f *Flow) Register(ctx context.Context, username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return &transport.Error{Kind: transport.KindValidation, Message: "Pick a username first"}
	}
	if utf8.RuneCountInString(username) > MaxUsernameLen {
		return &transport.Error{Kind: transport.KindValidation, Message: "Usernames are 50 characters at most"}
	}

	resp, err := f.api.RegisterOpinionUser(ctx, username)
	if err != nil {
		return err
	}

	if err := f.store.Set(session.SlotOpinionToken, resp.SessionToken); err != nil {
		return err
	}
	if err := f.store.Set(session.SlotOpinionUsername, resp.Username); err != nil {
		return err
	}

	f.logger.Info("opinion session registered", zap.String("username", resp.Username))
	return nil
}

// CastVote sends a directional vote and returns the backend's canonical
// tallies. The caller's resulting vote comes back in the response - the
// backend may set, flip or toggle it off; the client only reflects that.
// Callers must route unregistered users to registration instead of calling;
// the guard here is a backstop, not a UI path.
func (f *Flow) CastVote(ctx context.Context, subjectType, id, direction string) (models.VoteResponse, error) {
	if !f.Registered() {
		return models.VoteResponse{}, &transport.Error{
			Kind:    transport.KindUnauthorized,
			Message: "Register a username before voting",
		}
	}

	if subjectType == models.SubjectComment {
		return f.api.VoteComment(ctx, id, direction)
	}
	return f.api.VoteOpinion(ctx, id, direction)
}

// AddComment posts a comment and returns the server's canonical object
// (server-assigned id and timestamp). Text must be non-empty after trimming.
func (f *Flow) AddComment(ctx context.Context, opinionID, text string) (models.Comment, error) {
	if !f.Registered() {
		return models.Comment{}, &transport.Error{
			Kind:    transport.KindUnauthorized,
			Message: "Register a username before commenting",
		}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return models.Comment{}, &transport.Error{Kind: transport.KindValidation, Message: "Comment cannot be empty"}
	}

	return f.api.AddComment(ctx, opinionID, text)
}

// FetchUserVotes looks up the caller's recorded vote for each comment.
// Lookups run concurrently; each targets a disjoint subject, so
// last-write-wins per id is safe. A failed lookup degrades to "no vote
// shown" for that comment only - it never blocks the rest.
func (f *Flow) FetchUserVotes(ctx context.Context, commentIDs []string) map[string]string {
	votes := make(map[string]string, len(commentIDs))
	if !f.Registered() {
		return votes
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(userVoteFetchLimit)

	for _, id := range commentIDs {
		id := id
		g.Go(func() error {
			vote, err := f.api.CommentUserVote(ctx, id)
			if err != nil {
				f.logger.Debug("comment vote lookup failed", zap.String("comment", id), zap.Error(err))
				return nil // best effort
			}
			if vote != nil {
				mu.Lock()
				votes[id] = *vote
				mu.Unlock()
			}
			return nil
		})
	}

	_ = g.Wait()
	return votes
}

// OpinionUserVote fetches the caller's vote on an opinion ("" when none or
// unregistered).
func (f *Flow) OpinionUserVote(ctx context.Context, opinionID string) string {
	if !f.Registered() {
		return ""
	}
	vote, err := f.api.OpinionUserVote(ctx, opinionID)
	if err != nil || vote == nil {
		return ""
	}
	return *vote
}
