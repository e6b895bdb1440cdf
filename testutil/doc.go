// Copyright (c) 2026 The Crewkerne Gazette.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package testutil provides shared test helpers: an in-memory fake of the
Gazette backend served over httptest, and an in-memory credential store.

FakeGazette implements the opinion, comment, voting and registration
endpoints with the backend's documented vote semantics (one vote per
subject and voter; repeating a direction toggles the vote off; the opposite
direction flips it). Tests seed state with AddOpinion/AddComment and
inspect recorded votes with UserVote.
*/
package testutil
