// Copyright (c) 2026 The Crewkerne Gazette.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the wire types shared between the Gazette terminal
client and the REST backend.

# Type Categories

Request types mirror the JSON bodies the backend accepts (login, opinion-user
registration, vote casting, comment creation, contact submission, settings
toggles).

Response types mirror the backend's canonical replies. VoteResponse is the
important one: after any vote the backend returns the full tallies plus the
caller's resulting vote. Client code replaces its cached counts with these
values and never accumulates counts locally.

Domain types (Article, Opinion, Comment, Contact, Settings, DashboardStats)
are display payloads. Opinions and comments expose NetVotes, the derived
upvotes-minus-downvotes score used for ranking.

# Error Envelope

All backend errors share the ErrorResponse envelope:

	{"error": "Conflict", "message": "Username already taken"}

The transport package decodes this envelope and surfaces Message to callers.
*/
package models
