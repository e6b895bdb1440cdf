// Copyright (c) 2026 The Crewkerne Gazette.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package opinions implements the trending-opinions client flow: anonymous
registration, vote casting, comment threads and sequential browsing.

# Registration

A visitor claims a username and receives a bearer session token, persisted
in its own credential slot. The identity has no password and no client-side
expiry handling; it only attributes votes and comments. Empty and oversized
usernames are rejected locally, before any network traffic.

# Voting

The backend owns all voting arithmetic. One vote exists per (subject,
voter); casting sends only a direction, and the response carries the
canonical upvote/downvote tallies plus the caller's resulting vote, which
may be set, flipped, or toggled off by backend policy. Client state is
always replaced with the response - counts are never accumulated locally.

# Comment Ranking

A thread displays comments by net score descending. After any comment vote
the list is stably re-sorted (ties keep their order). A newly posted comment
is prepended regardless of score and holds the top spot until the next
vote-triggered re-sort.

# Browsing

Opinion detail responses include prev/next ids in the backend's ordering.
ResolveSwipe maps a horizontal drag of more than 50 units onto those
neighbours; at the ends of the sequence the gesture is a quiet no-op.
*/
package opinions
