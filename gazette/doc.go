// Copyright (c) 2026 The Crewkerne Gazette.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package gazette is the typed API client for the Gazette REST backend.

Everything the terminal client can ask the backend is a method here:
articles (top rail, category sections, detail, related, admin CRUD), contact
messages (public submission, admin triage), trending opinions (latest, top,
archive, detail with neighbours, votes, comments, anonymous registration),
site settings (public read, maintenance and breaking-banner toggles), the
admin dashboard stats payload, and multipart image upload.

Each method names the credential slot that authenticates it. Public reads
are anonymous, vote and comment calls use the opinion session slot, and
admin calls use the admin slot. All persistence, authentication decisions
and voting arithmetic happen on the backend; this package only shapes
requests and decodes canonical responses.
*/
package gazette
