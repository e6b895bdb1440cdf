// Copyright (c) 2026 The Crewkerne Gazette.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session provides the durable credential store for the Gazette client.

Two independent session types exist: the admin session (a bearer token issued
by login) and the anonymous opinion session (a bearer token plus username
issued by opinion-user registration). They live in separate named slots and
are created, read and destroyed independently - logging out of the admin
dashboard never touches the opinion session, and vice versa.

# Slots

  - admin_token: admin bearer credential
  - opinion_session_token: anonymous voting/commenting credential
  - opinion_username: the registered opinion display name (plain text)
  - device_uuid: stable per-install identifier

# Storage

Slots are persisted in a SQLite database (sessions.db) under the client data
directory, with an in-memory cache in front so reads never block on disk.
*/
package session
