// Copyright (c) 2026 The Crewkerne Gazette.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Crewkerne Gazette terminal
client.

The Gazette is a local news site; this client renders it in the terminal:
front page, category sections, the opinion of the day with anonymous voting
and comments, a contact form, and the newsroom dashboard for admins.

# Running

	gazette                 open the paper
	gazette login <user>    sign in as an admin (password via prompt or GAZETTE_PASSWORD)
	gazette logout          drop the stored admin session
	gazette status          show stored sessions and the target backend

# Configuration

Flags fall back to environment variables, then a .env file, then defaults:

  - GAZETTE_ENV (-e): dev or prod (default: prod)
  - GAZETTE_BASE_URL (-u): backend base URL override
  - GAZETTE_DATA_DIR (--data-dir): local state directory (default: ~/.gazette)

# Architecture

The client uses a layered architecture with dependency injection:

  - transport: HTTP access, bearer attachment, error normalization
  - session: durable credential slots backed by SQLite
  - auth: the admin session state machine
  - gazette: typed API surface over the transport
  - opinions: registration, voting and comment-thread logic
  - ui: the bubbletea pages
  - models: request/response types
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
