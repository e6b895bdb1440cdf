// Copyright (c) 2026 The Crewkerne Gazette.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package transport is the single point of HTTP access to the Gazette backend.

# Policy

  - The base URL is resolved once at construction; all paths are relative.
  - A fixed 20 second timeout applies uniformly (client timeout plus a
    context deadline for in-flight reads).
  - Requests name the credential slot that authenticates them; when the slot
    holds a token it is attached as an Authorization bearer header. An empty
    slot name means anonymous.
  - Multipart uploads keep the writer's own content type so the boundary
    survives; JSON is never forced onto them.
  - Every install sends a stable X-Device-UUID header.

# Error Normalization

Every failure becomes a *transport.Error with one of the kinds

	validation, unauthorized, not-found, conflict, timeout, network, server

carrying the server's human-readable message when the {error,message}
envelope provides one. A 401 additionally fires the OnUnauthorized hook with
the offending slot - a soft-invalidation signal that never forces navigation,
so there are no redirect loops.
*/
package transport
