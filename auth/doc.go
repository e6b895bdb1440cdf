// Copyright (c) 2026 The Crewkerne Gazette.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth implements the admin session state machine.

# States

	Unknown -> Checking -> Authenticated | Anonymous

On startup Resolve inspects the stored admin token: absent means Anonymous,
present means Checking followed by a /auth/me verification. A rejected token
is cleared so it cannot fail again on the next boot.

# Login Fallback Chain

Login tries POST /auth/login first and falls back to
POST /auth/emergency-login on any failure, network or rejection. This
tolerates one endpoint being degraded. The succeeding endpoint is logged.
Login reports failure through a LoginResult value, never an error return,
so form code renders inline feedback without wrapping the call.

# Logout and Invalidation

Logout is synchronous and local: it clears the persisted token and the
machine goes Anonymous. Because the transport reads credential slots live,
no stale default header can outlive a logout.

Invalidate is the soft-logout applied when the backend answers 401 for the
admin slot: same cleanup, no forced navigation.
*/
package auth
