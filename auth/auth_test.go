package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/crewkernegazette/gazette/session"
	"github.com/crewkernegazette/gazette/transport"
)

// memStore is an in-memory CredentialStore for tests.
type memStore map[string]string

func (m memStore) Get(slot string) string { return m[slot] }

func (m memStore) Set(slot, value string) error { m[slot] = value; return nil }

func (m memStore) Clear(slot string) error { delete(m, slot); return nil }

func newMachine(t *testing.T, handler http.Handler, store memStore) (*Machine, *transport.Client) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := transport.New(transport.Options{
		BaseURL:     srv.URL,
		Timeout:     2 * time.Second,
		Logger:      zap.NewNop(),
		Credentials: store,
	})
	if err != nil {
		t.Fatalf("failed to create transport: %v", err)
	}

	return NewMachine(client, store, zap.NewNop()), client
}

func TestResolve_NoTokenGoesAnonymous(t *testing.T) {
	requests := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	})

	store := memStore{}
	m, _ := newMachine(t, handler, store)

	if got := m.Resolve(context.Background()); got != StateAnonymous {
		t.Errorf("state = %v, want anonymous", got)
	}
	if requests != 0 {
		t.Errorf("expected no network call without a token, got %d", requests)
	}
}

func TestResolve_ValidToken(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/me" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.Header.Get("Authorization") != "Bearer stored-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"id":"u1","username":"editor","display_name":"The Editor","role":"admin"}`))
	})

	store := memStore{session.SlotAdminToken: "stored-token"}
	m, _ := newMachine(t, handler, store)

	if got := m.Resolve(context.Background()); got != StateAuthenticated {
		t.Fatalf("state = %v, want authenticated", got)
	}
	if user := m.User(); user == nil || user.Username != "editor" {
		t.Errorf("user = %+v, want editor", user)
	}
}

func TestResolve_RejectedTokenIsCleared(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Unauthorized"}`))
	})

	store := memStore{session.SlotAdminToken: "expired-token"}
	m, _ := newMachine(t, handler, store)

	if got := m.Resolve(context.Background()); got != StateAnonymous {
		t.Errorf("state = %v, want anonymous", got)
	}
	if store.Get(session.SlotAdminToken) != "" {
		t.Error("rejected token should be cleared from the store")
	}
}

func TestLogin_FallbackChain(t *testing.T) {
	tests := []struct {
		name          string
		primaryStatus int
		primaryBody   string
		fallbackOK    bool
		wantSuccess   bool
		wantError     string
		wantToken     string
	}{
		{
			name:          "primary succeeds",
			primaryStatus: http.StatusOK,
			primaryBody:   `{"token":"primary-tok","user":{"username":"editor"}}`,
			wantSuccess:   true,
			wantToken:     "primary-tok",
		},
		{
			name:          "primary 500, fallback succeeds with its own token",
			primaryStatus: http.StatusInternalServerError,
			primaryBody:   `{"error":"Internal Server Error"}`,
			fallbackOK:    true,
			wantSuccess:   true,
			wantToken:     "fallback-tok",
		},
		{
			name:          "both reject credentials",
			primaryStatus: http.StatusUnauthorized,
			primaryBody:   `{"error":"Unauthorized","message":"bad password"}`,
			wantSuccess:   false,
			wantError:     "Invalid username or password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				switch r.URL.Path {
				case "/auth/login":
					w.WriteHeader(tt.primaryStatus)
					w.Write([]byte(tt.primaryBody))
				case "/auth/emergency-login":
					if tt.fallbackOK {
						w.Write([]byte(`{"token":"fallback-tok","user":{"username":"editor"}}`))
					} else {
						w.WriteHeader(tt.primaryStatus)
						w.Write([]byte(tt.primaryBody))
					}
				default:
					w.WriteHeader(http.StatusNotFound)
				}
			})

			store := memStore{}
			m, _ := newMachine(t, handler, store)

			result := m.Login(context.Background(), "editor", "hunter2")

			if result.Success != tt.wantSuccess {
				t.Fatalf("success = %v, want %v (error: %q)", result.Success, tt.wantSuccess, result.Error)
			}
			if tt.wantSuccess {
				if m.State() != StateAuthenticated {
					t.Errorf("state = %v, want authenticated", m.State())
				}
				if store.Get(session.SlotAdminToken) != tt.wantToken {
					t.Errorf("stored token = %q, want %q", store.Get(session.SlotAdminToken), tt.wantToken)
				}
			} else if result.Error != tt.wantError {
				t.Errorf("error = %q, want %q", result.Error, tt.wantError)
			}
		})
	}
}

func TestLogin_BothEndpointsDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	store := memStore{}
	client, err := transport.New(transport.Options{
		BaseURL:     url,
		Timeout:     time.Second,
		Logger:      zap.NewNop(),
		Credentials: store,
	})
	if err != nil {
		t.Fatal(err)
	}
	m := NewMachine(client, store, zap.NewNop())

	result := m.Login(context.Background(), "editor", "hunter2")
	if result.Success {
		t.Fatal("expected failure when both endpoints are unreachable")
	}
	if result.Error != "The Gazette is unavailable right now - try again shortly" {
		t.Errorf("error = %q, want service-unavailable message", result.Error)
	}
}

func TestLogout_StopsBearerAttachment(t *testing.T) {
	var lastAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastAuth = r.Header.Get("Authorization")
		if lastAuth == "" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"Unauthorized"}`))
			return
		}
		w.Write([]byte(`{"username":"editor"}`))
	})

	store := memStore{session.SlotAdminToken: "live-token"}
	m, client := newMachine(t, handler, store)

	if err := client.Get(context.Background(), "/auth/me", session.SlotAdminToken, nil); err != nil {
		t.Fatalf("authenticated request should succeed: %v", err)
	}

	m.Logout()

	if m.State() != StateAnonymous {
		t.Errorf("state = %v, want anonymous", m.State())
	}

	err := client.Get(context.Background(), "/auth/me", session.SlotAdminToken, nil)
	if !transport.IsKind(err, transport.KindUnauthorized) {
		t.Fatalf("expected unauthorized after logout, got %v", err)
	}
	if lastAuth != "" {
		t.Errorf("request after logout still carried Authorization %q", lastAuth)
	}
}

func TestInvalidate_SoftLogout(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"username":"editor"}`))
	})

	store := memStore{session.SlotAdminToken: "tok"}
	m, _ := newMachine(t, handler, store)
	m.Resolve(context.Background())

	m.Invalidate()

	if m.State() != StateAnonymous {
		t.Errorf("state = %v, want anonymous", m.State())
	}
	if store.Get(session.SlotAdminToken) != "" {
		t.Error("invalidation should clear the stored token")
	}

	// Idempotent when there is nothing to invalidate.
	m.Invalidate()
	if m.State() != StateAnonymous {
		t.Errorf("state = %v, want anonymous", m.State())
	}
}
