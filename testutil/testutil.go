// Copyright (c) 2026 The Crewkerne Gazette.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/crewkernegazette/gazette/models"
	"github.com/crewkernegazette/gazette/transport"
)

// MemCreds is an in-memory credential store for tests.
type MemCreds struct {
	mu    sync.Mutex
	slots map[string]string
}

func NewMemCreds() *MemCreds {
	return &MemCreds{slots: make(map[string]string)}
}

func (m *MemCreds) Get(slot string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slots[slot]
}

func (m *MemCreds) Set(slot, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[slot] = value
	return nil
}

func (m *MemCreds) Clear(slot string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, slot)
	return nil
}

// FakeGazette is an in-memory stand-in for the Gazette backend, serving the
// endpoints the client exercises. Vote semantics follow the documented
// backend contract: one vote per (subject, voter); a repeated same-direction
// vote toggles the vote off; an opposite vote flips it.
type FakeGazette struct {
	Server *httptest.Server

	mu        sync.Mutex
	opinions  map[string]*models.Opinion
	order     []string // chronological creation order
	comments  map[string][]models.Comment
	votes     map[string]map[string]string // subject key -> voter token -> direction
	usernames map[string]string            // username -> session token
	nextID    int
	requests  int64
}

// Requests returns the number of HTTP requests the fake has served.
func (f *FakeGazette) Requests() int64 {
	return atomic.LoadInt64(&f.requests)
}

// NewFakeGazette starts the fake backend and closes it with the test.
func NewFakeGazette(t *testing.T) *FakeGazette {
	t.Helper()

	f := &FakeGazette{
		opinions:  make(map[string]*models.Opinion),
		comments:  make(map[string][]models.Comment),
		votes:     make(map[string]map[string]string),
		usernames: make(map[string]string),
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.Server.Close)
	return f
}

// NewTransport wires a transport client at the fake backend.
func (f *FakeGazette) NewTransport(t *testing.T, creds transport.CredentialSource) *transport.Client {
	t.Helper()

	c, err := transport.New(transport.Options{
		BaseURL:     f.Server.URL,
		Timeout:     5 * time.Second,
		Logger:      zap.NewNop(),
		Credentials: creds,
	})
	if err != nil {
		t.Fatalf("failed to create transport: %v", err)
	}
	return c
}

// AddOpinion seeds an opinion and returns its id.
func (f *FakeGazette) AddOpinion(imageURL string) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	id := fmt.Sprintf("op-%d", f.nextID)
	f.opinions[id] = &models.Opinion{
		ID:        id,
		ImageURL:  imageURL,
		CreatedAt: time.Now().Add(time.Duration(f.nextID) * time.Second),
	}
	f.order = append(f.order, id)
	return id
}

// AddComment seeds a comment on an opinion and returns its id.
func (f *FakeGazette) AddComment(opinionID, username, content string, up, down int) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	id := fmt.Sprintf("c-%d", f.nextID)
	f.comments[opinionID] = append(f.comments[opinionID], models.Comment{
		ID:        id,
		OpinionID: opinionID,
		Username:  username,
		Content:   content,
		Upvotes:   up,
		Downvotes: down,
		CreatedAt: time.Now().Add(time.Duration(f.nextID) * time.Second),
	})
	return id
}

// UserVote reports the recorded vote for a subject/token pair ("" if none).
func (f *FakeGazette) UserVote(subjectKey, token string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.votes[subjectKey][token]
}

func bearer(r *http.Request) string {
	return strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.ErrorResponse{Error: http.StatusText(status), Message: message})
}

func (f *FakeGazette) handle(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt64(&f.requests, 1)
	path := r.URL.Path

	switch {
	case path == "/opinion-users/register" && r.Method == http.MethodPost:
		f.handleRegister(w, r)
	case path == "/opinions/latest":
		f.handleLatest(w)
	case strings.HasPrefix(path, "/opinions/") && strings.HasSuffix(path, "/vote") && r.Method == http.MethodPost:
		id := strings.TrimSuffix(strings.TrimPrefix(path, "/opinions/"), "/vote")
		f.handleVote(w, r, "opinion:"+id, f.opinionTally(id))
	case strings.HasPrefix(path, "/opinions/") && strings.HasSuffix(path, "/user-vote"):
		id := strings.TrimSuffix(strings.TrimPrefix(path, "/opinions/"), "/user-vote")
		f.handleUserVote(w, r, "opinion:"+id)
	case strings.HasPrefix(path, "/opinions/") && strings.HasSuffix(path, "/comments") && r.Method == http.MethodGet:
		f.handleComments(w, strings.TrimSuffix(strings.TrimPrefix(path, "/opinions/"), "/comments"))
	case strings.HasPrefix(path, "/opinions/") && strings.HasSuffix(path, "/comments") && r.Method == http.MethodPost:
		f.handleAddComment(w, r, strings.TrimSuffix(strings.TrimPrefix(path, "/opinions/"), "/comments"))
	case strings.HasPrefix(path, "/opinions/"):
		f.handleOpinion(w, strings.TrimPrefix(path, "/opinions/"))
	case strings.HasPrefix(path, "/comments/") && strings.HasSuffix(path, "/vote") && r.Method == http.MethodPost:
		id := strings.TrimSuffix(strings.TrimPrefix(path, "/comments/"), "/vote")
		f.handleVote(w, r, "comment:"+id, f.commentTally(id))
	case strings.HasPrefix(path, "/comments/") && strings.HasSuffix(path, "/user-vote"):
		id := strings.TrimSuffix(strings.TrimPrefix(path, "/comments/"), "/user-vote")
		f.handleUserVote(w, r, "comment:"+id)
	default:
		writeError(w, http.StatusNotFound, "no such endpoint: "+path)
	}
}

func (f *FakeGazette) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterOpinionUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Username == "" {
		writeError(w, http.StatusBadRequest, "username is required")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, taken := f.usernames[req.Username]; taken {
		writeError(w, http.StatusConflict, "Username already taken")
		return
	}

	f.nextID++
	token := fmt.Sprintf("opinion-tok-%d", f.nextID)
	f.usernames[req.Username] = token

	writeJSON(w, http.StatusCreated, models.RegisterOpinionUserResponse{
		SessionToken: token,
		Username:     req.Username,
	})
}

func (f *FakeGazette) neighbours(id string) (prev, next *string) {
	for i, oid := range f.order {
		if oid != id {
			continue
		}
		if i > 0 {
			p := f.order[i-1]
			prev = &p
		}
		if i < len(f.order)-1 {
			n := f.order[i+1]
			next = &n
		}
		return prev, next
	}
	return nil, nil
}

// opinionTally recomputes counts from the vote map into the opinion record.
func (f *FakeGazette) opinionTally(id string) func() (int, int) {
	return func() (int, int) {
		up, down := 0, 0
		for _, dir := range f.votes["opinion:"+id] {
			if dir == models.VoteUp {
				up++
			} else {
				down++
			}
		}
		if op, ok := f.opinions[id]; ok {
			op.Upvotes, op.Downvotes = up, down
		}
		return up, down
	}
}

func (f *FakeGazette) commentTally(id string) func() (int, int) {
	return func() (int, int) {
		up, down := 0, 0
		for _, dir := range f.votes["comment:"+id] {
			if dir == models.VoteUp {
				up++
			} else {
				down++
			}
		}
		for opID, list := range f.comments {
			for i := range list {
				if list[i].ID == id {
					f.comments[opID][i].Upvotes = up
					f.comments[opID][i].Downvotes = down
				}
			}
		}
		return up, down
	}
}

func (f *FakeGazette) handleVote(w http.ResponseWriter, r *http.Request, subjectKey string, tally func() (int, int)) {
	token := bearer(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "session token required")
		return
	}

	var req models.CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Direction != models.VoteUp && req.Direction != models.VoteDown {
		writeError(w, http.StatusBadRequest, "direction must be up or down")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.votes[subjectKey] == nil {
		f.votes[subjectKey] = make(map[string]string)
	}

	var userVote *string
	if f.votes[subjectKey][token] == req.Direction {
		// Documented toggle: repeating a direction removes the vote.
		delete(f.votes[subjectKey], token)
	} else {
		f.votes[subjectKey][token] = req.Direction
		d := req.Direction
		userVote = &d
	}

	up, down := tally()
	writeJSON(w, http.StatusOK, models.VoteResponse{Upvotes: up, Downvotes: down, UserVote: userVote})
}

func (f *FakeGazette) handleUserVote(w http.ResponseWriter, r *http.Request, subjectKey string) {
	token := bearer(r)

	f.mu.Lock()
	defer f.mu.Unlock()

	var userVote *string
	if dir, ok := f.votes[subjectKey][token]; ok {
		userVote = &dir
	}
	writeJSON(w, http.StatusOK, models.UserVoteResponse{UserVote: userVote})
}

func (f *FakeGazette) handleOpinion(w http.ResponseWriter, id string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	op, ok := f.opinions[id]
	if !ok {
		writeError(w, http.StatusNotFound, "Opinion not found")
		return
	}

	prev, next := f.neighbours(id)
	writeJSON(w, http.StatusOK, models.OpinionDetail{Opinion: *op, PrevID: prev, NextID: next})
}

func (f *FakeGazette) handleLatest(w http.ResponseWriter) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.order) == 0 {
		writeError(w, http.StatusNotFound, "No opinions yet")
		return
	}

	id := f.order[len(f.order)-1]
	prev, next := f.neighbours(id)
	writeJSON(w, http.StatusOK, models.OpinionDetail{Opinion: *f.opinions[id], PrevID: prev, NextID: next})
}

func (f *FakeGazette) handleComments(w http.ResponseWriter, opinionID string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	list := f.comments[opinionID]
	if list == nil {
		list = []models.Comment{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (f *FakeGazette) handleAddComment(w http.ResponseWriter, r *http.Request, opinionID string) {
	token := bearer(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "session token required")
		return
	}

	var req models.AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, "comment cannot be empty")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.opinions[opinionID]; !ok {
		writeError(w, http.StatusNotFound, "Opinion not found")
		return
	}

	username := "anonymous"
	for name, tok := range f.usernames {
		if tok == token {
			username = name
		}
	}

	f.nextID++
	comment := models.Comment{
		ID:        fmt.Sprintf("c-%d", f.nextID),
		OpinionID: opinionID,
		Username:  username,
		Content:   req.Content,
		CreatedAt: time.Now(),
	}
	f.comments[opinionID] = append(f.comments[opinionID], comment)

	writeJSON(w, http.StatusCreated, comment)
}
