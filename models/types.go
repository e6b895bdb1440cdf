package models

import "time"

// Article category constants
const (
	CategoryNews          = "news"
	CategoryMusic         = "music"
	CategoryDocumentaries = "documentaries"
	CategoryComedy        = "comedy"
)

// Vote direction constants
const (
	VoteUp   = "up"
	VoteDown = "down"
)

// Vote subject constants
const (
	SubjectOpinion = "opinion"
	SubjectComment = "comment"
)

// Request types

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterOpinionUserRequest struct {
	Username string `json:"username"`
}

type CastVoteRequest struct {
	Direction string `json:"direction"`
}

type AddCommentRequest struct {
	Content string `json:"content"`
}

type SubmitContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type SetMaintenanceRequest struct {
	Enabled bool `json:"enabled"`
}

type SetBreakingBannerRequest struct {
	Enabled bool   `json:"enabled"`
	Text    string `json:"text,omitempty"`
}

// Response types

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type RegisterOpinionUserResponse struct {
	SessionToken string `json:"session_token"`
	Username     string `json:"username"`
}

// VoteResponse carries the canonical tallies after a vote. The backend is
// the single source of truth for counts and for the caller's resulting vote;
// UserVote is nil when the vote was toggled off.
type VoteResponse struct {
	Upvotes   int     `json:"upvotes"`
	Downvotes int     `json:"downvotes"`
	UserVote  *string `json:"user_vote"`
}

type UserVoteResponse struct {
	UserVote *string `json:"user_vote"`
}

type UploadImageResponse struct {
	URL string `json:"url"`
}

// Domain types

type User struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

type Article struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Slug       string    `json:"slug"`
	Category   string    `json:"category"`
	Summary    string    `json:"summary"`
	Body       string    `json:"body"`
	ImageURL   string    `json:"image_url,omitempty"`
	IsBreaking bool      `json:"is_breaking"`
	Published  bool      `json:"published"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TopRail is the homepage layout payload: one curated lead story, a
// secondary list, and the remaining grid.
type TopRail struct {
	Lead      *Article  `json:"lead"`
	Secondary []Article `json:"secondary"`
	Grid      []Article `json:"grid"`
}

type Contact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Handled   bool      `json:"handled"`
	CreatedAt time.Time `json:"created_at"`
}

type Opinion struct {
	ID        string    `json:"id"`
	ImageURL  string    `json:"image_url"`
	Upvotes   int       `json:"upvotes"`
	Downvotes int       `json:"downvotes"`
	CreatedAt time.Time `json:"created_at"`
}

// NetVotes is the derived ranking score. May be negative.
func (o Opinion) NetVotes() int {
	return o.Upvotes - o.Downvotes
}

type Comment struct {
	ID        string    `json:"id"`
	OpinionID string    `json:"opinion_id"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	Upvotes   int       `json:"upvotes"`
	Downvotes int       `json:"downvotes"`
	CreatedAt time.Time `json:"created_at"`
}

func (c Comment) NetVotes() int {
	return c.Upvotes - c.Downvotes
}

// OpinionDetail wraps an opinion with its neighbours in the overall
// ordering. The backend computes the ordering; PrevID/NextID are nil at the
// ends of the sequence.
type OpinionDetail struct {
	Opinion Opinion `json:"opinion"`
	PrevID  *string `json:"prev_id"`
	NextID  *string `json:"next_id"`
}

// ArchiveGroup is one month/day bucket of the opinion archive, grouped
// server-side by creation time.
type ArchiveGroup struct {
	Label    string    `json:"label"`
	Opinions []Opinion `json:"opinions"`
}

type Settings struct {
	MaintenanceMode        bool   `json:"maintenance_mode"`
	ShowBreakingNewsBanner bool   `json:"show_breaking_news_banner"`
	BreakingNewsText       string `json:"breaking_news_text,omitempty"`
}

// DashboardStats is an opaque admin payload passed through to display.
type DashboardStats struct {
	ArticleCount   int `json:"article_count"`
	ContactCount   int `json:"contact_count"`
	UnhandledCount int `json:"unhandled_count"`
	OpinionCount   int `json:"opinion_count"`
	CommentCount   int `json:"comment_count"`
	VotesCastToday int `json:"votes_cast_today"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
