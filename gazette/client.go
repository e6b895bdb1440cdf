// Copyright (c) 2026 The Crewkerne Gazette.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package gazette

import (
	"context"
	"io"
	"net/url"

	"github.com/crewkernegazette/gazette/models"
	"github.com/crewkernegazette/gazette/session"
	"github.com/crewkernegazette/gazette/transport"
)

// Client is the typed API surface over the transport. Method groups map to
// the backend's resource families; each call names the credential slot that
// authenticates it, so admin and opinion sessions can never bleed into each
// other's requests.
type Client struct {
	t *transport.Client
}

func NewClient(t *transport.Client) *Client {
	return &Client{t: t}
}

// ---- Articles ----

// TopRail fetches the homepage layout: lead story, secondary list, grid.
func (c *Client) TopRail(ctx context.Context) (models.TopRail, error) {
	var rail models.TopRail
	err := c.t.Get(ctx, "/articles", "", &rail)
	return rail, err
}

// ArticlesByCategory lists published articles for one category section.
func (c *Client) ArticlesByCategory(ctx context.Context, category string) ([]models.Article, error) {
	var articles []models.Article
	err := c.t.Get(ctx, "/articles?category="+url.QueryEscape(category), "", &articles)
	return articles, err
}

func (c *Client) Article(ctx context.Context, id string) (models.Article, error) {
	var article models.Article
	err := c.t.Get(ctx, "/articles/"+url.PathEscape(id), "", &article)
	return article, err
}

func (c *Client) RelatedArticles(ctx context.Context, id string) ([]models.Article, error) {
	var articles []models.Article
	err := c.t.Get(ctx, "/articles/"+url.PathEscape(id)+"/related", "", &articles)
	return articles, err
}

func (c *Client) CreateArticle(ctx context.Context, article models.Article) (models.Article, error) {
	var created models.Article
	err := c.t.Post(ctx, "/articles", session.SlotAdminToken, article, &created)
	return created, err
}

func (c *Client) UpdateArticle(ctx context.Context, article models.Article) (models.Article, error) {
	var updated models.Article
	err := c.t.Put(ctx, "/articles/"+url.PathEscape(article.ID), session.SlotAdminToken, article, &updated)
	return updated, err
}

func (c *Client) DeleteArticle(ctx context.Context, id string) error {
	return c.t.Delete(ctx, "/articles/"+url.PathEscape(id), session.SlotAdminToken)
}

// ---- Contacts ----

func (c *Client) SubmitContact(ctx context.Context, req models.SubmitContactRequest) error {
	return c.t.Post(ctx, "/contacts", "", req, nil)
}

func (c *Client) Contacts(ctx context.Context) ([]models.Contact, error) {
	var contacts []models.Contact
	err := c.t.Get(ctx, "/contacts", session.SlotAdminToken, &contacts)
	return contacts, err
}

// MarkContactHandled flips the triage flag on a contact message.
func (c *Client) MarkContactHandled(ctx context.Context, id string, handled bool) (models.Contact, error) {
	var contact models.Contact
	body := map[string]bool{"handled": handled}
	err := c.t.Put(ctx, "/contacts/"+url.PathEscape(id), session.SlotAdminToken, body, &contact)
	return contact, err
}

func (c *Client) DeleteContact(ctx context.Context, id string) error {
	return c.t.Delete(ctx, "/contacts/"+url.PathEscape(id), session.SlotAdminToken)
}

// ---- Opinions ----

func (c *Client) LatestOpinion(ctx context.Context) (models.OpinionDetail, error) {
	var detail models.OpinionDetail
	err := c.t.Get(ctx, "/opinions/latest", "", &detail)
	return detail, err
}

func (c *Client) TopOpinions(ctx context.Context) ([]models.Opinion, error) {
	var opinions []models.Opinion
	err := c.t.Get(ctx, "/opinions/top", "", &opinions)
	return opinions, err
}

func (c *Client) OpinionArchive(ctx context.Context) ([]models.ArchiveGroup, error) {
	var groups []models.ArchiveGroup
	err := c.t.Get(ctx, "/opinions/archive", "", &groups)
	return groups, err
}

// Opinion fetches one opinion plus its prev/next neighbours. The backend
// owns the ordering; the client never computes it.
func (c *Client) Opinion(ctx context.Context, id string) (models.OpinionDetail, error) {
	var detail models.OpinionDetail
	err := c.t.Get(ctx, "/opinions/"+url.PathEscape(id), "", &detail)
	return detail, err
}

func (c *Client) OpinionUserVote(ctx context.Context, id string) (*string, error) {
	var resp models.UserVoteResponse
	err := c.t.Get(ctx, "/opinions/"+url.PathEscape(id)+"/user-vote", session.SlotOpinionToken, &resp)
	return resp.UserVote, err
}

func (c *Client) VoteOpinion(ctx context.Context, id, direction string) (models.VoteResponse, error) {
	var resp models.VoteResponse
	req := models.CastVoteRequest{Direction: direction}
	err := c.t.Post(ctx, "/opinions/"+url.PathEscape(id)+"/vote", session.SlotOpinionToken, req, &resp)
	return resp, err
}

func (c *Client) Comments(ctx context.Context, opinionID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := c.t.Get(ctx, "/opinions/"+url.PathEscape(opinionID)+"/comments", "", &comments)
	return comments, err
}

func (c *Client) AddComment(ctx context.Context, opinionID, content string) (models.Comment, error) {
	var comment models.Comment
	req := models.AddCommentRequest{Content: content}
	err := c.t.Post(ctx, "/opinions/"+url.PathEscape(opinionID)+"/comments", session.SlotOpinionToken, req, &comment)
	return comment, err
}

func (c *Client) RegisterOpinionUser(ctx context.Context, username string) (models.RegisterOpinionUserResponse, error) {
	var resp models.RegisterOpinionUserResponse
	req := models.RegisterOpinionUserRequest{Username: username}
	err := c.t.Post(ctx, "/opinion-users/register", "", req, &resp)
	return resp, err
}

func (c *Client) VoteComment(ctx context.Context, id, direction string) (models.VoteResponse, error) {
	var resp models.VoteResponse
	req := models.CastVoteRequest{Direction: direction}
	err := c.t.Post(ctx, "/comments/"+url.PathEscape(id)+"/vote", session.SlotOpinionToken, req, &resp)
	return resp, err
}

func (c *Client) CommentUserVote(ctx context.Context, id string) (*string, error) {
	var resp models.UserVoteResponse
	err := c.t.Get(ctx, "/comments/"+url.PathEscape(id)+"/user-vote", session.SlotOpinionToken, &resp)
	return resp.UserVote, err
}

// ---- Settings & admin ----

func (c *Client) PublicSettings(ctx context.Context) (models.Settings, error) {
	var settings models.Settings
	err := c.t.Get(ctx, "/settings/public", "", &settings)
	return settings, err
}

func (c *Client) SetMaintenance(ctx context.Context, enabled bool) error {
	req := models.SetMaintenanceRequest{Enabled: enabled}
	return c.t.Post(ctx, "/settings/maintenance", session.SlotAdminToken, req, nil)
}

func (c *Client) SetBreakingBanner(ctx context.Context, enabled bool, text string) error {
	req := models.SetBreakingBannerRequest{Enabled: enabled, Text: text}
	return c.t.Post(ctx, "/settings/breaking-news-banner", session.SlotAdminToken, req, nil)
}

func (c *Client) DashboardStats(ctx context.Context) (models.DashboardStats, error) {
	var stats models.DashboardStats
	err := c.t.Get(ctx, "/dashboard/stats", session.SlotAdminToken, &stats)
	return stats, err
}

// UploadImage sends a multipart upload and returns the hosted URL.
func (c *Client) UploadImage(ctx context.Context, filename string, file io.Reader) (string, error) {
	var resp models.UploadImageResponse
	err := c.t.PostMultipart(ctx, "/upload-image", session.SlotAdminToken, "image", filename, file, &resp)
	return resp.URL, err
}
