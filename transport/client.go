// Copyright (c) 2026 The Crewkerne Gazette.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/crewkernegazette/gazette/models"
)

// CredentialSource supplies bearer tokens by slot name. The session store
// satisfies it; tests inject fixed maps.
type CredentialSource interface {
	Get(slot string) string
}

// Options configures a Client. There is no ambient global state: base URL,
// credentials and the unauthorized hook are all injected here.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	DeviceUUID string
	Logger     *zap.Logger

	Credentials CredentialSource

	// OnUnauthorized is invoked with the credential slot that produced a
	// 401. It is a soft-invalidation signal: the transport never forces
	// navigation, callers decide what to do with a dead session.
	OnUnauthorized func(slot string)
}

// Client is the single point of HTTP access to the Gazette backend.
type Client struct {
	baseURL        string
	deviceUUID     string
	logger         *zap.Logger
	creds          CredentialSource
	onUnauthorized func(slot string)
	httpClient     *http.Client
}

// New creates a Client. BaseURL is resolved once; all request paths are
// relative to it.
func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, errors.New("base URL required")
	}
	if opts.Timeout <= 0 {
		return nil, errors.New("timeout required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL:        strings.TrimRight(opts.BaseURL, "/"),
		deviceUUID:     opts.DeviceUUID,
		logger:         logger,
		creds:          opts.Credentials,
		onUnauthorized: opts.OnUnauthorized,
		httpClient:     &http.Client{Timeout: opts.Timeout},
	}, nil
}

// Get issues a GET authenticated by slot ("" for anonymous) and decodes the
// JSON response into out.
func (c *Client) Get(ctx context.Context, path, slot string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, slot, nil, "", out)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path, slot string, body, out interface{}) error {
	return c.doJSON(ctx, http.MethodPost, path, slot, body, out)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path, slot string, body, out interface{}) error {
	return c.doJSON(ctx, http.MethodPut, path, slot, body, out)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path, slot string) error {
	return c.do(ctx, http.MethodDelete, path, slot, nil, "", nil)
}

// PostMultipart issues a POST with multipart form data. The content type is
// produced by the multipart writer so its boundary survives intact; no JSON
// content type is forced on.
func (c *Client) PostMultipart(ctx context.Context, path, slot, field, filename string, file io.Reader, out interface{}) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		return &Error{Kind: KindValidation, Message: fmt.Sprintf("failed to build upload form: %v", err)}
	}
	if _, err := io.Copy(part, file); err != nil {
		return &Error{Kind: KindValidation, Message: fmt.Sprintf("failed to read upload: %v", err)}
	}
	if err := w.Close(); err != nil {
		return &Error{Kind: KindValidation, Message: fmt.Sprintf("failed to finish upload form: %v", err)}
	}

	return c.do(ctx, http.MethodPost, path, slot, &buf, w.FormDataContentType(), out)
}

func (c *Client) doJSON(ctx context.Context, method, path, slot string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindValidation, Message: fmt.Sprintf("failed to encode request: %v", err)}
		}
		reader = bytes.NewReader(data)
	}
	return c.do(ctx, method, path, slot, reader, "application/json", out)
}

func (c *Client) do(ctx context.Context, method, path, slot string, body io.Reader, contentType string, out interface{}) error {
	// The client timeout is uniform; apply it as a context deadline too so
	// in-flight reads are bounded.
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.httpClient.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &Error{Kind: KindValidation, Message: fmt.Sprintf("failed to create request: %v", err)}
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.deviceUUID != "" {
		req.Header.Set("X-Device-UUID", c.deviceUUID)
	}
	if slot != "" && c.creds != nil {
		if token := c.creds.Get(slot); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		kind := KindNetwork
		message := "could not reach the Gazette"
		var urlErr interface{ Timeout() bool }
		if errors.As(err, &urlErr) && urlErr.Timeout() || errors.Is(err, context.DeadlineExceeded) {
			kind = KindTimeout
			message = "the Gazette took too long to respond"
		}
		c.logger.Warn("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("kind", string(kind)),
			zap.Error(err))
		return &Error{Kind: kind, Message: message}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: "response was cut short"}
	}

	c.logger.Debug("request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || len(respBody) == 0 {
			return nil
		}
		if err := json.Unmarshal(respBody, out); err != nil {
			return &Error{Kind: KindServer, Status: resp.StatusCode, Message: "unexpected response from the Gazette"}
		}
		return nil
	}

	return c.normalizeError(resp.StatusCode, respBody, slot, method, path)
}

// normalizeError maps a non-2xx response onto the error taxonomy, preferring
// the server's human-readable message when the envelope carries one.
func (c *Client) normalizeError(status int, body []byte, slot, method, path string) error {
	message := serverMessage(body)

	var kind Kind
	switch {
	case status == http.StatusUnauthorized:
		kind = KindUnauthorized
		if message == "" {
			message = "you need to sign in again"
		}
		if c.onUnauthorized != nil {
			c.onUnauthorized(slot)
		}
	case status == http.StatusNotFound:
		kind = KindNotFound
		if message == "" {
			message = "not found"
		}
	case status == http.StatusConflict:
		kind = KindConflict
		if message == "" {
			message = "conflict"
		}
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		kind = KindValidation
		if message == "" {
			message = "the request was rejected"
		}
	default:
		kind = KindServer
		if message == "" {
			message = "something went wrong at the Gazette"
		}
	}

	c.logger.Warn("request rejected",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
		zap.String("kind", string(kind)))

	return &Error{Kind: kind, Status: status, Message: message}
}

func serverMessage(body []byte) string {
	var envelope models.ErrorResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	if envelope.Message != "" {
		return envelope.Message
	}
	return envelope.Error
}
