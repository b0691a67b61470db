package bsky

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/CrestNiraj12/terminalsky/infra/auth"
)

// DefaultServiceURL is the PDS entryway used when none is configured.
const DefaultServiceURL = "https://bsky.social"

const maxResponseBytes = 8 << 20

// Client is a thin XRPC-over-HTTP wrapper for the Bluesky API.
// It handles URL construction, bearer token injection from its session store
// and decoding of XRPC error bodies.
type Client struct {
	baseURL  string
	sessions *auth.SessionStore
	http     *http.Client
	log      zerolog.Logger
}

// NewClient creates a Bluesky API client. All services built on the same
// client share its session.
func NewClient(baseURL string, sessions *auth.SessionStore, log zerolog.Logger) *Client {
	return &Client{
		baseURL:  baseURL,
		sessions: sessions,
		http:     &http.Client{Timeout: 30 * time.Second},
		log:      log,
	}
}

// Sessions exposes the store the client authorizes with.
func (c *Client) Sessions() *auth.SessionStore {
	return c.sessions
}

// query performs an authenticated XRPC query (GET).
func (c *Client) query(ctx context.Context, nsid string, params url.Values, out any) error {
	return c.do(ctx, http.MethodGet, nsid, params, nil, out, true)
}

// procedure performs an authenticated XRPC procedure (POST with a JSON body).
func (c *Client) procedure(ctx context.Context, nsid string, in, out any) error {
	return c.do(ctx, http.MethodPost, nsid, nil, in, out, true)
}

// publicProcedure performs a procedure without a bearer token (login).
func (c *Client) publicProcedure(ctx context.Context, nsid string, in, out any) error {
	return c.do(ctx, http.MethodPost, nsid, nil, in, out, false)
}

func (c *Client) do(ctx context.Context, method, nsid string, params url.Values, in, out any, authed bool) error {
	var token string
	if authed {
		t, err := c.sessions.AccessToken()
		if err != nil {
			return err
		}
		token = t
	}

	u := c.baseURL + "/xrpc/" + nsid
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding %s input: %w", nsid, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	reqID := uuid.NewString()
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Str("req_id", reqID).Str("nsid", nsid).Err(err).Msg("xrpc request failed")
		return fmt.Errorf("request to %s: %w", nsid, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	c.log.Debug().
		Str("req_id", reqID).
		Str("method", method).
		Str("nsid", nsid).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("xrpc")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp.StatusCode, data)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing %s response: %w", nsid, err)
	}
	return nil
}
