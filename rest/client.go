// Package rest is the minimal HTTP surface the manager needs: fetching
// gateway connection metadata (URL, recommended shard count, session-start
// limit) before every admission decision, per spec.md §3/§4.3. Grounded on
// discordgo/ratelimit.go's client shape (a *http.Client plus a
// pkg/errors-wrapped request path) without carrying over its full
// per-bucket rate limiter, since a client that only ever calls one
// low-frequency endpoint has no bucket contention to arbitrate.
package rest

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"

	"github.com/shardkeep/dshard/gateway"
)

const defaultAPIBase = "https://discord.com/api/v10"

// Client fetches gateway metadata over the Discord REST API.
type Client struct {
	httpClient *http.Client
	apiBase    string
	token      string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying *http.Client, e.g. to install a
// transport with custom timeouts or a test server's client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithAPIBase overrides the API base URL, primarily for tests.
func WithAPIBase(base string) Option {
	return func(c *Client) { c.apiBase = base }
}

// NewClient builds a REST client authenticated as a bot with token.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
		apiBase:    defaultAPIBase,
		token:      token,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type gatewayBotResponse struct {
	URL               string `json:"url"`
	Shards            int    `json:"shards"`
	SessionStartLimit struct {
		Total          int   `json:"total"`
		Remaining      int   `json:"remaining"`
		ResetAfterMs   int64 `json:"reset_after"`
		MaxConcurrency int   `json:"max_concurrency"`
	} `json:"session_start_limit"`
}

// GatewayBot fetches GET /gateway/bot, the authenticated variant that
// includes the recommended shard count and the identify session-start
// limit, per spec.md §3's Gateway Info data model.
func (c *Client) GatewayBot(ctx context.Context) (gateway.Info, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBase+"/gateway/bot", nil)
	if err != nil {
		return gateway.Info{}, errors.WithMessage(err, "rest: building gateway/bot request")
	}
	req.Header.Set("Authorization", "Bot "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return gateway.Info{}, errors.WithMessage(err, "rest: gateway/bot request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return gateway.Info{}, errors.Errorf("rest: gateway/bot returned status %d", resp.StatusCode)
	}

	var body gatewayBotResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return gateway.Info{}, errors.WithMessage(err, "rest: decoding gateway/bot response")
	}

	return gateway.Info{
		URL:               body.URL,
		RecommendedShards: body.Shards,
		SessionStartLimit: gateway.SessionStartLimit{
			Total:        body.SessionStartLimit.Total,
			Remaining:    body.SessionStartLimit.Remaining,
			ResetAfterMs: body.SessionStartLimit.ResetAfterMs,
		},
	}, nil
}
