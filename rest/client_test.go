package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatewayBotDecodesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/gateway/bot", r.URL.Path)
		assert.Equal(t, "Bot test-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"url": "wss://gateway.discord.gg",
			"shards": 12,
			"session_start_limit": {"total": 1000, "remaining": 998, "reset_after": 3600000, "max_concurrency": 1}
		}`))
	}))
	defer srv.Close()

	client := NewClient("test-token", WithAPIBase(srv.URL))
	info, err := client.GatewayBot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "wss://gateway.discord.gg", info.URL)
	assert.Equal(t, 12, info.RecommendedShards)
	assert.Equal(t, 1000, info.SessionStartLimit.Total)
	assert.Equal(t, 998, info.SessionStartLimit.Remaining)
	assert.EqualValues(t, 3600000, info.SessionStartLimit.ResetAfterMs)
}

func TestGatewayBotSurfacesHTTPErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient("bad-token", WithAPIBase(srv.URL))
	_, err := client.GatewayBot(context.Background())
	assert.Error(t, err)
}
