package dshard

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shardkeep/dshard/gateway"
)

func TestNewRequiresAToken(t *testing.T) {
	os.Unsetenv("DISCORD_TOKEN")
	_, err := New("")
	assert.ErrorIs(t, err, gateway.ErrMissingToken)
}

func TestNewFallsBackToEnvironmentToken(t *testing.T) {
	os.Setenv("DISCORD_TOKEN", "env-token")
	defer os.Unsetenv("DISCORD_TOKEN")

	c, err := New("")
	require.NoError(t, err)
	require.NotNil(t, c)
}

func TestNewAppliesOptions(t *testing.T) {
	c, err := New("explicit-token", WithShards(4), WithIntents(513))
	require.NoError(t, err)
	require.NotNil(t, c)
}
