package control

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionSnapshotCloneIsIndependentCopy(t *testing.T) {
	original := SessionSnapshot{ShardID: 3, SessionID: "abc123", Seq: 42}

	clone, err := original.Clone()
	require.NoError(t, err)
	assert.Equal(t, original, clone)

	clone.SessionID = "mutated"
	assert.Equal(t, "abc123", original.SessionID, "clone must not alias the original")
}

func TestKindStringers(t *testing.T) {
	assert.Equal(t, "GatewayStatus", ToManagerGatewayStatus.String())
	assert.Equal(t, "Unknown", ToManagerKind(999).String())
	assert.Equal(t, "Destroy", ToShardDestroy.String())
	assert.Equal(t, "Unknown", ToShardKind(999).String())
}
