package control

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelRoundTrip(t *testing.T) {
	ch := NewChannel()
	ctx := context.Background()

	require.NoError(t, ch.SendToManager(ctx, ToManager{ShardID: 2, Kind: ToManagerIdentify}))
	select {
	case msg := <-ch.RecvFromShard():
		assert.Equal(t, 2, msg.ShardID)
		assert.Equal(t, ToManagerIdentify, msg.Kind)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
	}

	require.NoError(t, ch.SendToShard(ctx, ToShard{Kind: ToShardDestroy}))
	select {
	case msg := <-ch.RecvFromManager():
		assert.Equal(t, ToShardDestroy, msg.Kind)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
	}
}

func TestChannelSendHonorsContextCancellation(t *testing.T) {
	ch := NewChannel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// fill the buffer so the next send would block, then confirm
	// cancellation unblocks it instead of hanging the test.
	for i := 0; i < defaultBufferSize; i++ {
		require.NoError(t, ch.SendToManager(context.Background(), ToManager{}))
	}

	err := ch.SendToManager(ctx, ToManager{})
	assert.ErrorIs(t, err, context.Canceled)
}
