package manager

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shardkeep/dshard/control"
	"github.com/shardkeep/dshard/gateway"
	"github.com/shardkeep/dshard/logging"
)

func newTestManager(t *testing.T, opts Options) *Manager {
	t.Helper()
	if opts.Token == "" {
		opts.Token = "test-token"
	}
	opts.Logger = logging.Discard()
	m, err := New(opts)
	require.NoError(t, err)
	return m
}

func TestComputeShardIDsAutoMode(t *testing.T) {
	m := newTestManager(t, Options{})
	ids, total, err := m.computeShardIDs(gateway.Info{RecommendedShards: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, ids)
}

func TestComputeShardIDsExplicitCount(t *testing.T) {
	m := newTestManager(t, Options{Shards: 3})
	ids, total, err := m.computeShardIDs(gateway.Info{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Equal(t, []int{0, 1, 2}, ids)
}

func TestComputeShardIDsExplicitIntList(t *testing.T) {
	m := newTestManager(t, Options{Shards: []int{5, 2}, TotalShards: 8})
	ids, total, err := m.computeShardIDs(gateway.Info{})
	require.NoError(t, err)
	assert.Equal(t, 8, total)
	assert.Equal(t, []int{2, 5}, ids)
}

func TestComputeShardIDsStringListFiltersNonNumeric(t *testing.T) {
	m := newTestManager(t, Options{Shards: []string{"3", "x", "1"}, TotalShards: 4})
	ids, total, err := m.computeShardIDs(gateway.Info{})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	assert.Equal(t, []int{1, 3}, ids)
}

func TestComputeShardIDsRequiresTotalForExplicitList(t *testing.T) {
	m := newTestManager(t, Options{Shards: []int{1}})
	_, _, err := m.computeShardIDs(gateway.Info{})
	assert.ErrorIs(t, err, gateway.ErrBadShardConfig)
}

func TestShardIDForGuild(t *testing.T) {
	// mirrors Discord's own `(guildID >> 22) % numShards` formula.
	guildID := int64(197038439483310086)
	assert.Equal(t, int((guildID>>22)%16), ShardIDForGuild(guildID, 16))
}

func TestAveragePing(t *testing.T) {
	m := newTestManager(t, Options{})
	m.setPing(0, 10)
	m.setPing(1, 30)
	assert.Equal(t, 20.0, m.AveragePing())
}

func TestSubscribeFansOutThroughManager(t *testing.T) {
	m := newTestManager(t, Options{})

	received := make(chan gateway.Dispatch, 1)
	m.Subscribe("MESSAGE_CREATE", func(shardID int, d gateway.Dispatch) {
		received <- d
	})

	m.handleShardMessage(context.Background(), control.ToManager{
		ShardID: 0,
		Kind:    control.ToManagerDispatch,
		Dispatch: gateway.Dispatch{
			Type: "MESSAGE_CREATE",
		},
	})

	select {
	case d := <-received:
		assert.Equal(t, "MESSAGE_CREATE", d.Type)
	case <-time.After(time.Second):
		t.Fatal("subscriber never received the dispatch")
	}
}

func TestSessionSnapshotRoundTrip(t *testing.T) {
	m := newTestManager(t, Options{})

	ctrl := control.NewChannel()
	m.mu.Lock()
	m.shards[0] = &shardHandle{ctrl: ctrl, cancel: func() {}}
	m.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	go func() {
		req := <-ctrl.RecvFromManager()
		assert.Equal(t, control.ToShardFetchSessionData, req.Kind)
		m.deliverSessionSnapshot(0, control.SessionSnapshot{ShardID: 0, SessionID: "abc", Seq: 7})
	}()

	snap, err := m.SessionSnapshot(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "abc", snap.SessionID)
	assert.Equal(t, int64(7), snap.Seq)
}

func TestHandleCannotReconnectFatalDoesNotRespawn(t *testing.T) {
	m := newTestManager(t, Options{})

	var events []FleetEvent
	m.opts.OnEvent = func(e FleetEvent) { events = append(events, e) }

	ctrl := control.NewChannel()
	cancelled := false
	m.mu.Lock()
	m.shards[2] = &shardHandle{ctrl: ctrl, cancel: func() { cancelled = true }}
	m.total = 4
	m.mu.Unlock()

	m.handleCannotReconnect(context.Background(), 2, control.CannotReconnectInfo{
		Code: 4004, Reason: "authentication failed", Fatal: true,
	})

	m.mu.RLock()
	_, stillPresent := m.shards[2]
	m.mu.RUnlock()

	assert.False(t, stillPresent)
	assert.True(t, cancelled, "cancel should have been called on the removed shard")
}
