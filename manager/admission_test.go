package manager

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shardkeep/dshard/gateway"
)

func alwaysOpenInfo(ctx context.Context) (gateway.Info, error) {
	return gateway.Info{SessionStartLimit: gateway.SessionStartLimit{Remaining: 1000}}, nil
}

func TestAdmissionQueueGrantsOneShardAtATime(t *testing.T) {
	var mu sync.Mutex
	var grants []int

	q := newAdmissionQueue(alwaysOpenInfo, func(ctx context.Context, shardID int) error {
		mu.Lock()
		grants = append(grants, shardID)
		mu.Unlock()
		return nil
	}, time.Second, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go q.Run(ctx)

	q.Enqueue(1)
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(grants) == 1 && grants[0] == 1
	}, time.Second, time.Millisecond)

	q.Resolve(1, true)

	q.Enqueue(2)
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(grants) == 2 && grants[1] == 2
	}, time.Second, time.Millisecond)
}

func TestAdmissionQueueRequeuesOnTimeout(t *testing.T) {
	var mu sync.Mutex
	grantCount := 0

	q := newAdmissionQueue(alwaysOpenInfo, func(ctx context.Context, shardID int) error {
		mu.Lock()
		grantCount++
		mu.Unlock()
		return nil
	}, 10*time.Millisecond, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go q.Run(ctx)

	q.Enqueue(5)
	// never resolves, so the queue times out and re-grants the same shard.
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return grantCount >= 2
	}, time.Second, time.Millisecond)
}

func TestAdmissionQueueIgnoresStaleResolve(t *testing.T) {
	q := newAdmissionQueue(alwaysOpenInfo, func(ctx context.Context, shardID int) error {
		return nil
	}, time.Second, time.Millisecond)

	q.setActive(1)
	q.Resolve(2, true) // not active; should be dropped without blocking

	select {
	case <-q.resolve:
		t.Fatal("resolve channel should not have received a stale resolve")
	default:
	}
}

func TestAdmissionQueueSleepsOnExhaustedLimit(t *testing.T) {
	var mu sync.Mutex
	calls := 0

	getInfo := func(ctx context.Context) (gateway.Info, error) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		if calls == 1 {
			return gateway.Info{SessionStartLimit: gateway.SessionStartLimit{Remaining: 0, ResetAfterMs: 20}}, nil
		}
		return gateway.Info{SessionStartLimit: gateway.SessionStartLimit{Remaining: 10}}, nil
	}

	granted := make(chan int, 1)
	q := newAdmissionQueue(getInfo, func(ctx context.Context, shardID int) error {
		granted <- shardID
		return nil
	}, time.Second, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go q.Run(ctx)

	start := time.Now()
	q.Enqueue(3)

	select {
	case id := <-granted:
		assert.Equal(t, 3, id)
		assert.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for grant")
	}
}
