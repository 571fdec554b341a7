package manager

import (
	"context"
	"sync"
	"time"

	"github.com/shardkeep/dshard/gateway"
)

// admissionQueue is the single global FIFO that serializes identify
// attempts across the whole fleet, per spec.md §4.3. Grounded on
// bot.go's identifyRatelimiter (a serialized "acquire, sleep, retry" loop
// gated on a shared lock) but generalized from a Redis SET-NX distributed
// lock to a plain Go channel FIFO, since this system has no other process
// to coordinate with.
type admissionQueue struct {
	pending chan int
	resolve chan bool

	mu     sync.Mutex
	active int

	getInfo   func(ctx context.Context) (gateway.Info, error)
	sendGrant func(ctx context.Context, shardID int) error

	timeout  time.Duration
	cooldown time.Duration
}

func newAdmissionQueue(
	getInfo func(ctx context.Context) (gateway.Info, error),
	sendGrant func(ctx context.Context, shardID int) error,
	timeout, cooldown time.Duration,
) *admissionQueue {
	return &admissionQueue{
		pending:   make(chan int, 4096),
		resolve:   make(chan bool, 1),
		active:    -1,
		getInfo:   getInfo,
		sendGrant: sendGrant,
		timeout:   timeout,
		cooldown:  cooldown,
	}
}

// Enqueue adds shardID to the tail of the admission FIFO.
func (q *admissionQueue) Enqueue(shardID int) {
	q.pending <- shardID
}

// Resolve reports the outcome of the identify currently granted to
// shardID, per spec.md §4.3 step 4. A Resolve for a shard that isn't the
// one currently holding the slot is ignored — it can only be a stale
// message from a shard that already timed out and was re-queued.
func (q *admissionQueue) Resolve(shardID int, ready bool) {
	q.mu.Lock()
	isActive := q.active == shardID
	q.mu.Unlock()
	if !isActive {
		return
	}
	select {
	case q.resolve <- ready:
	default:
	}
}

func (q *admissionQueue) setActive(shardID int) {
	q.mu.Lock()
	q.active = shardID
	q.mu.Unlock()
}

// Run drives the admission loop until ctx is cancelled. One shard holds the
// slot at a time; the loop only advances once that shard's identify
// resolves, times out, or the manager shuts down.
func (q *admissionQueue) Run(ctx context.Context) {
	for {
		var shardID int
		select {
		case <-ctx.Done():
			return
		case shardID = <-q.pending:
		}

		if info, err := q.getInfo(ctx); err == nil && info.SessionStartLimit.Remaining <= 0 {
			wait := time.Duration(info.SessionStartLimit.ResetAfterMs) * time.Millisecond
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return
			}
		}

		q.setActive(shardID)
		if err := q.sendGrant(ctx, shardID); err != nil {
			q.setActive(-1)
			continue
		}

		select {
		case ready := <-q.resolve:
			q.setActive(-1)
			if ready {
				select {
				case <-time.After(q.cooldown):
				case <-ctx.Done():
					return
				}
			} else {
				q.pending <- shardID
			}
		case <-time.After(q.timeout):
			q.setActive(-1)
			q.pending <- shardID
		case <-ctx.Done():
			return
		}
	}
}
