package gateway

import (
	"sync"
	"time"
)

// defaultSendInterval paces application-payload sends at 2/s, i.e. the
// gateway-mandated 120 payloads/60s outbound rate guard from spec.md §4.1/§9,
// grounded on discordgo/wsapi.go's wsWriter.runSendRatelimiter (a 500ms
// ticker). Heartbeats and the identify/resume/close control frames bypass
// this queue entirely and are written directly, reserving margin for them as
// spec.md §4.1 calls for.
const defaultSendInterval = 500 * time.Millisecond

// sendQueue is the ordered FIFO of outbound application payloads. It holds
// all sends while an identify is in flight (until Ready adopts it, or the
// attempt fails and the connection tears down) so a queued payload can never
// race ahead of the identify itself, matching spec.md §4.1's send-queue
// section.
type sendQueue struct {
	mu                 sync.Mutex
	items              []OutgoingPayload
	holdingForIdentify bool
	held               []OutgoingPayload
	highWaterMark      int
}

func newSendQueue(highWaterMark int) *sendQueue {
	if highWaterMark <= 0 {
		highWaterMark = 4096
	}
	return &sendQueue{highWaterMark: highWaterMark}
}

// HoldForIdentify starts holding the queue until Release is called: Pop
// reports nothing and new pushes are set aside.
func (q *sendQueue) HoldForIdentify() {
	q.mu.Lock()
	q.holdingForIdentify = true
	q.mu.Unlock()
}

// Release stops holding and requeues anything that arrived while held, ahead
// of anything pushed after release (which can't have happened yet, since
// Release runs on the same goroutine sequence as the identify/resume flow).
func (q *sendQueue) Release() {
	q.mu.Lock()
	q.holdingForIdentify = false
	if len(q.held) > 0 {
		q.items = append(q.held, q.items...)
		q.held = nil
	}
	q.mu.Unlock()
}

// Push enqueues a payload, reporting false if doing so would exceed the
// high-water mark (spec.md §7's backpressure-overflow condition).
func (q *sendQueue) Push(p OutgoingPayload) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	total := len(q.items) + len(q.held)
	if total >= q.highWaterMark {
		return false
	}

	if q.holdingForIdentify {
		q.held = append(q.held, p)
	} else {
		q.items = append(q.items, p)
	}
	return true
}

// Pop removes and returns the head of the FIFO, if any. It reports nothing
// while the queue is held for an identify.
func (q *sendQueue) Pop() (OutgoingPayload, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.holdingForIdentify || len(q.items) == 0 {
		return OutgoingPayload{}, false
	}

	p := q.items[0]
	q.items = q.items[1:]
	return p, true
}
