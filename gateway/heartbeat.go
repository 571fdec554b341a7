package gateway

import (
	"math/rand"
	"sync"
	"time"
)

// heartbeater owns the heartbeat timer for a single connection attempt.
// Grounded on discordgo/wsapi.go's wsHeartBeater, generalized to take the
// jittered first beat spec.md §4.1 requires (the teacher fires its first
// heartbeat on the full interval, undesynchronized).
type heartbeater struct {
	interval time.Duration
	seq      func() int64
	send     func(seq int64)
	onZombie func()

	stop     chan struct{}
	forceCh  chan struct{}
	stopOnce sync.Once

	mu         sync.Mutex
	acked      bool
	lastSentAt time.Time
	lastAckAt  time.Time
}

func newHeartbeater(interval time.Duration, seq func() int64, send func(int64), onZombie func()) *heartbeater {
	return &heartbeater{
		interval: interval,
		seq:      seq,
		send:     send,
		onZombie: onZombie,
		stop:     make(chan struct{}),
		forceCh:  make(chan struct{}, 1),
		acked:    true,
	}
}

// Ack records a HEARTBEAT_ACK.
func (h *heartbeater) Ack() {
	h.mu.Lock()
	h.acked = true
	h.lastAckAt = time.Now()
	h.mu.Unlock()
}

// ForceNow sends a heartbeat immediately, for the server-initiated OP1 case.
func (h *heartbeater) ForceNow() {
	select {
	case h.forceCh <- struct{}{}:
	default:
	}
}

// Stop tears down the heartbeat timer. Safe to call more than once: both a
// manager-requested close and the connection's own teardown path call it.
func (h *heartbeater) Stop() {
	h.stopOnce.Do(func() {
		close(h.stop)
	})
}

func (h *heartbeater) beat() {
	h.mu.Lock()
	h.acked = false
	h.lastSentAt = time.Now()
	h.mu.Unlock()
	h.send(h.seq())
}

// Times reports the last send/ack timestamps, for HeartbeatState observers.
func (h *heartbeater) Times() (sent, ack time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastSentAt, h.lastAckAt
}

// Run drives the heartbeat loop until Stop is called or a zombied
// connection is detected (missed ack at the moment the next beat is due).
func (h *heartbeater) Run() {
	jitter := time.Duration(0)
	if h.interval > 0 {
		jitter = time.Duration(rand.Int63n(int64(h.interval)))
	}
	timer := time.NewTimer(jitter)
	defer timer.Stop()

	for {
		select {
		case <-h.stop:
			return
		case <-h.forceCh:
			h.beat()
		case <-timer.C:
			h.mu.Lock()
			wasAcked := h.acked
			h.mu.Unlock()

			if !wasAcked {
				h.onZombie()
				return
			}

			h.beat()
			timer.Reset(h.interval)
		}
	}
}
