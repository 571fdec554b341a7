package gateway

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestHeartbeaterSendsAndTracksAck(t *testing.T) {
	var sent int32
	hb := newHeartbeater(10*time.Millisecond, func() int64 { return 42 }, func(seq int64) {
		atomic.AddInt32(&sent, 1)
	}, func() {
		t.Fatal("onZombie should not fire while acks keep arriving")
	})

	go hb.Run()
	defer hb.Stop()

	deadline := time.Now().Add(500 * time.Millisecond)
	for atomic.LoadInt32(&sent) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
		hb.Ack()
	}
	if atomic.LoadInt32(&sent) == 0 {
		t.Fatal("expected at least one heartbeat to be sent")
	}
}

func TestHeartbeaterZombiesOnMissedAck(t *testing.T) {
	zombied := make(chan struct{})
	hb := newHeartbeater(5*time.Millisecond, func() int64 { return 1 }, func(seq int64) {
		// never Ack, so the second tick should detect a zombie.
	}, func() { close(zombied) })

	go hb.Run()
	defer hb.Stop()

	select {
	case <-zombied:
	case <-time.After(time.Second):
		t.Fatal("expected onZombie to fire after a missed ack")
	}
}

func TestHeartbeaterStopIsIdempotent(t *testing.T) {
	hb := newHeartbeater(time.Second, func() int64 { return 0 }, func(int64) {}, func() {})
	hb.Stop()
	hb.Stop() // must not panic on a double close
}

func TestHeartbeaterForceNowTriggersImmediateBeat(t *testing.T) {
	beat := make(chan struct{}, 1)
	hb := newHeartbeater(time.Hour, func() int64 { return 0 }, func(int64) {
		select {
		case beat <- struct{}{}:
		default:
		}
	}, func() {})

	go hb.Run()
	defer hb.Stop()

	hb.ForceNow()
	select {
	case <-beat:
	case <-time.After(time.Second):
		t.Fatal("expected ForceNow to trigger an immediate beat")
	}
}
