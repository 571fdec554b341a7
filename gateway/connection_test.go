package gateway

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu       sync.Mutex
	debugs   []string
	statuses []Status
	dispatch []Dispatch
	gwSignal []GatewayStatusSignal
	pings    []int64
}

func (o *recordingObserver) OnDebug(msg string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.debugs = append(o.debugs, msg)
}

func (o *recordingObserver) OnDispatch(d Dispatch) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.dispatch = append(o.dispatch, d)
}

func (o *recordingObserver) OnPing(ms int64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.pings = append(o.pings, ms)
}

func (o *recordingObserver) OnGatewayStatus(s GatewayStatusSignal) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.gwSignal = append(o.gwSignal, s)
}

func (o *recordingObserver) OnConnectionStatus(s Status) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.statuses = append(o.statuses, s)
}

type stubAdmitter struct {
	err error
}

func (a stubAdmitter) Admit(ctx context.Context, initial bool) error {
	return a.err
}

func (a stubAdmitter) Await(ctx context.Context) error {
	return a.err
}

type recordingAdmitter struct {
	mu         sync.Mutex
	admitCalls int
	awaitCalls int
}

func (a *recordingAdmitter) Admit(ctx context.Context, initial bool) error {
	a.mu.Lock()
	a.admitCalls++
	a.mu.Unlock()
	<-ctx.Done()
	return ctx.Err()
}

func (a *recordingAdmitter) Await(ctx context.Context) error {
	a.mu.Lock()
	a.awaitCalls++
	a.mu.Unlock()
	<-ctx.Done()
	return ctx.Err()
}

func newTestConnection() (*Connection, *recordingObserver) {
	obs := &recordingObserver{}
	c := NewConnection(Options{Shard: ShardID{ID: 0, Total: 1}}, obs, stubAdmitter{})
	return c, obs
}

func TestNewConnectionSelectsCodecByCompression(t *testing.T) {
	plain := NewConnection(Options{}, &recordingObserver{}, stubAdmitter{})
	if _, ok := plain.codec.(jsonCodec); !ok {
		t.Fatalf("expected jsonCodec by default, got %T", plain.codec)
	}

	compressed := NewConnection(Options{Compressed: true}, &recordingObserver{}, stubAdmitter{})
	if _, ok := compressed.codec.(zlibStreamCodec); !ok {
		t.Fatalf("expected zlibStreamCodec when Compressed, got %T", compressed.codec)
	}
}

func TestEnqueueReportsBackpressureOverflow(t *testing.T) {
	c := NewConnection(Options{SendQueueHighWaterMark: 1}, &recordingObserver{}, stubAdmitter{})

	if err := c.Enqueue(OutgoingPayload{Op: OpStatusUpdate}); err != nil {
		t.Fatalf("expected first enqueue to succeed, got %v", err)
	}
	err := c.Enqueue(OutgoingPayload{Op: OpStatusUpdate})
	if err != ErrBackpressureOverflow {
		t.Fatalf("expected ErrBackpressureOverflow, got %v", err)
	}

	select {
	case sig := <-c.finishCh:
		if sig.reason != EndResumable {
			t.Fatalf("expected EndResumable, got %v", sig.reason)
		}
		if sig.err == nil || sig.err.Kind != ErrorKindBackpressure {
			t.Fatalf("expected ErrorKindBackpressure, got %+v", sig.err)
		}
	default:
		t.Fatal("expected a finish signal after backpressure overflow")
	}
}

func TestHandleDispatchAdvancesSequenceAndForwards(t *testing.T) {
	c, obs := newTestConnection()

	c.handleDispatch(&event{Type: "MESSAGE_CREATE", Seq: 5, Data: json.RawMessage(`{}`)})

	if got := c.currentSessionLocked().Seq; got != 5 {
		t.Fatalf("expected session seq 5, got %d", got)
	}
	obs.mu.Lock()
	defer obs.mu.Unlock()
	if len(obs.dispatch) != 1 || obs.dispatch[0].Type != "MESSAGE_CREATE" {
		t.Fatalf("expected dispatch to be forwarded, got %+v", obs.dispatch)
	}
}

func TestHandleDispatchReadyAdoptsSessionAndSignalsWhenIdentifying(t *testing.T) {
	c, obs := newTestConnection()
	c.setStatus(StatusIdentifying)

	readyBody, _ := json.Marshal(struct {
		SessionID string `json:"session_id"`
	}{SessionID: "sess-123"})

	c.handleDispatch(&event{Type: "READY", Data: readyBody})

	if got := c.currentSessionLocked().ID; got != "sess-123" {
		t.Fatalf("expected session id sess-123, got %q", got)
	}
	if got := c.currentStatusLocked(); got != StatusReady {
		t.Fatalf("expected status Ready, got %v", got)
	}

	obs.mu.Lock()
	defer obs.mu.Unlock()
	if len(obs.gwSignal) != 1 || obs.gwSignal[0] != GatewayStatusReady {
		t.Fatalf("expected a single GatewayStatusReady signal, got %+v", obs.gwSignal)
	}
}

func TestHandleInvalidSessionWhileIdentifyingAwaitsRatherThanReAdmits(t *testing.T) {
	admitter := &recordingAdmitter{}
	obs := &recordingObserver{}
	c := NewConnection(Options{Shard: ShardID{ID: 0, Total: 1}}, obs, admitter)
	c.setStatus(StatusIdentifying)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// non-resumable INVALID_SESSION while an admission slot is already held
	// for the in-flight identify; the manager re-enqueues this shard on its
	// own once it sees the resulting GatewayStatusInvalidSession, so the
	// connection must not also request a fresh admission.
	c.handleInvalidSession(ctx, &event{Data: json.RawMessage("false")})

	require.Eventually(t, func() bool {
		admitter.mu.Lock()
		defer admitter.mu.Unlock()
		return admitter.awaitCalls == 1
	}, 6*time.Second, 10*time.Millisecond, "expected exactly one Await call")

	admitter.mu.Lock()
	admitCalls := admitter.admitCalls
	admitter.mu.Unlock()
	if admitCalls != 0 {
		t.Fatalf("expected no re-admission request, Admit was called %d times", admitCalls)
	}

	obs.mu.Lock()
	defer obs.mu.Unlock()
	if len(obs.gwSignal) != 1 || obs.gwSignal[0] != GatewayStatusInvalidSession {
		t.Fatalf("expected a single GatewayStatusInvalidSession signal, got %+v", obs.gwSignal)
	}
}

func TestHandleDispatchReadyDoesNotSignalWhenResuming(t *testing.T) {
	c, obs := newTestConnection()
	c.setStatus(StatusResuming)

	readyBody, _ := json.Marshal(struct {
		SessionID string `json:"session_id"`
	}{SessionID: "sess-456"})

	c.handleDispatch(&event{Type: "READY", Data: readyBody})

	obs.mu.Lock()
	defer obs.mu.Unlock()
	if len(obs.gwSignal) != 0 {
		t.Fatalf("expected no GatewayStatus signal outside of an identify flow, got %+v", obs.gwSignal)
	}
}

