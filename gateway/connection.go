package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// EndReason is why a single connection attempt (one call to Connection.Run)
// terminated.
type EndReason int

const (
	// EndDestroyed means the owner called RequestClose(CloseModeDestroy);
	// the session must be discarded.
	EndDestroyed EndReason = iota
	// EndResumable means the attempt ended in a way spec.md §4.1's
	// close-code table (or a zombied heartbeat, or a manager-requested
	// Reconnect) marks resumable; Result.Session carries forward.
	EndResumable
	// EndFatal means a fatal close code was received; the shard must not
	// reconnect.
	EndFatal
)

// Result is what a connection attempt reports back to its owner (the shard
// runtime) once it has fully torn down.
type Result struct {
	Reason  EndReason
	Session Session
	Err     *Error
}

// CloseMode distinguishes the two ways an owner can ask a Connection to shut
// down, per spec.md §5.
type CloseMode int

const (
	CloseModeDestroy CloseMode = iota
	CloseModeReconnect
)

type closeRequest int

const (
	closeNone closeRequest = iota
	closeDestroy
	closeReconnect
)

type finishSignal struct {
	reason  EndReason
	session Session
	err     *Error
}

// Connection drives exactly one physical gateway connection end-to-end, per
// spec.md §4.1. It is single-use: create a new Connection for every
// reconnect attempt, carrying the previous attempt's Result.Session forward
// as the next attempt's Run argument. This mirrors
// discordgo/gateway.go's GatewayConnectionManager, which creates a fresh
// GatewayConnection on every reconnect "to avoid a lot of synchronization
// needs".
type Connection struct {
	opts     Options
	observer Observer
	admitter Admitter
	codec    Codec
	queue    *sendQueue

	mu      sync.Mutex
	status  Status
	session Session
	hb      *heartbeater

	tr *transport

	writeMu sync.Mutex

	closeReqMu sync.Mutex
	closeReq   closeRequest

	finishOnce sync.Once
	finishCh   chan finishSignal
	teardownCh chan struct{}
}

// NewConnection constructs a Connection ready for a single Run call.
func NewConnection(opts Options, observer Observer, admitter Admitter) *Connection {
	var codec Codec = jsonCodec{}
	if opts.Compressed {
		codec = zlibStreamCodec{}
	}
	return &Connection{
		opts:     opts,
		observer: observer,
		admitter: admitter,
		codec:    codec,
		queue:      newSendQueue(opts.SendQueueHighWaterMark),
		finishCh:   make(chan finishSignal, 1),
		teardownCh: make(chan struct{}),
	}
}

// Run executes the full handshake/identify-or-resume/pump/close lifecycle
// for one connection attempt and blocks until it ends. session, if valid,
// causes this attempt to resume rather than identify.
func (c *Connection) Run(ctx context.Context, session Session) Result {
	c.mu.Lock()
	if c.status != StatusDisconnected {
		c.mu.Unlock()
		return Result{Reason: EndFatal, Err: &Error{Kind: ErrorKindStartup, Err: ErrAlreadyOpen}}
	}
	c.session = session
	c.mu.Unlock()
	c.setStatus(StatusConnecting)

	url := fmt.Sprintf("%s?v=%d&encoding=json", c.opts.GatewayURL, c.opts.GatewayVersion)
	tr, err := dial(ctx, url)
	if err != nil {
		return Result{Reason: EndResumable, Session: session, Err: &Error{Kind: ErrorKindTransientTransport, Err: err}}
	}
	c.tr = tr

	c.setStatus(StatusWaitingForHello)
	c.observer.OnDebug("connected to gateway websocket")

	go c.readLoop(ctx)

	select {
	case <-ctx.Done():
		c.RequestClose(CloseModeDestroy)
	case sig := <-c.finishCh:
		return c.finalize(sig)
	}

	sig := <-c.finishCh
	return c.finalize(sig)
}

func (c *Connection) finalize(sig finishSignal) Result {
	if hb := c.hbSnapshot(); hb != nil {
		hb.Stop()
	}
	switch sig.reason {
	case EndDestroyed, EndFatal:
		c.setStatus(StatusClosed)
	default:
		c.setStatus(StatusReconnecting)
	}
	return Result{Reason: sig.reason, Session: sig.session, Err: sig.err}
}

// RequestClose tears the connection down per spec.md §5: Destroy closes with
// 1000 and discards the session; Reconnect closes with 4000 and preserves
// it. Either way the read loop observes the resulting transport error and
// the pending Run call returns once teardown completes.
func (c *Connection) RequestClose(mode CloseMode) {
	c.closeReqMu.Lock()
	if mode == CloseModeDestroy {
		c.closeReq = closeDestroy
	} else {
		c.closeReq = closeReconnect
	}
	c.closeReqMu.Unlock()

	if mode == CloseModeDestroy {
		c.writeCloseFrame(CloseNormal, "destroyed")
	} else {
		c.writeCloseFrame(CloseUnknownError, "reconnect requested")
	}

	if hb := c.hbSnapshot(); hb != nil {
		hb.Stop()
	}
	if c.tr != nil {
		_ = c.tr.close()
	}
}

// Enqueue appends an application payload (e.g. a REQUEST_GUILD_MEMBERS or
// STATUS_UPDATE forwarded from the manager) to the send queue. It reports
// ErrBackpressureOverflow, and self-closes as zombied per spec.md §7, if the
// queue's high-water mark is exceeded.
func (c *Connection) Enqueue(p OutgoingPayload) error {
	if c.queue.Push(p) {
		return nil
	}

	c.observer.OnDebug("send queue high-water mark exceeded, closing as backpressured")
	c.writeCloseFrame(CloseUnknownError, "backpressure")
	if c.tr != nil {
		_ = c.tr.close()
	}
	c.finish(EndResumable, c.currentSessionLocked(), &Error{Kind: ErrorKindBackpressure, Err: ErrBackpressureOverflow})
	return ErrBackpressureOverflow
}

// CurrentSession returns a copy of the connection's current session state,
// for FetchSessionData snapshots (spec.md §4.2).
func (c *Connection) CurrentSession() Session {
	return c.currentSessionLocked()
}

// Status returns the connection's current lifecycle status.
func (c *Connection) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *Connection) currentSessionLocked() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

func (c *Connection) currentStatusLocked() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *Connection) setStatus(s Status) {
	c.mu.Lock()
	c.status = s
	c.mu.Unlock()
	c.observer.OnConnectionStatus(s)
}

func (c *Connection) hbSnapshot() *heartbeater {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hb
}

func (c *Connection) finish(reason EndReason, session Session, err *Error) {
	c.finishOnce.Do(func() {
		c.finishCh <- finishSignal{reason: reason, session: session, err: err}
		close(c.teardownCh)
	})
}

func (c *Connection) readLoop(ctx context.Context) {
	for {
		raw, err := c.tr.readMessage()
		if err != nil {
			c.onReadError(err)
			return
		}

		var ev event
		if derr := c.codec.Decode(raw, &ev); derr != nil {
			c.log(LogWarning, "failed decoding gateway payload: %v", derr)
			continue
		}

		c.handleEvent(ctx, &ev)
	}
}

func (c *Connection) onReadError(err error) {
	c.closeReqMu.Lock()
	req := c.closeReq
	c.closeReqMu.Unlock()

	switch req {
	case closeDestroy:
		c.finish(EndDestroyed, Session{}, nil)
		return
	case closeReconnect:
		c.finish(EndResumable, c.currentSessionLocked(), internalReconnectError())
		return
	}

	if code, reason, ok := closeError(err); ok {
		c.observer.OnDebug(fmt.Sprintf("gateway closed connection: code=%d reason=%q", int(code), reason))
		disp := ClassifyClose(code)
		if disp == DispositionFatalAuth || disp == DispositionFatalConfig {
			c.finish(EndFatal, Session{}, NewFatalError(code, disp))
			return
		}
		c.finish(EndResumable, c.currentSessionLocked(), nil)
		return
	}

	c.observer.OnDebug("transport error: " + err.Error())
	c.finish(EndResumable, c.currentSessionLocked(), nil)
}

func (c *Connection) handleEvent(ctx context.Context, ev *event) {
	switch ev.Op {
	case OpDispatch:
		c.handleDispatch(ev)
	case OpHeartbeat:
		c.log(LogDebug, "received server-requested heartbeat")
		if hb := c.hbSnapshot(); hb != nil {
			hb.ForceNow()
		}
	case OpReconnect:
		c.observer.OnDebug("gateway requested reconnect")
		c.setStatus(StatusReconnecting)
		c.writeCloseFrame(CloseUnknownError, "reconnect requested")
		if c.tr != nil {
			_ = c.tr.close()
		}
		c.finish(EndResumable, c.currentSessionLocked(), internalReconnectError())
	case OpInvalidSession:
		c.handleInvalidSession(ctx, ev)
	case OpHello:
		c.handleHello(ctx, ev)
	case OpHeartbeatACK:
		if hb := c.hbSnapshot(); hb != nil {
			hb.Ack()
			sent, _ := hb.Times()
			if !sent.IsZero() {
				c.observer.OnPing(time.Since(sent).Milliseconds())
			}
		}
	default:
		c.log(LogWarning, "unhandled opcode %d", ev.Op)
	}
}

func (c *Connection) handleHello(ctx context.Context, ev *event) {
	var h helloData
	if err := json.Unmarshal(ev.Data, &h); err != nil {
		c.observer.OnDebug("failed decoding hello: " + err.Error())
		return
	}

	interval := time.Duration(h.HeartbeatIntervalMs) * time.Millisecond
	hb := newHeartbeater(interval, func() int64 {
		return c.currentSessionLocked().Seq
	}, func(seq int64) {
		_ = c.writeRaw(OpHeartbeat, seq)
	}, c.onZombie)

	c.mu.Lock()
	c.hb = hb
	c.mu.Unlock()
	go hb.Run()

	go c.runSendQueue(ctx)

	if c.currentSessionLocked().Valid() {
		c.setStatus(StatusResuming)
		c.sendResume(ctx)
	} else {
		c.setStatus(StatusIdentifying)
		go c.doIdentify(ctx, true)
	}
}

func (c *Connection) handleDispatch(ev *event) {
	if ev.Seq > 0 {
		c.mu.Lock()
		if ev.Seq > c.session.Seq {
			c.session.Seq = ev.Seq
		}
		c.mu.Unlock()
	}

	switch ev.Type {
	case "READY":
		var rd readyData
		_ = json.Unmarshal(ev.Data, &rd)
		wasIdentifying := c.currentStatusLocked() == StatusIdentifying

		c.mu.Lock()
		c.session.ID = rd.SessionID
		c.mu.Unlock()

		c.queue.Release()
		c.setStatus(StatusReady)
		if wasIdentifying {
			c.observer.OnGatewayStatus(GatewayStatusReady)
		}
	case "RESUMED":
		c.queue.Release()
		c.setStatus(StatusReady)
	}

	c.observer.OnDispatch(Dispatch{Type: ev.Type, Seq: ev.Seq, Data: ev.Data})
}

func (c *Connection) handleInvalidSession(ctx context.Context, ev *event) {
	resumable := invalidSessionResumable(ev.Data)
	wasIdentifying := c.currentStatusLocked() == StatusIdentifying
	c.observer.OnDebug(fmt.Sprintf("invalid session received, resumable=%v", resumable))

	// jittered 1-5s backoff before the follow-up action, per spec.md §4.1.
	time.Sleep(time.Duration(rand.Intn(5)+1) * time.Second)

	if wasIdentifying {
		c.queue.Release()
	}

	if resumable {
		c.setStatus(StatusResuming)
		c.sendResume(ctx)
	} else {
		c.mu.Lock()
		c.session = Session{}
		c.mu.Unlock()
		c.setStatus(StatusIdentifying)
		if wasIdentifying {
			// The identify we were holding the admission slot for just
			// failed with a non-resumable INVALID_SESSION. Reporting that
			// below via OnGatewayStatus makes the manager resolve this
			// shard's admission as unsuccessful and re-enqueue it on its
			// own (spec.md §8); requesting a second admission here would
			// leave one of the two grants with nobody to consume it.
			go c.awaitIdentify(ctx)
		} else {
			go c.doIdentify(ctx, false)
		}
	}

	if wasIdentifying {
		c.observer.OnGatewayStatus(GatewayStatusInvalidSession)
	}
}

func (c *Connection) doIdentify(ctx context.Context, initial bool) {
	if err := c.admitter.Admit(ctx, initial); err != nil {
		c.observer.OnDebug("identify admission aborted: " + err.Error())
		c.finish(EndDestroyed, Session{}, nil)
		return
	}
	c.sendIdentify()
}

// awaitIdentify blocks for an admission grant the manager already promised,
// without sending a fresh admission request, then sends IDENTIFY once it
// arrives.
func (c *Connection) awaitIdentify(ctx context.Context) {
	if err := c.admitter.Await(ctx); err != nil {
		c.observer.OnDebug("identify admission aborted: " + err.Error())
		c.finish(EndDestroyed, Session{}, nil)
		return
	}
	c.sendIdentify()
}

func (c *Connection) sendIdentify() {
	c.queue.HoldForIdentify()
	data := identifyData{
		Token: c.opts.Token,
		Properties: identifyProperties{
			OS:      c.opts.Properties.OS,
			Browser: c.opts.Properties.Browser,
			Device:  c.opts.Properties.Device,
		},
		Intents:        c.opts.Intents,
		Shard:          [2]int{c.opts.Shard.ID, c.opts.Shard.Total},
		LargeThreshold: c.opts.LargeThreshold,
		Presence:       c.opts.Presence,
	}

	c.observer.OnDebug("sending identify")
	if err := c.writeRaw(OpIdentify, data); err != nil {
		c.observer.OnDebug("failed sending identify: " + err.Error())
	}
}

func (c *Connection) sendResume(ctx context.Context) {
	sess := c.currentSessionLocked()
	c.observer.OnDebug("sending resume")
	if err := c.writeRaw(OpResume, resumeData{Token: c.opts.Token, SessionID: sess.ID, Seq: sess.Seq}); err != nil {
		c.observer.OnDebug("failed sending resume: " + err.Error())
	}
}

func (c *Connection) onZombie() {
	c.observer.OnDebug("no heartbeat ack received since last send, treating connection as zombied")
	c.setStatus(StatusReconnecting)
	c.writeCloseFrame(CloseUnknownError, "zombied connection")
	if c.tr != nil {
		_ = c.tr.close()
	}
	c.finish(EndResumable, c.currentSessionLocked(), internalReconnectError())
}

// internalReconnectError tags a self-initiated resumable teardown (manager
// reconnect request, server OP 7, or a zombied heartbeat) with
// CloseInternalReconnectRequested so the shard runtime can tell it apart
// from a resumable close the gateway itself sent.
func internalReconnectError() *Error {
	return &Error{
		Kind: ErrorKindTransientTransport,
		Code: CloseInternalReconnectRequested,
		Err:  errors.New("internal reconnect requested"),
	}
}

// runSendQueue paces application-payload delivery per spec.md §4.1/§9's
// 120/60s outbound guard. It runs for the lifetime of the connection
// attempt, stopping once the attempt tears down.
func (c *Connection) runSendQueue(ctx context.Context) {
	ticker := time.NewTicker(defaultSendInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.teardownCh:
			return
		case <-ticker.C:
			if p, ok := c.queue.Pop(); ok {
				_ = c.writeRaw(p.Op, p.Data)
			}
		}
	}
}

func (c *Connection) writeRaw(op Opcode, data interface{}) error {
	payload, err := c.codec.Encode(op, data)
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.tr.writeMessage(payload)
}

func (c *Connection) writeCloseFrame(code CloseCode, reason string) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if c.tr == nil {
		return
	}
	_ = c.tr.writeClose(code, reason)
}
