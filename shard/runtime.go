// Package shard owns exactly one shard's isolated execution context: it
// drives the reconnect loop against the gateway package's single-attempt
// Connection, and translates gateway-level observations and manager
// directives across the control package's typed channel. It is the only
// package that imports both gateway and control, keeping each of those free
// of a dependency on the other — grounded on the way
// dshardorchestrator's node interface sits between a gateway session and
// the orchestrator's wire protocol without either side knowing about the
// other directly.
package shard

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/shardkeep/dshard/control"
	"github.com/shardkeep/dshard/gateway"
)

// backoffCeiling caps the delay between resumable reconnect attempts.
const backoffCeiling = 30 * time.Second

// Runtime is one shard's isolated execution context. It implements
// gateway.Observer and gateway.Admitter itself, so a fresh gateway.Connection
// can be handed the same Runtime on every reconnect.
type Runtime struct {
	opts   gateway.Options
	ctrl   *control.Channel
	logger *logrus.Entry

	grantCh chan struct{}

	mu   sync.Mutex
	conn *gateway.Connection
	ctx  context.Context
}

// New builds a shard runtime for the given options and control channel. The
// manager owns the Channel and hands one endpoint of it here; the other end
// is the manager's own goroutine reading Channel.RecvFromShard.
func New(opts gateway.Options, ctrl *control.Channel, logger *logrus.Entry) *Runtime {
	return &Runtime{
		opts:    opts,
		ctrl:    ctrl,
		logger:  logger.WithField("shard", opts.Shard.String()),
		grantCh: make(chan struct{}, 1),
		ctx:     context.Background(),
	}
}

// Run owns the reconnect loop for the life of the shard: it constructs a
// fresh gateway.Connection for every attempt (never reusing one across
// reconnects, per gateway.Connection's own contract) and carries the
// session forward across resumable ends. It returns once the shard is
// destroyed, hits a fatal close, or ctx is cancelled.
func (r *Runtime) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	r.mu.Lock()
	r.ctx = ctx
	r.mu.Unlock()

	go r.controlLoop(ctx)

	var session gateway.Session
	backoff := time.Second

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		conn := gateway.NewConnection(r.opts, r, r)
		r.setActiveConn(conn)

		res := conn.Run(ctx, session)
		r.setActiveConn(nil)

		switch res.Reason {
		case gateway.EndDestroyed:
			return
		case gateway.EndFatal:
			code, reason := 0, "fatal close"
			if res.Err != nil {
				code = int(res.Err.Code)
				reason = res.Err.Error()
			}
			r.logger.WithField("code", code).Error("shard cannot reconnect: " + reason)
			r.sendCannotReconnect(ctx, code, reason, true)
			return
		case gateway.EndResumable:
			session = res.Session
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			backoff = nextBackoff(backoff)
		}
	}
}

func nextBackoff(cur time.Duration) time.Duration {
	next := cur * 2
	if next > backoffCeiling {
		return backoffCeiling
	}
	return next
}

func (r *Runtime) setActiveConn(c *gateway.Connection) {
	r.mu.Lock()
	r.conn = c
	if c != nil {
		// a fresh connection means a fresh identify/resume cycle; drop any
		// stale grant left over from a previous attempt.
		select {
		case <-r.grantCh:
		default:
		}
	}
	r.mu.Unlock()
}

func (r *Runtime) activeConn() *gateway.Connection {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.conn
}

func (r *Runtime) runCtx() context.Context {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ctx
}

func (r *Runtime) controlLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-r.ctrl.RecvFromManager():
			r.handleManagerMessage(ctx, msg)
		}
	}
}

func (r *Runtime) handleManagerMessage(ctx context.Context, msg control.ToShard) {
	switch msg.Kind {
	case control.ToShardIdentify:
		select {
		case r.grantCh <- struct{}{}:
		default:
		}
	case control.ToShardReconnect:
		if c := r.activeConn(); c != nil {
			c.RequestClose(gateway.CloseModeReconnect)
		}
	case control.ToShardDestroy:
		if c := r.activeConn(); c != nil {
			c.RequestClose(gateway.CloseModeDestroy)
		}
	case control.ToShardPayloadDispatch:
		if c := r.activeConn(); c != nil {
			if err := c.Enqueue(msg.Payload); err != nil {
				r.logger.WithError(err).Warn("dropped payload dispatch")
			}
		}
	case control.ToShardFetchSessionData:
		c := r.activeConn()
		if c == nil {
			return
		}
		sess := c.CurrentSession()
		snap := control.SessionSnapshot{ShardID: r.opts.Shard.ID, SessionID: sess.ID, Seq: sess.Seq}
		cloned, err := snap.Clone()
		if err != nil {
			r.logger.WithError(err).Warn("failed cloning session snapshot, sending original")
			cloned = snap
		}
		_ = r.ctrl.SendToManager(ctx, control.ToManager{
			ShardID: r.opts.Shard.ID,
			Kind:    control.ToManagerFetchSessionData,
			Session: cloned,
		})
	}
}

func (r *Runtime) sendCannotReconnect(ctx context.Context, code int, reason string, fatal bool) {
	_ = r.ctrl.SendToManager(ctx, control.ToManager{
		ShardID: r.opts.Shard.ID,
		Kind:    control.ToManagerCannotReconnect,
		CannotReconnect: control.CannotReconnectInfo{
			Code:   code,
			Reason: reason,
			Fatal:  fatal,
		},
	})
}

// RequestRoutedSend forwards a payload this shard cannot address itself
// (spec.md §4.2's shard->manager PayloadDispatch) to the manager. The
// manager does not route it to another shard; it logs a warning and drops
// the payload.
func (r *Runtime) RequestRoutedSend(ctx context.Context, payload gateway.OutgoingPayload) error {
	return r.ctrl.SendToManager(ctx, control.ToManager{
		ShardID: r.opts.Shard.ID,
		Kind:    control.ToManagerPayloadDispatch,
		Payload: payload,
	})
}

// Admit implements gateway.Admitter by asking the manager for permission to
// identify and blocking until it grants one, matching spec.md §4.3's
// single global identify queue.
func (r *Runtime) Admit(ctx context.Context, initial bool) error {
	kind := control.ToManagerIdentify
	if !initial {
		kind = control.ToManagerScheduleIdentify
	}
	if err := r.ctrl.SendToManager(ctx, control.ToManager{ShardID: r.opts.Shard.ID, Kind: kind}); err != nil {
		return err
	}

	select {
	case <-r.grantCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Await implements gateway.Admitter by blocking for an admission grant
// without requesting one. It's used when the manager already re-enqueued
// this shard on its own — after resolving a prior admission as
// InvalidSession (spec.md §8) — so the connection doesn't also send a
// redundant Identify/ScheduleIdentify request for the same re-identify.
func (r *Runtime) Await(ctx context.Context) error {
	select {
	case <-r.grantCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// OnDebug implements gateway.Observer. The token is redacted before the
// string is logged or forwarded over the control channel, per spec.md §7.
func (r *Runtime) OnDebug(msg string) {
	msg = r.redact(msg)
	r.logger.Debug(msg)
	_ = r.ctrl.SendToManager(r.runCtx(), control.ToManager{ShardID: r.opts.Shard.ID, Kind: control.ToManagerDebug, Debug: msg})
}

func (r *Runtime) redact(msg string) string {
	if r.opts.Token == "" {
		return msg
	}
	return strings.ReplaceAll(msg, r.opts.Token, "[redacted]")
}

// OnDispatch implements gateway.Observer.
func (r *Runtime) OnDispatch(d gateway.Dispatch) {
	_ = r.ctrl.SendToManager(r.runCtx(), control.ToManager{ShardID: r.opts.Shard.ID, Kind: control.ToManagerDispatch, Dispatch: d})
}

// OnPing implements gateway.Observer.
func (r *Runtime) OnPing(ms int64) {
	_ = r.ctrl.SendToManager(r.runCtx(), control.ToManager{ShardID: r.opts.Shard.ID, Kind: control.ToManagerUpdatePing, PingMs: ms})
}

// OnGatewayStatus implements gateway.Observer.
func (r *Runtime) OnGatewayStatus(signal gateway.GatewayStatusSignal) {
	_ = r.ctrl.SendToManager(r.runCtx(), control.ToManager{
		ShardID:      r.opts.Shard.ID,
		Kind:         control.ToManagerGatewayStatus,
		GatewayReady: signal == gateway.GatewayStatusReady,
	})
}

// OnConnectionStatus implements gateway.Observer.
func (r *Runtime) OnConnectionStatus(status gateway.Status) {
	r.logger.WithField("status", status.String()).Info("connection status changed")
	_ = r.ctrl.SendToManager(r.runCtx(), control.ToManager{
		ShardID:          r.opts.Shard.ID,
		Kind:             control.ToManagerConnectionStatus,
		ConnectionStatus: status,
	})
}
