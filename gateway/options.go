package gateway

import "context"

// Options is the "Opened contract" of spec.md §4.1.
type Options struct {
	GatewayURL     string
	GatewayVersion int
	Token          string
	Shard          ShardID
	Intents        int64
	Properties     IdentifyProperties
	LargeThreshold int
	Presence       interface{}

	// Compressed enables the zlib-stream payload codec. Off by default; see
	// codec.go and DESIGN.md.
	Compressed bool

	// SendQueueHighWaterMark bounds the outbound application-payload queue
	// before the connection treats itself as backpressured and self-closes
	// (spec.md §7). Zero uses a sane default.
	SendQueueHighWaterMark int

	LogLevel LogLevel
}

// Observer receives the "observable side effects" spec.md §4.1 requires: a
// single connection attempt reports debug strings, dispatches, ping
// samples, and status transitions through this seam so that the shard
// package (not this one) can decide how to relay them across the control
// channel — this package has no notion of the control channel at all, which
// keeps gateway free of a dependency on control (see SPEC_FULL.md §4.2).
type Observer interface {
	OnDebug(msg string)
	OnDispatch(d Dispatch)
	OnPing(d int64) // milliseconds
	OnGatewayStatus(signal GatewayStatusSignal)
	OnConnectionStatus(status Status)
}

// Admitter is how a connection attempt asks its owner (the shard runtime)
// for permission to send IDENTIFY, honoring the manager's global admission
// queue (spec.md §4.3). initial distinguishes the very first identify for a
// freshly spawned shard from a re-identify forced by a failed resume, so the
// caller can raise the right control-channel signal
// (Identify vs ScheduleIdentify, per spec.md §4.2).
//
// Await waits for a grant the manager already promised without requesting a
// new one. The manager re-enqueues a shard on its own once it resolves an
// admission as InvalidSession (spec.md §8); a connection reacting to that
// same event must not also call Admit, or the shard ends up with two
// outstanding admission requests for one re-identify.
type Admitter interface {
	Admit(ctx context.Context, initial bool) error
	Await(ctx context.Context) error
}
