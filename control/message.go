// Package control implements the typed, in-process message passing between
// a shard runtime and the manager that owns it. It knows nothing of the
// manager and uses from gateway only its plain data types: messages carry
// plain data (session snapshots, dispatch payloads, status enums) tagged by a
// kind (ToManagerKind or ToShardKind), the
// way dshardorchestrator tags its node/orchestrator protocol, generalized
// from a wire protocol between OS processes to a Go-channel protocol
// between goroutines within one process.
package control

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/shardkeep/dshard/gateway"
)

// ToManagerKind tags a message a shard runtime sends to the manager.
type ToManagerKind int

const (
	ToManagerDebug ToManagerKind = iota
	ToManagerDispatch
	ToManagerIdentify
	ToManagerScheduleIdentify
	ToManagerUpdatePing
	ToManagerGatewayStatus
	ToManagerConnectionStatus
	ToManagerCannotReconnect
	ToManagerPayloadDispatch
	ToManagerFetchSessionData
)

func (k ToManagerKind) String() string {
	switch k {
	case ToManagerDebug:
		return "Debug"
	case ToManagerDispatch:
		return "Dispatch"
	case ToManagerIdentify:
		return "Identify"
	case ToManagerScheduleIdentify:
		return "ScheduleIdentify"
	case ToManagerUpdatePing:
		return "UpdatePing"
	case ToManagerGatewayStatus:
		return "GatewayStatus"
	case ToManagerConnectionStatus:
		return "ConnectionStatusUpdate"
	case ToManagerCannotReconnect:
		return "CannotReconnect"
	case ToManagerPayloadDispatch:
		return "PayloadDispatch"
	case ToManagerFetchSessionData:
		return "FetchSessionData"
	}
	return "Unknown"
}

// ToShardKind tags a message the manager sends to a shard runtime.
type ToShardKind int

const (
	ToShardIdentify ToShardKind = iota
	ToShardReconnect
	ToShardDestroy
	ToShardPayloadDispatch
	ToShardFetchSessionData
)

func (k ToShardKind) String() string {
	switch k {
	case ToShardIdentify:
		return "Identify"
	case ToShardReconnect:
		return "Reconnect"
	case ToShardDestroy:
		return "Destroy"
	case ToShardPayloadDispatch:
		return "PayloadDispatch"
	case ToShardFetchSessionData:
		return "FetchSessionData"
	}
	return "Unknown"
}

// SessionSnapshot is a copy of a shard's session state, exchanged as data
// (never as a shared reference) so that FetchSessionData round-trips it the
// way it would cross a real process boundary.
type SessionSnapshot struct {
	ShardID   int
	SessionID string
	Seq       int64
}

// Clone returns a deep copy of s obtained by round-tripping it through
// msgpack, upholding the "data crosses the boundary by serialization/copy"
// invariant even though the transport underneath is just Go channels.
func (s SessionSnapshot) Clone() (SessionSnapshot, error) {
	raw, err := msgpack.Marshal(s)
	if err != nil {
		return SessionSnapshot{}, err
	}
	var out SessionSnapshot
	if err := msgpack.Unmarshal(raw, &out); err != nil {
		return SessionSnapshot{}, err
	}
	return out, nil
}

// CannotReconnectInfo carries why a shard gave up permanently.
type CannotReconnectInfo struct {
	Code   int
	Reason string
	Fatal  bool
}

// ToManager is one message sent from a shard runtime to the manager.
type ToManager struct {
	ShardID int
	Kind    ToManagerKind

	Debug string

	Dispatch gateway.Dispatch

	// Payload carries a ToManagerPayloadDispatch message: a payload the
	// shard could not address itself (e.g. a guild-routed send) forwarded
	// to the manager. The manager does not route it to another shard; it
	// logs a warning and drops it.
	Payload gateway.OutgoingPayload

	PingMs int64

	// GatewayReady distinguishes the two GatewayStatus outcomes without an
	// extra payload type: true for Ready, false for InvalidSession.
	GatewayReady bool

	ConnectionStatus gateway.Status

	CannotReconnect CannotReconnectInfo

	Session SessionSnapshot
}

// ToShard is one message sent from the manager to a shard runtime.
type ToShard struct {
	Kind ToShardKind

	Payload gateway.OutgoingPayload

	Session SessionSnapshot
}
