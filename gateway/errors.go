package gateway

import "github.com/pkg/errors"

// ErrorKind classifies a shard-level failure per spec.md §7.
type ErrorKind int

const (
	ErrorKindStartup ErrorKind = iota
	ErrorKindAuth
	ErrorKindConfig
	ErrorKindTransientTransport
	ErrorKindSessionInvalidation
	ErrorKindZombie
	ErrorKindBackpressure
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindStartup:
		return "startup"
	case ErrorKindAuth:
		return "auth"
	case ErrorKindConfig:
		return "config"
	case ErrorKindTransientTransport:
		return "transient_transport"
	case ErrorKindSessionInvalidation:
		return "session_invalidation"
	case ErrorKindZombie:
		return "zombie"
	case ErrorKindBackpressure:
		return "backpressure"
	}
	return "unknown"
}

// Error is a shard-level failure tagged with the kind that produced it.
type Error struct {
	Kind ErrorKind
	Code CloseCode
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// NewFatalError builds an Error for a fatal close code, per spec.md §7.
func NewFatalError(code CloseCode, disposition Disposition) *Error {
	kind := ErrorKindTransientTransport
	switch disposition {
	case DispositionFatalAuth:
		kind = ErrorKindAuth
	case DispositionFatalConfig:
		kind = ErrorKindConfig
	}
	return &Error{Kind: kind, Code: code, Err: errors.Errorf("gateway closed with fatal code %d", int(code))}
}

var (
	// ErrMissingToken is a Startup error: no token was configured before spawn.
	ErrMissingToken = errors.New("dshard: no token configured; set Options.Token or DISCORD_TOKEN")
	// ErrBadShardConfig is a Startup error: the shard configuration is invalid.
	ErrBadShardConfig = errors.New("dshard: invalid shard configuration")
	// ErrAlreadyOpen is returned by Connection.Run when called more than
	// once on the same Connection; a Connection is single-use.
	ErrAlreadyOpen = errors.New("dshard: connection already open")
	// ErrBackpressureOverflow is reported by Connection.Enqueue when the
	// send queue's high-water mark is exceeded.
	ErrBackpressureOverflow = errors.New("dshard: send queue backpressure overflow")
)
