package gateway

// CloseCode is a websocket close code as sent by the gateway.
type CloseCode int

const (
	// CloseNormal is the standard websocket normal-closure code, used when
	// this side deliberately destroys a connection rather than reconnects.
	CloseNormal CloseCode = 1000

	CloseUnknownError         CloseCode = 4000
	CloseUnknownOpcode        CloseCode = 4001
	CloseDecodeError          CloseCode = 4002
	CloseNotAuthenticated     CloseCode = 4003
	CloseAuthenticationFailed CloseCode = 4004
	CloseAlreadyAuthenticated CloseCode = 4005
	CloseInvalidSeq           CloseCode = 4007
	CloseRateLimited          CloseCode = 4008
	CloseSessionTimedOut      CloseCode = 4009
	CloseInvalidShard         CloseCode = 4010
	CloseShardingRequired     CloseCode = 4011
	CloseInvalidAPIVersion    CloseCode = 4012
	CloseInvalidIntents       CloseCode = 4013
	CloseDisallowedIntents    CloseCode = 4014

	// CloseInternalReconnectRequested is not a real wire close code, it's how
	// the connection represents "we decided to close and resume" internally
	// (spec.md §4.1's "4900 internal reconnect-requested").
	CloseInternalReconnectRequested CloseCode = 4900
)

// Disposition classifies what a shard should do after a close code.
type Disposition int

const (
	// DispositionResumable means reconnect and attempt to resume.
	DispositionResumable Disposition = iota
	// DispositionFatalAuth means surface an Auth error and stop retrying.
	DispositionFatalAuth
	// DispositionFatalConfig means surface a Config error and stop retrying.
	DispositionFatalConfig
)

var fatalAuthCodes = map[CloseCode]bool{
	CloseNotAuthenticated:     true,
	CloseAuthenticationFailed: true,
}

var fatalConfigCodes = map[CloseCode]bool{
	CloseInvalidShard:      true,
	CloseShardingRequired:  true,
	CloseInvalidAPIVersion: true,
	CloseInvalidIntents:    true,
	CloseDisallowedIntents: true,
}

// ClassifyClose implements the close-code policy table of spec.md §4.1.
// Unknown and transport-level codes default to resumable.
func ClassifyClose(code CloseCode) Disposition {
	if fatalAuthCodes[code] {
		return DispositionFatalAuth
	}
	if fatalConfigCodes[code] {
		return DispositionFatalConfig
	}
	return DispositionResumable
}
