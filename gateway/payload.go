package gateway

import "encoding/json"

// event is the raw envelope every inbound frame is decoded into first,
// mirroring discordgo/events.go's Event{Operation,Sequence,Type,RawData}.
type event struct {
	Op   Opcode          `json:"op"`
	Seq  int64           `json:"s,omitempty"`
	Type string          `json:"t,omitempty"`
	Data json.RawMessage `json:"d,omitempty"`
}

// Dispatch is a single DISPATCH payload forwarded to subscribers.
type Dispatch struct {
	// Type is the closed dispatch-event-name enumeration (e.g. "MESSAGE_CREATE").
	Type string
	// Seq is the sequence number this dispatch carried.
	Seq int64
	// Data is the raw JSON body; schema-typed decoding per Type is left to
	// the consumer, per spec.md §1's "consumer event subscription surface"
	// being an external collaborator.
	Data json.RawMessage
}

// OutgoingPayload is a payload queued for send to the gateway.
type OutgoingPayload struct {
	Op   Opcode
	Data interface{}
}

// RequestGuildMembersData is the opcode 8 REQUEST_GUILD_MEMBERS payload
// body, mirroring discordgo's RequestGuildMembersData.
type RequestGuildMembersData struct {
	GuildID   string   `json:"guild_id"`
	Query     string   `json:"query,omitempty"`
	Limit     int      `json:"limit"`
	Presences bool     `json:"presences,omitempty"`
	UserIDs   []string `json:"user_ids,omitempty"`
	Nonce     string   `json:"nonce,omitempty"`
}

type helloData struct {
	HeartbeatIntervalMs int64 `json:"heartbeat_interval"`
}

type identifyProperties struct {
	OS      string `json:"$os"`
	Browser string `json:"$browser"`
	Device  string `json:"$device"`
}

// IdentifyProperties is the client-identification triple sent with IDENTIFY.
type IdentifyProperties struct {
	OS      string
	Browser string
	Device  string
}

type identifyData struct {
	Token          string             `json:"token"`
	Properties     identifyProperties `json:"properties"`
	Intents        int64              `json:"intents"`
	Shard          [2]int             `json:"shard"`
	LargeThreshold int                `json:"large_threshold"`
	Presence       interface{}        `json:"presence,omitempty"`
}

type resumeData struct {
	Token     string `json:"token"`
	SessionID string `json:"session_id"`
	Seq       int64  `json:"seq"`
}

type readyData struct {
	SessionID string `json:"session_id"`
}

// invalidSessionResumable decodes the OP9 body, which is a bare JSON bool.
func invalidSessionResumable(raw json.RawMessage) bool {
	var resumable bool
	_ = json.Unmarshal(raw, &resumable)
	return resumable
}
