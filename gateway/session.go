package gateway

import "strconv"

// Session is the server-side resume cursor established by a Ready dispatch.
// It is resumable until it is explicitly invalidated or a non-resumable
// close occurs.
type Session struct {
	ID  string
	Seq int64
}

// Valid reports whether s represents an established session.
func (s Session) Valid() bool {
	return s.ID != ""
}

// ShardID identifies a single shard's slice of the gateway traffic.
type ShardID struct {
	ID    int
	Total int
}

func (s ShardID) String() string {
	return strconv.Itoa(s.ID) + "/" + strconv.Itoa(s.Total)
}

// SessionStartLimit is the remote identify budget reported by GET /gateway/bot.
type SessionStartLimit struct {
	Total        int
	Remaining    int
	ResetAfterMs int64
}

// Info is the gateway metadata returned by GET /gateway/bot.
type Info struct {
	URL               string
	RecommendedShards int
	SessionStartLimit SessionStartLimit
}
