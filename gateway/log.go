package gateway

import (
	"fmt"
	"log"
)

// LogLevel mirrors discordgo/gateway.go's int log levels. This package is on
// the hot per-frame path (every decoded frame, every heartbeat), so
// high-frequency traces go through this cheap leveled hook instead of the
// Observer, which the shard package relays across the control channel to
// the manager — reserving that path for events the manager actually needs
// to react to.
type LogLevel int

const (
	LogError LogLevel = iota
	LogWarning
	LogInformational
	LogDebug
)

// Logger, when set, receives every gateway trace line instead of the default
// log.Printf sink. Grounded on discordgo/gateway.go's package-level
// GatewayLogger hook.
var Logger func(shardID int, level LogLevel, format string, args ...interface{})

func (c *Connection) log(level LogLevel, format string, args ...interface{}) {
	if level > c.opts.LogLevel {
		return
	}
	if Logger != nil {
		Logger(c.opts.Shard.ID, level, format, args...)
		return
	}
	prefix := fmt.Sprintf("[shard %s] ", c.opts.Shard.String())
	log.Printf(prefix+format, args...)
}
