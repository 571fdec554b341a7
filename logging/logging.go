// Package logging is the module's ambient logrus seam, grounded on
// yagpdb's cmd/yagmaster and common/run setup of a package-level logrus
// logger with a text formatter, generalized into a constructor so a caller
// embedding this module isn't forced to mutate logrus's global state.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New builds a logrus logger configured the way this module's own binaries
// configure theirs: text formatting, colors when attached to a terminal-like
// output, level taken from the DSHARD_LOG_LEVEL environment variable when
// level is empty.
func New(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	logger.SetOutput(os.Stderr)

	if level == "" {
		level = os.Getenv("DSHARD_LOG_LEVEL")
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)

	return logger
}

// Discard returns a logger that drops everything, for tests and other
// callers that don't want log noise.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// ForShard returns a logging context tagged with the given shard id, the
// way every control-channel message this module emits is already tagged.
func ForShard(logger *logrus.Logger, shardID int) *logrus.Entry {
	return logger.WithField("shard", shardID)
}
