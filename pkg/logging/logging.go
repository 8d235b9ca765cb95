// Package logging builds the go-kit logger shared by the server and CLI.
package logging

import (
	"io"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
)

// Levels accepted by New.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// ParseLevel maps a level name to a go-kit filter option.
func ParseLevel(name string) (level.Option, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case LevelDebug:
		return level.AllowDebug(), nil
	case LevelInfo, "":
		return level.AllowInfo(), nil
	case LevelWarn, "warning":
		return level.AllowWarn(), nil
	case LevelError:
		return level.AllowError(), nil
	}
	return nil, errors.Errorf("unknown log level %q", name)
}

// New returns a logfmt logger writing to w with timestamp and caller,
// filtered at levelName.
func New(w io.Writer, levelName string) (log.Logger, error) {
	opt, err := ParseLevel(levelName)
	if err != nil {
		return nil, err
	}

	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = level.NewFilter(logger, opt)
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
	return logger, nil
}
