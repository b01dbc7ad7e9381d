// SPDX-License-Identifier: EPL-2.0

// Package logging holds the default logger factory shared by onda packages.
package logging

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pion/logging"
)

var ErrUnknownLevel = errors.New("unknown log level")

var loggerFactory = logging.NewDefaultLoggerFactory()

// NewLogger returns a logger for scope from the default factory.
func NewLogger(scope string) logging.LeveledLogger {
	return loggerFactory.NewLogger(scope)
}

// Factory returns f, or the default factory when f is nil.
func Factory(f logging.LoggerFactory) logging.LoggerFactory {
	if f == nil {
		return loggerFactory
	}

	return f
}

// ParseLevel maps a level name such as "warn" or "debug" to a log level.
func ParseLevel(s string) (logging.LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "disabled", "off", "none":
		return logging.LogLevelDisabled, nil
	case "error":
		return logging.LogLevelError, nil
	case "warn", "warning", "":
		return logging.LogLevelWarn, nil
	case "info":
		return logging.LogLevelInfo, nil
	case "debug":
		return logging.LogLevelDebug, nil
	case "trace":
		return logging.LogLevelTrace, nil
	}

	return logging.LogLevelDisabled, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

// NewFactory returns a factory logging at level to w. A nil w keeps the
// factory's default of stdout.
func NewFactory(level string, w io.Writer) (*logging.DefaultLoggerFactory, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	f := logging.NewDefaultLoggerFactory()
	f.DefaultLogLevel = lvl
	if w != nil {
		f.Writer = w
	}

	return f, nil
}
