// Package env holds the process-wide run mode. The mode decides log
// verbosity, whether the dev-only verification code lookup route is mounted
// and whether an SMTP sender is mandatory at startup.
package env

import "log/slog"

type Mode string

const (
	Test  Mode = "test"
	Local Mode = "local"
	Dev   Mode = "dev"
	Prod  Mode = "prod"
)

// Test is the zero state so suites never accidentally run with prod
// behavior. main overrides it from configuration before anything else reads
// Current.
var currentMode = Test

// SetMode panics on an unknown mode; a typo in MODE should stop the process
// at startup, not silently run in the default.
func SetMode(mode Mode) {
	if !mode.Validate() {
		panic("invalid mode: " + mode.String())
	}
	currentMode = mode
}

func Current() Mode {
	return currentMode
}

func (e Mode) String() string {
	return string(e)
}

func (e Mode) Validate() bool {
	switch e {
	case Local, Test, Dev, Prod:
		return true
	default:
		return false
	}
}

func (e Mode) SlogLevel() slog.Level {
	switch e {
	case Test, Local, Dev:
		return slog.LevelDebug
	case Prod:
		return slog.LevelInfo
	default:
		return slog.LevelInfo
	}
}
