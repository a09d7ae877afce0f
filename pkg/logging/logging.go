package logging

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"

	"github.com/ossm-org/orchid-accounts/pkg/env"
)

// Setup builds the process-wide logger for the given mode. Local and test
// modes get a colorized human-readable handler, everything else logs JSON.
// The returned cleanup is a no-op today but keeps the call sites stable if a
// file or remote sink is added later.
func Setup(mode env.Mode) (*slog.Logger, func()) {
	opts := &slog.HandlerOptions{Level: mode.SlogLevel()}

	var handler slog.Handler
	switch mode {
	case env.Local, env.Test:
		handler = tint.NewHandler(os.Stdout, &tint.Options{Level: opts.Level})
	default:
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler), func() {}
}
