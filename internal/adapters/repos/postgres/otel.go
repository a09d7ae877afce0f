package postgres

import (
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
)

var (
	tracer = otel.Tracer("orchid-accounts/internal/adapters/repos/postgres")
	logger = otelslog.NewLogger("orchid-accounts/internal/adapters/repos/postgres")
)
