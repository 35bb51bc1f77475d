package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

var ensureSchema = EnsureSchema

// Bootstrap pings the server and, only when it answers, brings the schema
// up to date. Migrations have no deadline of their own, so they are never
// started against a server that did not answer the bounded ping.
func Bootstrap(ctx context.Context, pool *pgxpool.Pool, dsn string, logger *logrus.Logger) error {
	if err := Ping(ctx, pool); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	if logger != nil {
		logger.Info("connected to postgres")
	}
	if err := ensureSchema(dsn, logger); err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	return nil
}
