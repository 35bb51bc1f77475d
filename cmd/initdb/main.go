package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/netmovie-accounts/config"
	pginfra "github.com/oksasatya/netmovie-accounts/internal/infrastructure/postgres"
	"github.com/oksasatya/netmovie-accounts/pkg/helpers"
)

// initdb checks the database answers and creates the users table.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-initdb", cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), 1, 0, time.Minute)
	if err != nil {
		helpers.LogError(logger, "invalid postgres configuration", err, nil)
		os.Exit(1)
	}
	defer pool.Close()

	var two int
	if err := pool.QueryRow(ctx, "SELECT 1 + 1 AS result").Scan(&two); err != nil {
		helpers.LogError(logger, "database connection failed", err, nil)
		pool.Close()
		os.Exit(1)
	}
	logger.WithField("result", two).Info("database connection ok")

	if err := pginfra.EnsureSchema(cfg.PostgresDSN(), logger); err != nil {
		helpers.LogError(logger, "error initializing database", err, nil)
		pool.Close()
		os.Exit(1)
	}
	logger.Info("database initialized")
}
