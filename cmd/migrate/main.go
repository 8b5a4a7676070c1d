// cmd/migrate/main.go
// Applies, rolls back or reports the embedded database migrations

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/imadgeboyega/dating-insights-backend/internal/common/database"
	"github.com/imadgeboyega/dating-insights-backend/internal/common/logger"
	"github.com/imadgeboyega/dating-insights-backend/internal/config"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: migrate [up|down|status]\n")
	}
	flag.Parse()

	command := "up"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	_ = godotenv.Load()
	cfg := config.Load()

	log, err := logger.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()
	db, err := database.NewPostgresDBFromURL(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to PostgreSQL", "error", err)
	}
	defer db.Close()

	switch command {
	case "up":
		err = database.RunMigrations(ctx, db, log)
	case "down":
		err = down(ctx, db, log)
	case "status":
		err = status(ctx, db, log)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal("migration failed", "command", command, "error", err)
	}
}
