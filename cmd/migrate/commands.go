// cmd/migrate/commands.go

package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/imadgeboyega/dating-insights-backend/internal/common/database"
	"github.com/imadgeboyega/dating-insights-backend/internal/common/logger"
)

// down rolls back the most recent migration
func down(ctx context.Context, db *sql.DB, log *logger.Logger) error {
	provider, err := database.NewMigrator(db)
	if err != nil {
		return err
	}

	result, err := provider.Down(ctx)
	if err != nil {
		return fmt.Errorf("goose down: %w", err)
	}
	log.Info("rolled back migration", "version", result.Source.Version, "path", result.Source.Path)
	return nil
}

// status logs every known migration and whether it is applied
func status(ctx context.Context, db *sql.DB, log *logger.Logger) error {
	provider, err := database.NewMigrator(db)
	if err != nil {
		return err
	}

	statuses, err := provider.Status(ctx)
	if err != nil {
		return fmt.Errorf("goose status: %w", err)
	}
	for _, s := range statuses {
		log.Info("migration",
			"version", s.Source.Version,
			"path", s.Source.Path,
			"state", string(s.State),
			"applied_at", s.AppliedAt,
		)
	}
	return nil
}
