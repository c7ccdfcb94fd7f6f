package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Reset drops every point and restores the sample itinerary. Reference data
// and the schema are kept.
func Reset(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("reset: db not configured")
	}
	err := withTx(ctx, db, func(tx *sql.Tx) error {
		for _, t := range []string{"point_offers", "points"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+t); err != nil {
				return fmt.Errorf("reset table %s: %w", t, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	_, _ = db.ExecContext(ctx, "VACUUM")
	return SeedDefaults(ctx, db)
}

func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
