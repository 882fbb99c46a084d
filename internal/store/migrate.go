package store

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	migrate "github.com/rubenv/sql-migrate"

	"github.com/Clark-Hu/movie-reviews/db"
)

// Migrate applies the embedded schema migrations in the given direction and
// returns how many were applied.
func Migrate(dbURL string, dir migrate.MigrationDirection) (int, error) {
	sqlDB, err := sql.Open("pgx", dbURL)
	if err != nil {
		return 0, fmt.Errorf("open migration connection: %w", err)
	}
	defer sqlDB.Close()

	n, err := migrate.Exec(sqlDB, "postgres", db.Migrations(), dir)
	if err != nil {
		return n, fmt.Errorf("apply migrations: %w", err)
	}
	return n, nil
}
