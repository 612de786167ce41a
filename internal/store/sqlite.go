package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/sells-group/location-screen/internal/model"
)

// SQLite reads locations from a local SQLite copy of the Location table.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close() //nolint:errcheck
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLite{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS "Location" (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	description  TEXT,
	hours        TEXT,
	address      TEXT,
	"cityId"     TEXT,
	"isApproved" BOOLEAN NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_location_name ON "Location"(name);
`

// Migrate creates the Location table if it does not exist.
func (s *SQLite) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

// Insert adds a location row. An empty ID is replaced with a new UUID.
func (s *SQLite) Insert(ctx context.Context, loc model.Location, approved bool) (string, error) {
	if loc.ID == "" {
		loc.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO "Location" (id, name, description, hours, address, "cityId", "isApproved")
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		loc.ID, loc.Name, loc.Description, loc.Hours, loc.Address, loc.CityID, approved,
	)
	if err != nil {
		return "", eris.Wrapf(err, "sqlite: insert location %s", loc.ID)
	}
	return loc.ID, nil
}

// Locations returns every approved location ordered by name.
func (s *SQLite) Locations(ctx context.Context) ([]model.Location, error) {
	rows, err := s.db.QueryContext(ctx, approvedLocationsQuery)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query locations")
	}
	defer rows.Close() //nolint:errcheck

	var out []model.Location
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan location")
		}
		if loc.Name == "" {
			zap.L().Warn("sqlite: skipping location without name", zap.String("location_id", loc.ID))
			continue
		}
		out = append(out, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate locations")
	}
	return out, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
