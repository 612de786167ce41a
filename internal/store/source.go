// Package store reads location records from Postgres, SQLite, or flat files.
// Sources are read-only; verdicts are never written back.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/location-screen/internal/config"
	"github.com/sells-group/location-screen/internal/model"
)

// Source yields the locations to screen, ordered by name unless the source
// says otherwise.
type Source interface {
	Locations(ctx context.Context) ([]model.Location, error)
	Close() error
}

// approvedLocationsQuery mirrors the web app's schema: Prisma's "Location"
// model with camel-cased, quoted columns.
const approvedLocationsQuery = `SELECT id, name, description, hours, COALESCE(address, ''), COALESCE("cityId", '')
FROM "Location"
WHERE "isApproved" = true
ORDER BY name`

// Open builds the Source selected by cfg.Driver.
func Open(ctx context.Context, cfg config.SourceConfig) (Source, error) {
	switch cfg.Driver {
	case "postgres":
		pg, err := NewPostgres(ctx, cfg.DatabaseURL, &PoolConfig{MaxConns: cfg.MaxConns})
		if err != nil {
			return nil, err
		}
		return pg, nil
	case "sqlite":
		lite, err := NewSQLite(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return lite, nil
	case "csv":
		return &CSVFile{Path: cfg.Path, KeepOrder: cfg.KeepOrder}, nil
	case "xlsx":
		return &XLSXFile{Path: cfg.Path, KeepOrder: cfg.KeepOrder}, nil
	default:
		return nil, eris.Errorf("store: unsupported source driver: %s", cfg.Driver)
	}
}

// scanner is satisfied by pgx.Rows and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanLocation(row scanner) (model.Location, error) {
	var loc model.Location
	err := row.Scan(&loc.ID, &loc.Name, &loc.Description, &loc.Hours, &loc.Address, &loc.CityID)
	return loc, err
}
