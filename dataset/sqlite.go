// ABOUTME: SQLite source and export for launch datasets using a single "launches" table.
// ABOUTME: Extra pass-through columns are stored as a JSON object so a round trip is lossless.
package dataset

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const launchesSchema = `
	CREATE TABLE IF NOT EXISTS launches (
		row_id INTEGER PRIMARY KEY,
		launch_site TEXT NOT NULL,
		payload_mass_kg REAL,
		class INTEGER NOT NULL CHECK (class IN (0, 1)),
		booster_version_category TEXT NOT NULL,
		extra TEXT
	);
	CREATE TABLE IF NOT EXISTS launches_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
`

// LoadSQLite reads the launches table from the SQLite database at path.
func LoadSQLite(ctx context.Context, path string) (*Dataset, error) {
	source := "sqlite://" + path

	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, loadErr(source, "open sqlite", err)
	}
	defer func() { _ = db.Close() }()

	var extraNames []string
	var rawNames string
	err = db.QueryRowContext(ctx, `SELECT value FROM launches_meta WHERE key = 'extra_columns'`).Scan(&rawNames)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, loadErr(source, "read metadata", err)
	default:
		if err := json.Unmarshal([]byte(rawNames), &extraNames); err != nil {
			return nil, loadErr(source, "decode extra column names", err)
		}
	}

	rows, err := db.QueryContext(ctx, `
		SELECT launch_site, payload_mass_kg, class, booster_version_category, extra
		FROM launches ORDER BY row_id`)
	if err != nil {
		return nil, loadErr(source, "query launches", err)
	}
	defer rows.Close()

	var records []LaunchRecord
	for rows.Next() {
		var (
			rec     LaunchRecord
			payload sql.NullFloat64
			extra   sql.NullString
		)
		if err := rows.Scan(&rec.LaunchSite, &payload, &rec.Class, &rec.BoosterVersionCategory, &extra); err != nil {
			return nil, loadErr(source, "scan launch row", err)
		}
		if rec.Class != 0 && rec.Class != 1 {
			return nil, loadErr(source, "", fmt.Errorf("%w: class %d", ErrInvalidValue, rec.Class))
		}
		rec.PayloadMassKg, rec.HasPayload = payload.Float64, payload.Valid
		if extra.Valid && extra.String != "" {
			if err := json.Unmarshal([]byte(extra.String), &rec.Extra); err != nil {
				return nil, loadErr(source, "decode extra columns", err)
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, loadErr(source, "iterate launches", err)
	}

	return New(source, records, extraNames), nil
}

// WriteSQLite exports d into a launches table at path, replacing any rows
// already there.
func WriteSQLite(ctx context.Context, d *Dataset, path string) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer func() { _ = db.Close() }()

	if _, err := db.ExecContext(ctx, launchesSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin export: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM launches`); err != nil {
		return fmt.Errorf("clear launches: %w", err)
	}

	names, err := json.Marshal(d.ExtraColumns())
	if err != nil {
		return fmt.Errorf("encode extra column names: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO launches_meta (key, value) VALUES ('extra_columns', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, string(names)); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO launches (row_id, launch_site, payload_mass_kg, class, booster_version_category, extra)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range d.records {
		var payload sql.NullFloat64
		if r.HasPayload {
			payload = sql.NullFloat64{Float64: r.PayloadMassKg, Valid: true}
		}
		var extra sql.NullString
		if len(r.Extra) > 0 {
			b, err := json.Marshal(r.Extra)
			if err != nil {
				return fmt.Errorf("encode extra columns for row %d: %w", i, err)
			}
			extra = sql.NullString{String: string(b), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, i+1, r.LaunchSite, payload, r.Class, r.BoosterVersionCategory, extra); err != nil {
			return fmt.Errorf("insert row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit export: %w", err)
	}
	return nil
}
