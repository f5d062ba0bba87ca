package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"ngo-directory-service/internal/domain"
)

// Initialize the Postgres database schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createNgosQuery := `
	CREATE TABLE IF NOT EXISTS ngos (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		objective TEXT NOT NULL DEFAULT '',
		needs TEXT NOT NULL DEFAULT '',
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createReverseGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS reverse_geocode_cache (
		coord_key TEXT PRIMARY KEY,
		address TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_ngos_created_at_id
	ON ngos(created_at, id);
	`

	statements := []string{
		createNgosQuery,
		createReverseGeocodeCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type NgoSeed struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Objective string  `json:"objective"`
	Needs     string  `json:"needs"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LoadSeed reads and validates NGO seed data from a JSON file.
func LoadSeed(jsonPath string) ([]domain.NgoRecord, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("seed ngos: read %q: %w", jsonPath, err)
	}

	var data []NgoSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("seed ngos: parse json: %w", err)
	}

	rows := make([]domain.NgoRecord, 0, len(data))
	seen := make(map[string]struct{}, len(data))
	for i, item := range data {
		id := strings.TrimSpace(item.ID)
		if id == "" {
			return nil, fmt.Errorf("seed ngos: item at index %d: id cannot be empty", i+1)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("seed ngos: item at index %d: duplicate id %q", i+1, id)
		}
		seen[id] = struct{}{}

		n := domain.NewNgo{
			Name:      strings.TrimSpace(item.Name),
			Address:   strings.TrimSpace(item.Address),
			Objective: strings.TrimSpace(item.Objective),
			Needs:     strings.TrimSpace(item.Needs),
			Location:  domain.Coordinate{Lat: item.Latitude, Lng: item.Longitude},
		}
		if err := n.Validate(); err != nil {
			return nil, fmt.Errorf("seed ngos: item %q at index %d: %w", id, i+1, err)
		}

		rows = append(rows, domain.NgoRecord{
			ID:        id,
			Name:      n.Name,
			Address:   n.Address,
			Objective: n.Objective,
			Needs:     n.Needs,
			Location:  n.Location,
		})
	}

	return rows, nil
}

// Populate the database with NGO data from a JSON file.
// Rows keep their seed order through staggered created_at values.
func SeedFromJSON(ctx context.Context, db *sql.DB, jsonPath string) error {
	rows, err := LoadSeed(jsonPath)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed ngos: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO ngos (
		id,
		name,
		address,
		objective,
		needs,
		latitude,
		longitude,
		created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (id) DO UPDATE
	SET name = EXCLUDED.name,
		address = EXCLUDED.address,
		objective = EXCLUDED.objective,
		needs = EXCLUDED.needs,
		latitude = EXCLUDED.latitude,
		longitude = EXCLUDED.longitude;
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("seed ngos: prepare insert: %w", err)
	}
	defer stmt.Close()

	base := time.Now().UTC().Add(-time.Duration(len(rows)) * time.Second)
	for i, n := range rows {
		createdAt := base.Add(time.Duration(i) * time.Second)
		if _, err := stmt.ExecContext(ctx,
			n.ID, n.Name, n.Address, n.Objective, n.Needs,
			n.Location.Lat, n.Location.Lng, createdAt,
		); err != nil {
			return fmt.Errorf("seed ngos: insert id=%s: %w", n.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed ngos: commit tx: %w", err)
	}

	return nil
}
