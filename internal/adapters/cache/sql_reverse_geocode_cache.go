package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"ngo-directory-service/internal/domain"
	"ngo-directory-service/internal/platform/obs"
)

// SQLReverseGeocodeCache is a Postgres-backed cache mapping coordinates to addresses.
type SQLReverseGeocodeCache struct {
	DB *sql.DB
}

func NewSQLReverseGeocodeCache(db *sql.DB) *SQLReverseGeocodeCache {
	return &SQLReverseGeocodeCache{DB: db}
}

// Fetch the cached address for the coordinate.
func (s *SQLReverseGeocodeCache) Get(ctx context.Context, c domain.Coordinate) (_ string, _ bool, err error) {
	defer obs.Time(ctx, "geocode.cache.Get")(&err)

	if s.DB == nil {
		return "", false, errors.New("geocode cache: db is nil")
	}

	q := `
	SELECT address
    FROM reverse_geocode_cache
    WHERE coord_key = $1;
	`

	var addr string
	err = s.DB.QueryRowContext(ctx, q, Key(c)).Scan(&addr)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get geocode cache: query reverse_geocode_cache table: %w", err)
	}

	return addr, true, nil
}

// Store a coordinate -> address mapping in the cache.
func (s *SQLReverseGeocodeCache) Put(ctx context.Context, c domain.Coordinate, address string) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	if strings.TrimSpace(address) == "" {
		return fmt.Errorf("insert geocode cache: empty address for %s", c)
	}

	_, err := s.DB.ExecContext(ctx, `
	INSERT INTO reverse_geocode_cache (coord_key, address)
    VALUES ($1, $2)
	ON CONFLICT (coord_key) DO UPDATE
	SET address = EXCLUDED.address,
		updated_at = now();
	`, Key(c), address)
	if err != nil {
		return fmt.Errorf("insert geocode cache coord=%q: %w", Key(c), err)
	}

	return nil
}
