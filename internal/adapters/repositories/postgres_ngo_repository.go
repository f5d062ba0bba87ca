package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ngo-directory-service/internal/domain"
	"ngo-directory-service/internal/platform/obs"
)

// Postgres-backed implementation of the NgoRepository port.
type PostgresNgoRepository struct{ DB *sql.DB }

func NewPostgresNgoRepository(db *sql.DB) *PostgresNgoRepository {
	return &PostgresNgoRepository{DB: db}
}

// Return all NGOs in insertion order.
func (s *PostgresNgoRepository) ListNgos(ctx context.Context) (_ []domain.NgoRecord, err error) {
	defer obs.Time(ctx, "repo.ListNgos")(&err)

	if s.DB == nil {
		return nil, errors.New("postgres ngo repository: DB is nil")
	}

	query := `
	SELECT
		id,
		name,
		address,
		objective,
		needs,
		latitude,
		longitude
	FROM ngos
	ORDER BY created_at, id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list ngos: query ngos table: %w", err)
	}
	defer rows.Close()

	ngos := make([]domain.NgoRecord, 0, 64)
	for rows.Next() {
		n, err := scanNgo(rows)
		if err != nil {
			return nil, fmt.Errorf("list ngos: scan row: %w", err)
		}
		ngos = append(ngos, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list ngos: row iteration: %w", err)
	}

	return ngos, nil
}

func (s *PostgresNgoRepository) GetNgo(ctx context.Context, id string) (_ domain.NgoRecord, err error) {
	defer obs.Time(ctx, "repo.GetNgo")(&err)

	if s.DB == nil {
		return domain.NgoRecord{}, errors.New("postgres ngo repository: DB is nil")
	}

	query := `
	SELECT
		id,
		name,
		address,
		objective,
		needs,
		latitude,
		longitude
	FROM ngos
	WHERE id = $1;
	`
	n, err := scanNgo(s.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NgoRecord{}, domain.WrapErrorf(err, domain.ErrNgoNotFound, "ngo %q not found", id)
	}
	if err != nil {
		return domain.NgoRecord{}, fmt.Errorf("get ngo id=%s: %w", id, err)
	}

	return n, nil
}

func (s *PostgresNgoRepository) CreateNgo(ctx context.Context, n domain.NgoRecord) (err error) {
	defer obs.Time(ctx, "repo.CreateNgo")(&err)

	if s.DB == nil {
		return errors.New("postgres ngo repository: DB is nil")
	}

	query := `
	INSERT INTO ngos (
		id,
		name,
		address,
		objective,
		needs,
		latitude,
		longitude
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	if _, err := s.DB.ExecContext(ctx, query,
		n.ID, n.Name, n.Address, n.Objective, n.Needs,
		n.Location.Lat, n.Location.Lng,
	); err != nil {
		return fmt.Errorf("create ngo id=%s: %w", n.ID, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNgo(row rowScanner) (domain.NgoRecord, error) {
	var n domain.NgoRecord
	err := row.Scan(
		&n.ID,
		&n.Name,
		&n.Address,
		&n.Objective,
		&n.Needs,
		&n.Location.Lat,
		&n.Location.Lng,
	)
	return n, err
}
