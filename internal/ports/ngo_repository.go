package ports

import (
	"context"
	"ngo-directory-service/internal/domain"
)

// Port: storage behind the registry HTTP API.
type NgoRepository interface {
	ListNgos(ctx context.Context) ([]domain.NgoRecord, error)
	// Return domain.ErrNgoNotFound when no row matches.
	GetNgo(ctx context.Context, id string) (domain.NgoRecord, error)
	CreateNgo(ctx context.Context, ngo domain.NgoRecord) error
}
