package ports

import (
	"context"
	"ngo-directory-service/internal/domain"
)

// Port: the external NGO registry as seen by volunteers and organizers.
type NgoRegistry interface {
	// Fetch the complete current snapshot. An empty slice is not an error.
	ListNgos(ctx context.Context) ([]domain.NgoRecord, error)
	// Fetch one NGO by its registry-assigned id.
	GetNgo(ctx context.Context, id string) (domain.NgoRecord, error)
	// Create an NGO and return it with the id the registry assigned.
	SubmitNgo(ctx context.Context, ngo domain.NewNgo) (domain.NgoRecord, error)
}
