package ports

import (
	"context"
	"ngo-directory-service/internal/domain"
)

// Single-shot device position. Refusal is reported as domain.ErrPermissionDenied.
type LocationSensor interface {
	CurrentPosition(ctx context.Context) (domain.Coordinate, error)
}
