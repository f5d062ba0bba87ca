package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ngo-directory-service/internal/domain"
)

func TestResolveReference(t *testing.T) {
	ctx := context.Background()

	t.Run("uses the device fix", func(t *testing.T) {
		ref, err := ResolveReference(ctx, fixedSensor{pos: rio}, saoPaulo)
		require.NoError(t, err)
		assert.Equal(t, Reference{Coordinate: rio}, ref)
	})

	t.Run("permission denied falls back to default region", func(t *testing.T) {
		ref, err := ResolveReference(ctx, fixedSensor{err: domain.ErrPermissionDenied}, saoPaulo)
		require.NoError(t, err)
		assert.True(t, ref.Fallback)
		assert.Equal(t, saoPaulo, ref.Coordinate)
	})

	t.Run("sensor failure means no reference", func(t *testing.T) {
		_, err := ResolveReference(ctx, fixedSensor{err: errors.New("gps timeout")}, saoPaulo)
		assert.ErrorIs(t, err, domain.ErrNoReference)
	})

	t.Run("invalid fix means no reference", func(t *testing.T) {
		_, err := ResolveReference(ctx, fixedSensor{pos: domain.Coordinate{Lat: 120}}, saoPaulo)
		assert.ErrorIs(t, err, domain.ErrNoReference)
	})

	t.Run("no sensor", func(t *testing.T) {
		_, err := ResolveReference(ctx, nil, saoPaulo)
		assert.ErrorIs(t, err, domain.ErrNoReference)
	})
}
