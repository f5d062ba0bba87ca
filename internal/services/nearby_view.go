package services

import (
	"context"
	"errors"
	"slices"
	"sync"

	"ngo-directory-service/internal/domain"
	"ngo-directory-service/internal/ports"
)

// ErrDiscarded is returned when an async result arrived after it was
// superseded by a newer request or after the owner was closed.
var ErrDiscarded = errors.New("result discarded")

// NearbyView owns the "NGOs near me" state of one consumer: the reference
// location, the latest registry snapshot, and the ranking derived from both.
//
// Every fetch takes a monotonically increasing token; only the response for
// the most recently issued token is applied. After Close, no completion
// mutates the view.
type NearbyView struct {
	registry ports.NgoRegistry

	mu        sync.Mutex
	reference *domain.Coordinate
	snapshot  []domain.NgoRecord
	loaded    bool
	ranked    []domain.RankedNgo
	seq       uint64
	closed    bool
	lastErr   error
}

func NewNearbyView(registry ports.NgoRegistry) *NearbyView {
	return &NearbyView{registry: registry}
}

// SetReference updates the reference and re-ranks the current snapshot.
func (v *NearbyView) SetReference(c domain.Coordinate) error {
	if err := c.Validate(); err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return ErrDiscarded
	}

	v.reference = &c
	v.rerankLocked()
	return nil
}

// Refresh fetches a new snapshot. The result is applied only if no newer
// Refresh was started meanwhile and the view is still open; otherwise
// ErrDiscarded is returned and the view is left untouched.
func (v *NearbyView) Refresh(ctx context.Context) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return ErrDiscarded
	}
	v.seq++
	token := v.seq
	v.mu.Unlock()

	records, err := v.registry.ListNgos(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed || token != v.seq {
		return ErrDiscarded
	}

	if err != nil {
		v.lastErr = err
		return err
	}

	v.snapshot = slices.Clone(records)
	v.loaded = true
	v.lastErr = nil
	v.rerankLocked()
	return nil
}

// Ranked returns the current ranking.
//
// Without a reference it fails with domain.ErrNoReference, which is distinct
// from a resolved reference with an empty registry (empty slice, nil error).
// Before the first successful fetch it returns the last fetch error, if any.
func (v *NearbyView) Ranked() ([]domain.RankedNgo, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.reference == nil {
		return nil, domain.WrapErrorf(nil, domain.ErrNoReference, "allow location access or choose a region to see nearby NGOs")
	}
	if !v.loaded {
		if v.lastErr != nil {
			return nil, v.lastErr
		}
		return []domain.RankedNgo{}, nil
	}

	return slices.Clone(v.ranked), nil
}

// Close detaches the view; in-flight fetches are discarded on arrival.
func (v *NearbyView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
}

func (v *NearbyView) rerankLocked() {
	if v.reference == nil || !v.loaded {
		v.ranked = nil
		return
	}
	v.ranked = Rank(*v.reference, v.snapshot)
}
