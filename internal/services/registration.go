package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"ngo-directory-service/internal/domain"
	"ngo-directory-service/internal/ports"
)

type RegistrationState int

const (
	StateEmpty RegistrationState = iota
	StateEditing
	StateLocationPending
	StateReady
	StateSubmitting
	StateSubmitted
	StateFailed
)

func (s RegistrationState) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateEditing:
		return "editing"
	case StateLocationPending:
		return "location_pending"
	case StateReady:
		return "ready"
	case StateSubmitting:
		return "submitting"
	case StateSubmitted:
		return "submitted"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// RegistrationPipeline drives a single RegistrationDraft from first keystroke
// to submission. It is the only writer of its draft.
//
// Map selections resolve the address through the geocoder; the resolved
// address overwrites whatever was typed. Each selection takes a token and only
// the latest selection's answer is applied. Submission clears the draft on
// success and preserves it untouched on failure.
type RegistrationPipeline struct {
	geocoder ports.ReverseGeocoder
	registry ports.NgoRegistry

	mu         sync.Mutex
	draft      domain.RegistrationDraft
	state      RegistrationState
	resolving  bool
	resolveSeq uint64
	closed     bool
	lastErr    error
}

func NewRegistrationPipeline(geocoder ports.ReverseGeocoder, registry ports.NgoRegistry) *RegistrationPipeline {
	return &RegistrationPipeline{geocoder: geocoder, registry: registry}
}

// Draft returns a copy of the current draft.
func (p *RegistrationPipeline) Draft() domain.RegistrationDraft {
	p.mu.Lock()
	defer p.mu.Unlock()

	d := p.draft
	if d.Selected != nil {
		sel := *d.Selected
		d.Selected = &sel
	}
	return d
}

func (p *RegistrationPipeline) State() RegistrationState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// LastError is the error of the last failed submission, cleared by the next edit.
func (p *RegistrationPipeline) LastError() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

func (p *RegistrationPipeline) SetName(v string) error {
	return p.edit(func(d *domain.RegistrationDraft) { d.Name = v })
}

func (p *RegistrationPipeline) SetAddress(v string) error {
	return p.edit(func(d *domain.RegistrationDraft) { d.Address = v })
}

func (p *RegistrationPipeline) SetObjective(v string) error {
	return p.edit(func(d *domain.RegistrationDraft) { d.Objective = v })
}

func (p *RegistrationPipeline) SetNeeds(v string) error {
	return p.edit(func(d *domain.RegistrationDraft) { d.Needs = v })
}

// SetCoordinatesText stores raw typed coordinates. They are parsed on Submit.
func (p *RegistrationPipeline) SetCoordinatesText(lat, lng string) error {
	return p.edit(func(d *domain.RegistrationDraft) {
		d.LatitudeText = lat
		d.LongitudeText = lng
	})
}

// ErrSubmitting is returned by edits, selections and submits while a
// submission is in flight.
var ErrSubmitting = errors.New("submission in progress")

func (p *RegistrationPipeline) edit(fn func(d *domain.RegistrationDraft)) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrDiscarded
	}
	if p.state == StateSubmitting {
		return ErrSubmitting
	}

	fn(&p.draft)
	p.lastErr = nil
	p.recomputeLocked()
	return nil
}

// SelectLocation records a map selection and resolves its address.
//
// On success the address field is overwritten and returned. NoAddressFound
// and GeocodingUnavailable leave the address untouched and are returned so the
// caller can notify the user; the draft still reaches Ready when a name is
// present. ErrDiscarded means a newer selection (or Close) superseded this one.
func (p *RegistrationPipeline) SelectLocation(ctx context.Context, c domain.Coordinate) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return "", ErrDiscarded
	}
	if p.state == StateSubmitting {
		p.mu.Unlock()
		return "", ErrSubmitting
	}
	p.draft.Select(c)
	p.lastErr = nil
	p.resolveSeq++
	token := p.resolveSeq
	p.resolving = true
	p.recomputeLocked()
	p.mu.Unlock()

	addr, err := p.geocoder.ReverseGeocode(ctx, c)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || token != p.resolveSeq {
		return "", ErrDiscarded
	}
	p.resolving = false

	if err != nil {
		if !errors.Is(err, domain.ErrNoAddressFound) && !errors.Is(err, domain.ErrGeocodingUnavailable) {
			err = domain.WrapErrorf(err, domain.ErrGeocodingUnavailable, "could not resolve an address, type it instead")
		}
		log.Debug().Err(err).Stringer("coord", c).Msg("address not resolved, keeping manual entry")
		p.recomputeLocked()
		return "", err
	}

	p.draft.Address = addr
	p.recomputeLocked()
	return addr, nil
}

// Submit sends the draft to the registry.
//
// Local validation runs first and fails with ValidationRejected without any
// network call. A registry failure moves to Failed and keeps the draft for a
// retry; success moves to Submitted and resets the draft.
func (p *RegistrationPipeline) Submit(ctx context.Context) (domain.NgoRecord, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return domain.NgoRecord{}, ErrDiscarded
	}
	if p.state == StateSubmitting {
		p.mu.Unlock()
		return domain.NgoRecord{}, ErrSubmitting
	}
	if p.resolving {
		p.mu.Unlock()
		return domain.NgoRecord{}, domain.WrapErrorf(nil, domain.ErrValidationRejected, "wait for the address to be resolved")
	}

	payload, err := p.draft.Submission()
	if err != nil {
		p.mu.Unlock()
		return domain.NgoRecord{}, err
	}

	p.state = StateSubmitting
	p.mu.Unlock()

	rec, err := p.registry.SubmitNgo(ctx, payload)

	p.mu.Lock()
	defer p.mu.Unlock()

	// A closed pipeline settles its state but hands nothing back.
	if p.closed {
		if err != nil {
			p.state = StateFailed
		} else {
			p.state = StateSubmitted
		}
		return domain.NgoRecord{}, ErrDiscarded
	}

	if err != nil {
		if !errors.Is(err, domain.ErrValidationRejected) && !errors.Is(err, domain.ErrRegistryUnavailable) {
			err = domain.WrapErrorf(err, domain.ErrRegistryUnavailable, "could not reach the registry, try again")
		}
		p.state = StateFailed
		p.lastErr = err
		return domain.NgoRecord{}, err
	}

	p.draft.Reset()
	// Late address lookups must not repopulate the cleared draft.
	p.resolveSeq++
	p.resolving = false
	p.lastErr = nil
	p.state = StateSubmitted
	return rec, nil
}

// Close discards every pending completion.
func (p *RegistrationPipeline) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
}

func (p *RegistrationPipeline) recomputeLocked() {
	switch {
	case p.resolving:
		p.state = StateLocationPending
	case p.draft.IsEmpty():
		p.state = StateEmpty
	case strings.TrimSpace(p.draft.Name) != "" && p.draft.HasLocation():
		p.state = StateReady
	default:
		p.state = StateEditing
	}
}
