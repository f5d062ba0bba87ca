package services

import (
	"context"
	"errors"
	"sync"

	"ngo-directory-service/internal/domain"
)

var (
	saoPaulo = domain.Coordinate{Lat: -23.5505, Lng: -46.6333}
	rio      = domain.Coordinate{Lat: -22.9068, Lng: -43.1729}
	campinas = domain.Coordinate{Lat: -22.9056, Lng: -47.0608}
	santos   = domain.Coordinate{Lat: -23.9608, Lng: -46.3336}
)

type listReply struct {
	records []domain.NgoRecord
	err     error
}

type pendingList struct {
	reply chan listReply
}

// gatedRegistry parks every ListNgos call until the test replies to it.
type gatedRegistry struct {
	calls chan *pendingList
}

func newGatedRegistry() *gatedRegistry {
	return &gatedRegistry{calls: make(chan *pendingList)}
}

func (g *gatedRegistry) ListNgos(ctx context.Context) ([]domain.NgoRecord, error) {
	p := &pendingList{reply: make(chan listReply, 1)}
	g.calls <- p
	r := <-p.reply
	return r.records, r.err
}

func (g *gatedRegistry) GetNgo(ctx context.Context, id string) (domain.NgoRecord, error) {
	return domain.NgoRecord{}, errors.New("not implemented")
}

func (g *gatedRegistry) SubmitNgo(ctx context.Context, ngo domain.NewNgo) (domain.NgoRecord, error) {
	return domain.NgoRecord{}, errors.New("not implemented")
}

// fakeRegistry is an in-memory registry that counts submissions.
type fakeRegistry struct {
	mu        sync.Mutex
	records   []domain.NgoRecord
	submitted []domain.NewNgo
	submitErr error
	listErr   error
}

func (f *fakeRegistry) ListNgos(ctx context.Context) ([]domain.NgoRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]domain.NgoRecord(nil), f.records...), nil
}

func (f *fakeRegistry) GetNgo(ctx context.Context, id string) (domain.NgoRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.ID == id {
			return r, nil
		}
	}
	return domain.NgoRecord{}, domain.ErrNgoNotFound
}

func (f *fakeRegistry) SubmitNgo(ctx context.Context, ngo domain.NewNgo) (domain.NgoRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.submitted = append(f.submitted, ngo)
	if f.submitErr != nil {
		return domain.NgoRecord{}, f.submitErr
	}

	rec := domain.NgoRecord{
		ID:        "srv-" + string(rune('a'+len(f.records))),
		Name:      ngo.Name,
		Address:   ngo.Address,
		Objective: ngo.Objective,
		Needs:     ngo.Needs,
		Location:  ngo.Location,
	}
	f.records = append(f.records, rec)
	return rec, nil
}

func (f *fakeRegistry) submissions() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.submitted)
}

type geocodeReply struct {
	addr string
	err  error
}

type pendingGeocode struct {
	coord domain.Coordinate
	reply chan geocodeReply
}

// gatedGeocoder parks every lookup until the test replies to it.
type gatedGeocoder struct {
	calls chan *pendingGeocode
}

func newGatedGeocoder() *gatedGeocoder {
	return &gatedGeocoder{calls: make(chan *pendingGeocode)}
}

func (g *gatedGeocoder) ReverseGeocode(ctx context.Context, c domain.Coordinate) (string, error) {
	p := &pendingGeocode{coord: c, reply: make(chan geocodeReply, 1)}
	g.calls <- p
	r := <-p.reply
	return r.addr, r.err
}

type fixedSensor struct {
	pos domain.Coordinate
	err error
}

func (s fixedSensor) CurrentPosition(ctx context.Context) (domain.Coordinate, error) {
	return s.pos, s.err
}

// heldRegistry blocks SubmitNgo until release is closed.
type heldRegistry struct {
	fakeRegistry
	entered chan struct{}
	release chan struct{}
}

func newHeldRegistry() *heldRegistry {
	return &heldRegistry{entered: make(chan struct{}, 1), release: make(chan struct{})}
}

func (h *heldRegistry) SubmitNgo(ctx context.Context, ngo domain.NewNgo) (domain.NgoRecord, error) {
	h.entered <- struct{}{}
	<-h.release
	return h.fakeRegistry.SubmitNgo(ctx, ngo)
}
