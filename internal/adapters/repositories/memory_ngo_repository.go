package repositories

import (
	"context"
	"fmt"
	"sync"

	"ngo-directory-service/internal/domain"
)

// MemoryNgoRepository keeps NGOs in process memory, in insertion order.
// Used when no DATABASE_URL is configured and in tests.
type MemoryNgoRepository struct {
	mu   sync.RWMutex
	ngos []domain.NgoRecord
	byID map[string]int
}

func NewMemoryNgoRepository(seed ...domain.NgoRecord) *MemoryNgoRepository {
	r := &MemoryNgoRepository{byID: make(map[string]int, len(seed))}
	for _, n := range seed {
		_ = r.CreateNgo(context.Background(), n)
	}
	return r
}

func (r *MemoryNgoRepository) ListNgos(ctx context.Context) ([]domain.NgoRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append(make([]domain.NgoRecord, 0, len(r.ngos)), r.ngos...), nil
}

func (r *MemoryNgoRepository) GetNgo(ctx context.Context, id string) (domain.NgoRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.byID[id]
	if !ok {
		return domain.NgoRecord{}, domain.WrapErrorf(nil, domain.ErrNgoNotFound, "ngo %q not found", id)
	}
	return r.ngos[i], nil
}

func (r *MemoryNgoRepository) CreateNgo(ctx context.Context, n domain.NgoRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.byID[n.ID]; dup {
		return fmt.Errorf("create ngo id=%s: duplicate id", n.ID)
	}
	r.byID[n.ID] = len(r.ngos)
	r.ngos = append(r.ngos, n)
	return nil
}
