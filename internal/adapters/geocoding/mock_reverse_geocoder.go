package geocoding

import (
	"context"
	"sync"

	"ngo-directory-service/internal/domain"
)

// MockReverseGeocoder answers from a fixed table. Coordinates missing from
// the table fail with domain.ErrNoAddressFound; Err, when set, is returned
// for every call.
type MockReverseGeocoder struct {
	mu        sync.Mutex
	addresses map[domain.Coordinate]string
	calls     int

	Err error
}

func NewMockReverseGeocoder(addresses map[domain.Coordinate]string) *MockReverseGeocoder {
	m := make(map[domain.Coordinate]string, len(addresses))
	for k, v := range addresses {
		m[k] = v
	}
	return &MockReverseGeocoder{addresses: m}
}

func (m *MockReverseGeocoder) ReverseGeocode(ctx context.Context, c domain.Coordinate) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.Err != nil {
		return "", m.Err
	}

	addr, ok := m.addresses[c]
	if !ok {
		return "", noAddress(c)
	}
	return addr, nil
}

// Calls returns how many lookups reached the mock.
func (m *MockReverseGeocoder) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
