package registry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"ngo-directory-service/internal/domain"
)

// ngoID accepts both string and numeric ids, since JSON registries differ
// on which they emit. It is always handled as an opaque string.
type ngoID string

func (id *ngoID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ngoID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("ngo id: %w", err)
	}
	*id = ngoID(n.String())
	return nil
}

type ngoPayload struct {
	ID        ngoID    `json:"id,omitempty"`
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	Objective string   `json:"objective"`
	Needs     string   `json:"needs"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type createPayload struct {
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Objective string  `json:"objective"`
	Needs     string  `json:"needs"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func toCreatePayload(n domain.NewNgo) createPayload {
	return createPayload{
		Name:      n.Name,
		Address:   n.Address,
		Objective: n.Objective,
		Needs:     n.Needs,
		Latitude:  n.Location.Lat,
		Longitude: n.Location.Lng,
	}
}

func (p ngoPayload) toRecord() (domain.NgoRecord, error) {
	id := strings.TrimSpace(string(p.ID))
	if id == "" {
		return domain.NgoRecord{}, fmt.Errorf("record %q has no id", p.Name)
	}

	// A missing coordinate must not decode to 0,0.
	if p.Latitude == nil || p.Longitude == nil {
		return domain.NgoRecord{}, fmt.Errorf("record %s has no coordinates", id)
	}

	loc, err := domain.NewCoordinate(*p.Latitude, *p.Longitude)
	if err != nil {
		return domain.NgoRecord{}, fmt.Errorf("record %s: %w", id, err)
	}

	return domain.NgoRecord{
		ID:        id,
		Name:      p.Name,
		Address:   p.Address,
		Objective: p.Objective,
		Needs:     p.Needs,
		Location:  loc,
	}, nil
}
