package dto

import (
	"errors"
	"net/http"
	"strings"

	"ngo-directory-service/internal/domain"
)

// CreateNgoRequest is the body of POST /ngos. Coordinates are pointers so a
// missing field is told apart from 0.
type CreateNgoRequest struct {
	Name      string   `json:"name" validate:"required,max=200"`
	Address   string   `json:"address" validate:"max=500"`
	Objective string   `json:"objective" validate:"max=2000"`
	Needs     string   `json:"needs" validate:"max=2000"`
	Latitude  *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
}

// Bind normalizes the request after decoding.
func (c *CreateNgoRequest) Bind(r *http.Request) error {
	if c == nil {
		return errors.New("missing request body")
	}
	c.Name = strings.TrimSpace(c.Name)
	c.Address = strings.TrimSpace(c.Address)
	c.Objective = strings.TrimSpace(c.Objective)
	c.Needs = strings.TrimSpace(c.Needs)
	return nil
}

func (c *CreateNgoRequest) ToNewNgo() domain.NewNgo {
	n := domain.NewNgo{
		Name:      c.Name,
		Address:   c.Address,
		Objective: c.Objective,
		Needs:     c.Needs,
	}
	if c.Latitude != nil && c.Longitude != nil {
		n.Location = domain.Coordinate{Lat: *c.Latitude, Lng: *c.Longitude}
	}
	return n
}

type NgoResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Objective string  `json:"objective"`
	Needs     string  `json:"needs"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func NewNgoResponse(n domain.NgoRecord) NgoResponse {
	return NgoResponse{
		ID:        n.ID,
		Name:      n.Name,
		Address:   n.Address,
		Objective: n.Objective,
		Needs:     n.Needs,
		Latitude:  n.Location.Lat,
		Longitude: n.Location.Lng,
	}
}

func NewNgoListResponse(ngos []domain.NgoRecord) []NgoResponse {
	res := make([]NgoResponse, 0, len(ngos))
	for _, n := range ngos {
		res = append(res, NewNgoResponse(n))
	}
	return res
}
