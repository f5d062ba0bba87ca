package domain

import (
	"fmt"
	"strings"
)

// NgoRecord is a read-only copy of an NGO as held by the external registry.
// ID is assigned by the registry and never generated by a client.
type NgoRecord struct {
	ID        string
	Name      string
	Address   string
	Objective string
	Needs     string
	Location  Coordinate
}

// NewNgo is the payload of a creation request. It has no ID on purpose.
type NewNgo struct {
	Name      string
	Address   string
	Objective string
	Needs     string
	Location  Coordinate
}

// Validate applies the checks every creation request must pass,
// on the client before sending and on the registry before storing.
func (n NewNgo) Validate() error {
	if strings.TrimSpace(n.Name) == "" {
		return WrapErrorf(nil, ErrValidationRejected, "name is required")
	}
	return n.Location.Validate()
}

// RankedNgo is an NgoRecord annotated with its distance from one reference
// coordinate. It is valid only for the ranking call that produced it.
type RankedNgo struct {
	NgoRecord
	DistanceKm float64
}

// DistanceLabel formats the distance the way listings show it.
func (r RankedNgo) DistanceLabel() string {
	return fmt.Sprintf("%.2f km", r.DistanceKm)
}
