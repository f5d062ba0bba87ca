package domain

import (
	"strconv"
	"strings"
)

// RegistrationDraft is the in-progress state of a new NGO registration.
//
// A location can come from a map selection (Selected) or from the raw text
// coordinate fields. Text fields win when present; selecting on the map
// rewrites them.
type RegistrationDraft struct {
	Name          string
	Address       string
	Objective     string
	Needs         string
	LatitudeText  string
	LongitudeText string
	Selected      *Coordinate
}

// IsEmpty reports whether no field has been filled in.
func (d RegistrationDraft) IsEmpty() bool {
	return d.Name == "" &&
		d.Address == "" &&
		d.Objective == "" &&
		d.Needs == "" &&
		d.LatitudeText == "" &&
		d.LongitudeText == "" &&
		d.Selected == nil
}

// HasLocation reports whether a location has been chosen, without validating it.
func (d RegistrationDraft) HasLocation() bool {
	return d.Selected != nil ||
		(strings.TrimSpace(d.LatitudeText) != "" && strings.TrimSpace(d.LongitudeText) != "")
}

// Select records a map selection and mirrors it into the text fields.
func (d *RegistrationDraft) Select(c Coordinate) {
	d.Selected = &c
	d.LatitudeText = strconv.FormatFloat(c.Lat, 'f', -1, 64)
	d.LongitudeText = strconv.FormatFloat(c.Lng, 'f', -1, 64)
}

// Reset clears every field, marker included.
func (d *RegistrationDraft) Reset() {
	*d = RegistrationDraft{}
}

// Location parses the draft's coordinate into a validated Coordinate.
func (d RegistrationDraft) Location() (Coordinate, error) {
	latText := strings.TrimSpace(d.LatitudeText)
	lngText := strings.TrimSpace(d.LongitudeText)

	if latText == "" && lngText == "" {
		if d.Selected == nil {
			return Coordinate{}, WrapErrorf(nil, ErrValidationRejected, "location is required")
		}
		if err := d.Selected.Validate(); err != nil {
			return Coordinate{}, err
		}
		return *d.Selected, nil
	}

	lat, err := strconv.ParseFloat(latText, 64)
	if err != nil {
		return Coordinate{}, WrapErrorf(err, ErrValidationRejected, "latitude %q is not a number", d.LatitudeText)
	}
	lng, err := strconv.ParseFloat(lngText, 64)
	if err != nil {
		return Coordinate{}, WrapErrorf(err, ErrValidationRejected, "longitude %q is not a number", d.LongitudeText)
	}

	return NewCoordinate(lat, lng)
}

// Submission converts the draft into a creation request, failing locally
// with ValidationRejected before anything reaches the network.
func (d RegistrationDraft) Submission() (NewNgo, error) {
	loc, err := d.Location()
	if err != nil {
		return NewNgo{}, err
	}

	n := NewNgo{
		Name:      strings.TrimSpace(d.Name),
		Address:   strings.TrimSpace(d.Address),
		Objective: strings.TrimSpace(d.Objective),
		Needs:     strings.TrimSpace(d.Needs),
		Location:  loc,
	}
	if err := n.Validate(); err != nil {
		return NewNgo{}, err
	}

	return n, nil
}
