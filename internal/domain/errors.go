package domain

import (
	"errors"
	"fmt"
)

// Error carries one of the error kinds below together with a user-facing
// message. The wrapped cause keeps transport detail for logs only.
type Error struct {
	orig error
	msg  string
	code error
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.orig
}

// Is matches the kind, so errors.Is(err, ErrRegistryUnavailable) works
// regardless of the underlying cause.
func (e *Error) Is(target error) bool {
	return e.code == target
}

func (e *Error) Code() error {
	return e.code
}

func WrapErrorf(orig error, code error, format string, a ...any) error {
	return &Error{
		code: code,
		orig: orig,
		msg:  fmt.Sprintf(format, a...),
	}
}

var (
	// ErrPermissionDenied is returned when device location access is refused.
	ErrPermissionDenied = errors.New("location permission denied")
	// ErrNoReference means no reference location is available to rank against.
	ErrNoReference = errors.New("reference location unavailable")
	// ErrGeocodingUnavailable covers network and provider failures while resolving an address.
	ErrGeocodingUnavailable = errors.New("geocoding unavailable")
	// ErrNoAddressFound means the provider answered with zero results.
	ErrNoAddressFound = errors.New("no address found")
	// ErrRegistryUnavailable covers transport-level registry failures.
	ErrRegistryUnavailable = errors.New("registry unavailable")
	// ErrValidationRejected means the input was rejected locally or by the registry.
	ErrValidationRejected = errors.New("validation rejected")
	// ErrNgoNotFound means the registry has no NGO with the requested id.
	ErrNgoNotFound = errors.New("ngo not found")
)

// Kind returns the sentinel kind of err, or nil when err is not classified.
func Kind(err error) error {
	for _, k := range []error{
		ErrPermissionDenied,
		ErrNoReference,
		ErrGeocodingUnavailable,
		ErrNoAddressFound,
		ErrRegistryUnavailable,
		ErrValidationRejected,
		ErrNgoNotFound,
	} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
