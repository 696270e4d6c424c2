package services

import "errors"

// Error taxonomy shared by every service. Handlers map these onto HTTP
// statuses; services wrap them with fmt.Errorf("%w: ...") for detail.
var (
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrConflict        = errors.New("conflict")
	ErrUnauthenticated = errors.New("unauthenticated")
)
