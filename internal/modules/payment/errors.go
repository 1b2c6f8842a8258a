package payment

import "errors"

var (
	ErrInvalidSignature    = errors.New("invalid signature")
	ErrValidation          = errors.New("validation error")
	ErrUnknownKind         = errors.New("unknown payment kind")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrInvalidState        = errors.New("invalid reservation state")
)
