package reservation

import "errors"

var (
	ErrValidation   = errors.New("validation error")
	ErrUnknownPack  = errors.New("unknown pack")
	ErrSlotTaken    = errors.New("time slot taken")
	ErrNotFound     = errors.New("reservation not found")
	ErrInvalidState = errors.New("invalid reservation state")
)
