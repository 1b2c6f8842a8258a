package hold

import "errors"

var (
	ErrValidation  = errors.New("validation error")
	ErrUnknownPack = errors.New("unknown pack")
	ErrSlotTaken   = errors.New("time slot taken")
	ErrNotFound    = errors.New("hold not found")
)
