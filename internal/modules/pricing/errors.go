package pricing

import "errors"

var (
	ErrUnknownPack     = errors.New("unknown pack")
	ErrInvalidInterval = errors.New("invalid rental interval")
)
