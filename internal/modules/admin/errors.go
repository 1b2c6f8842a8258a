package admin

import "errors"

var (
	ErrLoginDisabled = errors.New("admin login disabled")
	ErrInvalidToken  = errors.New("invalid bootstrap token")
	ErrValidation    = errors.New("validation error")
	ErrDuplicatePack = errors.New("pack already exists")
)
