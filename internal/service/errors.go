package service

import "errors"

// Rule failures surfaced to the handler boundary. None are fatal; the
// handlers translate them into user-visible responses.
var (
	ErrNotFound            = errors.New("account not found")
	ErrBanned              = errors.New("account banned")
	ErrWrongPassword       = errors.New("wrong password")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrNameChangeLimit     = errors.New("monthly name change limit reached")
	ErrInvalidInput        = errors.New("invalid input")
	ErrReservedEmail       = errors.New("reserved identifier")
	ErrAlreadyExists       = errors.New("identifier already registered")
	ErrNoPermission        = errors.New("no permission")
)
