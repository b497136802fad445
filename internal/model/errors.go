package model

import "errors"

var (
	ErrProfileNotFound     = errors.New("profile not found")
	ErrProfileExists       = errors.New("profile already exists")
	ErrLastProfile         = errors.New("cannot delete last profile")
	ErrInvalidProfileOrder = errors.New("invalid profile order")
	ErrBookmarkNotFound    = errors.New("bookmark not found")
	ErrVersionConflict     = errors.New("profile was modified elsewhere")
	ErrEmptyName           = errors.New("name must not be empty")
	ErrIndexOutOfRange     = errors.New("position out of range")
)
