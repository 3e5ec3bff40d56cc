package model

import "errors"

var (
	// ErrInvalidInput marks malformed items, stats, effects or builds.
	ErrInvalidInput = errors.New("invalid input")
	// ErrItemNotFound is returned when an inventory lookup misses.
	ErrItemNotFound = errors.New("item not found")
	// ErrDuplicateItem is returned when an item name is already taken within its category.
	ErrDuplicateItem = errors.New("item already exists")
)
