package domain

import "errors"

// Domain errors as sentinel values
var (
	ErrItemNotFound      = errors.New("item not found")
	ErrItemAlreadyExists = errors.New("item already exists")
	ErrUnknownEventType  = errors.New("unknown item event type")
)
