package events

import "errors"

var (
	ErrEventNotFound = errors.New("events: event not found")
	ErrMissingFields = errors.New("events: title and start time are required")
	ErrInvalidWindow = errors.New("events: end time must not precede start time")
)
