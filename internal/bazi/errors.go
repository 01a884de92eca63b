package bazi

import "errors"

var (
	ErrInvalidDate        = errors.New("invalid calendar date")
	ErrInvalidHour        = errors.New("hour must be within 0-23")
	ErrCalendarResolution = errors.New("calendar could not resolve the instant")
	ErrNoTransitionFound  = errors.New("no solar-term transition found")
	// ErrInvariantViolation marks a lookup that fell through every expected case.
	ErrInvariantViolation = errors.New("internal invariant violation")
)
