// Package service implements the booking core: parsing and rounding of
// requested time ranges, the per-hour capacity check, and the transactional
// create/update/delete/list operations on occupancies. Handlers translate
// the sentinel errors defined here into HTTP status codes.
package service

import "errors"

// ErrBadTimestamp is returned when a supplied timestamp cannot be parsed
// as RFC3339. Handlers should translate this into an HTTP 400 response.
var ErrBadTimestamp = errors.New("malformed timestamp")

// ErrInvalidRange is returned when a time range is empty or inverted after
// rounding to full hours (end <= start). Handlers should translate this
// into an HTTP 400 response.
var ErrInvalidRange = errors.New("end of time range is not after its start")

// ErrRoomFull is returned when a booking would push at least one hour of
// the requested range over the room's maximum occupancy. This is an
// expected outcome, not a fault; handlers should translate it into an
// HTTP 409 response.
var ErrRoomFull = errors.New("room already full")
