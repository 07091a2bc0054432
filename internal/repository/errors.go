// Package repository implements the storage layer on top of MySQL. It owns
// all persisted state; the booking core re-reads current state inside its
// transaction on every operation and never caches rows across requests.
//
// Sentinel errors defined here let higher layers distinguish failure
// scenarios without inspecting driver errors.
package repository

import "errors"

// ErrRoomNotFound is returned when a referenced room does not exist.
// Handlers should translate this into an HTTP 404 response.
var ErrRoomNotFound = errors.New("room not found")

// ErrUserNotFound is returned when no account exists for an identifier.
// The login flow treats it as the signal to try the external directory.
var ErrUserNotFound = errors.New("user not found")
