package session

import "errors"

var (
	// ErrExpired is returned when a session has expired and is no longer valid.
	ErrExpired = errors.New("session has expired")
	// ErrNotFound is returned when a session cannot be found in the store.
	ErrNotFound = errors.New("session not found")
	// ErrInvalidID is returned when a session identifier cannot be parsed.
	ErrInvalidID = errors.New("invalid session id")
	// ErrSaveSession is returned when saving a session to the store fails.
	ErrSaveSession = errors.New("failed to save session")
	// ErrDeleteSession is returned when deleting a session from the store fails.
	ErrDeleteSession = errors.New("failed to delete session")
	// ErrEncodeValue is returned when a session value cannot be serialized.
	ErrEncodeValue = errors.New("failed to encode session value")
	// ErrUnknownStore is returned when the configured store driver is not supported.
	ErrUnknownStore = errors.New("unknown session store")
)
