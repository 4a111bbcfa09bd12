package store

import "errors"

// Sentinel kinds for artifact store errors.
var (
	ErrNotFound  = errors.New("artifact not found")
	ErrBadSongID = errors.New("invalid song id")
)
