package api

import (
	"errors"

	"github.com/rhythmlab/tactus/internal/store"
)

// isNotFound translates upstream not-found errors to 404.
func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}

// isBadRequest translates malformed song identifiers to 400.
func isBadRequest(err error) bool {
	return errors.Is(err, store.ErrBadSongID)
}
