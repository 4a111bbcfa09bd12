package service

import "errors"

// Sentinel kinds for pipeline errors.
var (
	ErrUnknownDifficulty = errors.New("unknown difficulty")
)
