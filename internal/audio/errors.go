package audio

import "errors"

// ErrNoSamples is returned when a decoded or supplied buffer contains no
// audio data.
var ErrNoSamples = errors.New("no audio samples")
