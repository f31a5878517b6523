package recs

import "errors"

// ErrInvalidRequest covers malformed filter values such as a negative limit
// or a rating outside [0,5]. Provider failures are recovered internally and
// never escape as errors.
var ErrInvalidRequest = errors.New("invalid request")
