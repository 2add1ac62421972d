package core

import "errors"

// ErrConfig is wrapped by every configuration error reported before a run
// starts. Use errors.Is to detect it.
var ErrConfig = errors.New("invalid configuration")
