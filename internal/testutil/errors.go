package testutil

import "errors"

// ErrSimulated is returned by fakes to drive failure paths, e.g. a store that cannot save.
var ErrSimulated = errors.New("simulated store failure")
