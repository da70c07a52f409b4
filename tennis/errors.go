package tennis

import "errors"

// ErrInvalidConfig is returned when players or matches are constructed with
// values that would make the simulation meaningless.
var ErrInvalidConfig = errors.New("tennis: invalid configuration")
