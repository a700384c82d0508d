package quality

import "errors"

// ErrUnknownQuality indicates a quality level that is not part of the
// profile it was compared under.
var ErrUnknownQuality = errors.New("quality not defined in profile")
