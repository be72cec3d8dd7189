package gencontext

import "errors"

// ErrMapsetMissing is returned by MapsetPath when the configured path
// no longer exists on disk.
var ErrMapsetMissing = errors.New("gencontext: mapset path missing")
