package config

import "errors"

// ErrMapsetMissing is returned by Validate when MapsetPath does not
// exist on disk.
var ErrMapsetMissing = errors.New("config: mapset path missing")
