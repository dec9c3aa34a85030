package config

import "errors"

// ErrInvalidConfig is returned for settings that fail to parse or validate.
var ErrInvalidConfig = errors.New("invalid configuration")
