package passy

import "errors"

// Errors are limited to engine construction. GeneratePassword and
// EstimateStrength have no failure mode.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrBuilderUsed   = errors.New("builder already used")
	ErrUnknownSource = errors.New("unknown random source")
)
