package location

import "errors"

// Location domain errors
var (
	ErrLocationNotFound = errors.New("location not found")
	ErrNameTaken        = errors.New("a location with this name already exists")
)
