package prefs

import "errors"

var (
	// ErrInvalidRating is returned for star values outside 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	// ErrInvalidTheme is returned for theme names other than dark and light.
	ErrInvalidTheme = errors.New("unknown theme")
)
