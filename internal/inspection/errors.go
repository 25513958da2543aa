package inspection

import "errors"

var (
	// ErrDecode wraps image decoder failures. Only the offending upload fails.
	ErrDecode = errors.New("failed to decode image")

	// ErrAnalysisNotFound is returned for unknown or already confirmed analyses
	ErrAnalysisNotFound = errors.New("analysis not found")

	// ErrDiameterRequired is returned when neither the user nor the
	// measurement source provided a diameter
	ErrDiameterRequired = errors.New("diameter is required")

	ErrInvalidDiameter = errors.New("diameter must be a non-negative number")
)
