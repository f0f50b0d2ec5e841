package handlers

const (
	// Fallback window for the diagram endpoint when no frets are given
	fullNeckStartFret = 0
	fullNeckEndFret   = 0

	errInvalidRequest = "Invalid request"
	errInternal       = "Internal server error"
)
