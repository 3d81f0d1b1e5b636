package domain

// Holiday is a greeting shown instead of the configured mode on a
// calendar date.
type Holiday struct {
	// Name identifies the holiday, e.g. "Spring Festival" or "Birthday".
	Name string `json:"name"`

	// Title is the headline drawn on the display.
	Title string `json:"title"`

	// Message is the greeting line.
	Message string `json:"message"`

	// Icon names a bundled glyph. Optional.
	Icon string `json:"icon,omitempty"`
}

// Available returns true if the holiday has enough data to be drawn.
func (h Holiday) Available() bool {
	return h.Name != "" && h.Message != ""
}
