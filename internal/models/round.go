package models

// Round is one question shown to the player. Background colours are
// presentation only and never affect scoring.
type Round struct {
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Background   []string `json:"background,omitempty"`
}

// HasOption reports whether index addresses one of the round's options.
func (r Round) HasOption(index int) bool {
	return index >= 0 && index < len(r.Options)
}
