package models

import "strings"

// Design selects one of the fixed visual templates.
type Design string

const (
	DesignJournal     Design = "journal"
	DesignNotes       Design = "notes"
	DesignMinimalDark Design = "minimal_dark"
	DesignInfluencer  Design = "influencer"

	DefaultDesign = DesignNotes
)

var designs = []Design{DesignJournal, DesignNotes, DesignMinimalDark, DesignInfluencer}

func Designs() []Design {
	return append([]Design(nil), designs...)
}

func (d Design) Valid() bool {
	for _, known := range designs {
		if d == known {
			return true
		}
	}
	return false
}

// ParseDesign maps a tag to a Design. Unknown tags report ok=false and
// resolve to DefaultDesign.
func ParseDesign(tag string) (Design, bool) {
	d := Design(strings.ToLower(strings.TrimSpace(tag)))
	if d.Valid() {
		return d, true
	}
	return DefaultDesign, false
}
