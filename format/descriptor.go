package format

import (
	"regexp"
	"strings"
)

// Descriptor is one extension toggle parsed from descriptor text:
// the extension name and whether the sign in front of it was +.
type Descriptor struct {
	Name    string
	Enabled bool
}

var descriptorRe = regexp.MustCompile(`[+-][a-z_]+`)

// ParseDescriptors tokenizes compact (+|-)name descriptor text into an
// ordered descriptor list. Line breaks are removed up front, so the
// engine's one-per-line output concatenates into a single run of
// sign+name tokens. Anything not matching the sign+name shape
// (uppercase, digits, stray punctuation) is skipped without a warning.
func ParseDescriptors(text string) []Descriptor {
	text = strings.NewReplacer("\r", "", "\n", "").Replace(text)

	matches := descriptorRe.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}

	descriptors := make([]Descriptor, 0, len(matches))
	for _, match := range matches {
		descriptors = append(descriptors, Descriptor{
			Name:    match[1:],
			Enabled: match[0] == '+',
		})
	}
	return descriptors
}
