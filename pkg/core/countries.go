package core

import (
	"maps"
	"slices"
	"strings"
)

// Countries is an immutable lookup table of series codes to country names
type Countries struct {
	names map[string]string
}

// NewCountries builds a lookup table from a code to name mapping.
// Codes are normalized to upper case and the input map is copied.
func NewCountries(names map[string]string) Countries {
	table := make(map[string]string, len(names))
	for code, name := range names {
		table[strings.ToUpper(strings.TrimSpace(code))] = name
	}
	return Countries{names: table}
}

// Name returns the country name of a code
func (c Countries) Name(code string) (string, bool) {
	name, ok := c.names[strings.ToUpper(code)]
	return name, ok
}

// Has reports whether the code is known
func (c Countries) Has(code string) bool {
	_, ok := c.Name(code)
	return ok
}

// Codes returns all known codes in ascending order
func (c Countries) Codes() []string {
	return slices.Sorted(maps.Keys(c.names))
}

// Len returns the number of known countries
func (c Countries) Len() int {
	return len(c.names)
}
