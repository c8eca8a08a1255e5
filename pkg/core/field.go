package core

import (
	"fmt"
	"strings"
)

// Field selects one statistic of a candlestick
type Field string

const (
	FieldOpen  Field = "open"
	FieldHigh  Field = "high"
	FieldLow   Field = "low"
	FieldClose Field = "close"
)

// ParseField converts a textual field name into a Field.
// An empty name selects the close.
func ParseField(name string) (Field, error) {
	switch field := Field(strings.ToLower(strings.TrimSpace(name))); field {
	case "":
		return FieldClose, nil
	case FieldOpen, FieldHigh, FieldLow, FieldClose:
		return field, nil
	default:
		return "", fmt.Errorf("invalid candlestick field: %q", name)
	}
}
