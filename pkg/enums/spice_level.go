package enums

import "fmt"

// SpiceLevel describes how spicy a menu item is.
type SpiceLevel string

const (
	SpiceLevelMild       SpiceLevel = "MILD"
	SpiceLevelMedium     SpiceLevel = "MEDIUM"
	SpiceLevelSpicy      SpiceLevel = "SPICY"
	SpiceLevelExtraSpicy SpiceLevel = "EXTRA_SPICY"
)

var validSpiceLevels = []SpiceLevel{
	SpiceLevelMild,
	SpiceLevelMedium,
	SpiceLevelSpicy,
	SpiceLevelExtraSpicy,
}

// String implements fmt.Stringer.
func (s SpiceLevel) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SpiceLevel.
func (s SpiceLevel) IsValid() bool {
	for _, candidate := range validSpiceLevels {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSpiceLevel converts raw input into a SpiceLevel.
func ParseSpiceLevel(value string) (SpiceLevel, error) {
	for _, candidate := range validSpiceLevels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid spice level %q", value)
}
