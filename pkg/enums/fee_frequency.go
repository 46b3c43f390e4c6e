package enums

import "fmt"

// FeeFrequency defines how often a management fee recurs.
type FeeFrequency string

const (
	FeeFrequencyMonthly   FeeFrequency = "monthly"
	FeeFrequencyQuarterly FeeFrequency = "quarterly"
	FeeFrequencyAnnual    FeeFrequency = "annual"
)

var validFeeFrequencies = []FeeFrequency{
	FeeFrequencyMonthly,
	FeeFrequencyQuarterly,
	FeeFrequencyAnnual,
}

// String implements fmt.Stringer.
func (f FeeFrequency) String() string {
	return string(f)
}

// IsValid reports whether the value is a known FeeFrequency.
func (f FeeFrequency) IsValid() bool {
	for _, candidate := range validFeeFrequencies {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseFeeFrequency converts raw input into a FeeFrequency.
func ParseFeeFrequency(value string) (FeeFrequency, error) {
	for _, candidate := range validFeeFrequencies {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid fee frequency %q", value)
}
