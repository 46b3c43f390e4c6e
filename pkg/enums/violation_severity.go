package enums

import "fmt"

// ViolationSeverity ranks how serious a violation is.
type ViolationSeverity string

const (
	ViolationSeverityMinor    ViolationSeverity = "minor"
	ViolationSeverityModerate ViolationSeverity = "moderate"
	ViolationSeverityMajor    ViolationSeverity = "major"
	ViolationSeverityCritical ViolationSeverity = "critical"
)

var validViolationSeverities = []ViolationSeverity{
	ViolationSeverityMinor,
	ViolationSeverityModerate,
	ViolationSeverityMajor,
	ViolationSeverityCritical,
}

// String implements fmt.Stringer.
func (v ViolationSeverity) String() string {
	return string(v)
}

// IsValid reports whether the value is a known ViolationSeverity.
func (v ViolationSeverity) IsValid() bool {
	for _, candidate := range validViolationSeverities {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseViolationSeverity converts raw input into a ViolationSeverity.
func ParseViolationSeverity(value string) (ViolationSeverity, error) {
	for _, candidate := range validViolationSeverities {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid violation severity %q", value)
}

// ViolationSeverities returns the full severity domain, in declaration order.
func ViolationSeverities() []ViolationSeverity {
	out := make([]ViolationSeverity, len(validViolationSeverities))
	copy(out, validViolationSeverities)
	return out
}
