package enums

import "fmt"

// ResidentType classifies a basic resident's relationship to their unit.
type ResidentType string

const (
	ResidentTypeOwner       ResidentType = "owner"
	ResidentTypeTenant      ResidentType = "tenant"
	ResidentTypeBoardMember ResidentType = "board_member"
)

var validResidentTypes = []ResidentType{
	ResidentTypeOwner,
	ResidentTypeTenant,
	ResidentTypeBoardMember,
}

// String implements fmt.Stringer.
func (r ResidentType) String() string {
	return string(r)
}

// IsValid reports whether the value is a known ResidentType.
func (r ResidentType) IsValid() bool {
	for _, candidate := range validResidentTypes {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseResidentType converts raw input into a ResidentType.
func ParseResidentType(value string) (ResidentType, error) {
	for _, candidate := range validResidentTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid resident type %q", value)
}
