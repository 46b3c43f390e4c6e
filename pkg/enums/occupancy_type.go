package enums

import "fmt"

// OccupancyType classifies an enhanced resident's occupancy.
type OccupancyType string

const (
	OccupancyTypeOwner          OccupancyType = "owner"
	OccupancyTypeTenant         OccupancyType = "tenant"
	OccupancyTypeAuthorizedUser OccupancyType = "authorized_user"
)

var validOccupancyTypes = []OccupancyType{
	OccupancyTypeOwner,
	OccupancyTypeTenant,
	OccupancyTypeAuthorizedUser,
}

// String implements fmt.Stringer.
func (o OccupancyType) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OccupancyType.
func (o OccupancyType) IsValid() bool {
	for _, candidate := range validOccupancyTypes {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseOccupancyType converts raw input into an OccupancyType.
func ParseOccupancyType(value string) (OccupancyType, error) {
	for _, candidate := range validOccupancyTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid occupancy type %q", value)
}

// OccupancyTypes returns the full domain, in declaration order.
func OccupancyTypes() []OccupancyType {
	out := make([]OccupancyType, len(validOccupancyTypes))
	copy(out, validOccupancyTypes)
	return out
}
