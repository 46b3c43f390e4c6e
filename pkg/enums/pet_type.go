package enums

import "fmt"

// PetType classifies a registered pet.
type PetType string

const (
	PetTypeDog   PetType = "dog"
	PetTypeCat   PetType = "cat"
	PetTypeBird  PetType = "bird"
	PetTypeFish  PetType = "fish"
	PetTypeOther PetType = "other"
)

var validPetTypes = []PetType{
	PetTypeDog,
	PetTypeCat,
	PetTypeBird,
	PetTypeFish,
	PetTypeOther,
}

// String implements fmt.Stringer.
func (p PetType) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PetType.
func (p PetType) IsValid() bool {
	for _, candidate := range validPetTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePetType converts raw input into a PetType.
func ParsePetType(value string) (PetType, error) {
	for _, candidate := range validPetTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid pet type %q", value)
}
