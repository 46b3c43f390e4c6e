package types

import "github.com/ridgeline-hq/hoa-backend/pkg/enums"

// Pet describes one pet registered to a resident.
type Pet struct {
	Name               string        `json:"name" validate:"required"`
	Type               enums.PetType `json:"type" validate:"required"`
	Breed              *string       `json:"breed,omitempty"`
	Weight             *float64      `json:"weight,omitempty" validate:"omitempty,gt=0"`
	RegistrationNumber *string       `json:"registration_number,omitempty"`
}

// PetList is stored as a JSONB column on the owning resident.
type PetList []Pet
