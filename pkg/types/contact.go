package types

// EmergencyContact is embedded in a resident record; it has no identity or
// lifecycle of its own.
type EmergencyContact struct {
	Name         string  `json:"name" validate:"required"`
	Phone        string  `json:"phone" validate:"required"`
	Relationship string  `json:"relationship" validate:"required"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email"`
}
