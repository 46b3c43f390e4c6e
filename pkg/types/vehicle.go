package types

// Vehicle describes one vehicle registered to a resident.
type Vehicle struct {
	Make         string  `json:"make" validate:"required"`
	Model        string  `json:"model" validate:"required"`
	Year         int     `json:"year" validate:"required,gte=1900"`
	Color        string  `json:"color" validate:"required"`
	LicensePlate string  `json:"license_plate" validate:"required"`
	ParkingSpot  *string `json:"parking_spot,omitempty"`
}

// VehicleList is stored as a JSONB column on the owning resident.
type VehicleList []Vehicle
