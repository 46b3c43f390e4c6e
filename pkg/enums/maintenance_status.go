package enums

import "fmt"

// MaintenanceStatus tracks the lifecycle of a maintenance request.
type MaintenanceStatus string

const (
	MaintenanceStatusOpen       MaintenanceStatus = "open"
	MaintenanceStatusInProgress MaintenanceStatus = "in_progress"
	MaintenanceStatusCompleted  MaintenanceStatus = "completed"
	MaintenanceStatusCancelled  MaintenanceStatus = "cancelled"
)

var validMaintenanceStatuses = []MaintenanceStatus{
	MaintenanceStatusOpen,
	MaintenanceStatusInProgress,
	MaintenanceStatusCompleted,
	MaintenanceStatusCancelled,
}

// String implements fmt.Stringer.
func (m MaintenanceStatus) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MaintenanceStatus.
func (m MaintenanceStatus) IsValid() bool {
	for _, candidate := range validMaintenanceStatuses {
		if candidate == m {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status closes the request for good.
func (m MaintenanceStatus) IsTerminal() bool {
	return m == MaintenanceStatusCompleted || m == MaintenanceStatusCancelled
}

// CanTransitionTo reports whether a plain status update may move the
// request from m to next. Terminal states accept nothing; forward moves
// and cancellation from open or in_progress are allowed.
func (m MaintenanceStatus) CanTransitionTo(next MaintenanceStatus) bool {
	if !next.IsValid() {
		return false
	}
	if m == next {
		return true
	}
	if m.IsTerminal() {
		return false
	}
	switch m {
	case MaintenanceStatusOpen:
		return next == MaintenanceStatusInProgress ||
			next == MaintenanceStatusCompleted ||
			next == MaintenanceStatusCancelled
	case MaintenanceStatusInProgress:
		return next == MaintenanceStatusCompleted || next == MaintenanceStatusCancelled
	}
	return false
}

// ParseMaintenanceStatus converts raw input into a MaintenanceStatus.
func ParseMaintenanceStatus(value string) (MaintenanceStatus, error) {
	for _, candidate := range validMaintenanceStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid maintenance status %q", value)
}

// MaintenanceStatuses returns the full status domain, in declaration order.
func MaintenanceStatuses() []MaintenanceStatus {
	out := make([]MaintenanceStatus, len(validMaintenanceStatuses))
	copy(out, validMaintenanceStatuses)
	return out
}
