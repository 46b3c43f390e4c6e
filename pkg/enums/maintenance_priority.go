package enums

import "fmt"

// MaintenancePriority ranks how urgently a request needs attention.
type MaintenancePriority string

const (
	MaintenancePriorityLow    MaintenancePriority = "low"
	MaintenancePriorityMedium MaintenancePriority = "medium"
	MaintenancePriorityHigh   MaintenancePriority = "high"
	MaintenancePriorityUrgent MaintenancePriority = "urgent"
)

var validMaintenancePriorities = []MaintenancePriority{
	MaintenancePriorityLow,
	MaintenancePriorityMedium,
	MaintenancePriorityHigh,
	MaintenancePriorityUrgent,
}

// String implements fmt.Stringer.
func (m MaintenancePriority) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MaintenancePriority.
func (m MaintenancePriority) IsValid() bool {
	for _, candidate := range validMaintenancePriorities {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMaintenancePriority converts raw input into a MaintenancePriority.
func ParseMaintenancePriority(value string) (MaintenancePriority, error) {
	for _, candidate := range validMaintenancePriorities {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid maintenance priority %q", value)
}

// MaintenancePriorities returns the full priority domain, in declaration order.
func MaintenancePriorities() []MaintenancePriority {
	out := make([]MaintenancePriority, len(validMaintenancePriorities))
	copy(out, validMaintenancePriorities)
	return out
}
