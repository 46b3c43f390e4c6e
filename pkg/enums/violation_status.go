package enums

import "fmt"

// ViolationStatus tracks a violation's handling state.
type ViolationStatus string

const (
	ViolationStatusOpen      ViolationStatus = "open"
	ViolationStatusInReview  ViolationStatus = "in_review"
	ViolationStatusResolved  ViolationStatus = "resolved"
	ViolationStatusDismissed ViolationStatus = "dismissed"
)

var validViolationStatuses = []ViolationStatus{
	ViolationStatusOpen,
	ViolationStatusInReview,
	ViolationStatusResolved,
	ViolationStatusDismissed,
}

// String implements fmt.Stringer.
func (v ViolationStatus) String() string {
	return string(v)
}

// IsValid reports whether the value is a known ViolationStatus.
func (v ViolationStatus) IsValid() bool {
	for _, candidate := range validViolationStatuses {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseViolationStatus converts raw input into a ViolationStatus.
func ParseViolationStatus(value string) (ViolationStatus, error) {
	for _, candidate := range validViolationStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid violation status %q", value)
}

// ViolationStatuses returns the full status domain, in declaration order.
func ViolationStatuses() []ViolationStatus {
	out := make([]ViolationStatus, len(validViolationStatuses))
	copy(out, validViolationStatuses)
	return out
}
