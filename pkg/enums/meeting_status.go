package enums

import "fmt"

// MeetingStatus tracks whether a meeting happened.
type MeetingStatus string

const (
	MeetingStatusScheduled MeetingStatus = "scheduled"
	MeetingStatusCompleted MeetingStatus = "completed"
	MeetingStatusCancelled MeetingStatus = "cancelled"
)

var validMeetingStatuses = []MeetingStatus{
	MeetingStatusScheduled,
	MeetingStatusCompleted,
	MeetingStatusCancelled,
}

// String implements fmt.Stringer.
func (m MeetingStatus) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MeetingStatus.
func (m MeetingStatus) IsValid() bool {
	for _, candidate := range validMeetingStatuses {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMeetingStatus converts raw input into a MeetingStatus.
func ParseMeetingStatus(value string) (MeetingStatus, error) {
	for _, candidate := range validMeetingStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid meeting status %q", value)
}
