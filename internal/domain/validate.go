package domain

import "strings"

// ValidateEntry is the single validation gate for every write path (HTTP
// create/update, CSV import, CLI). The store does not enforce hours > 0, so
// any write that skips this check can persist an invalid row, so all callers
// must go through here.
func ValidateEntry(e *TimeEntry) error {
	if strings.TrimSpace(e.Date) == "" {
		return ErrMissingDate
	}
	if _, err := ParseDate(e.Date); err != nil {
		return ErrInvalidDate
	}
	if strings.TrimSpace(e.TaskType) == "" {
		return ErrMissingTaskType
	}
	if e.Hours <= 0 {
		return ErrNonPositiveHours
	}
	return nil
}

// IsValidationError reports whether err is one of the entry validation
// sentinels. Handlers use it to pick 400 over 500.
func IsValidationError(err error) bool {
	switch err {
	case ErrMissingDate, ErrInvalidDate, ErrMissingTaskType, ErrNonPositiveHours:
		return true
	}
	return false
}
