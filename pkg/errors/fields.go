package errors

// FieldErrors accumulates per-field semantic violations so a single
// validation response can report every problem at once.
type FieldErrors map[string]string

func (f FieldErrors) Add(field, message string) {
	f[field] = message
}

func (f FieldErrors) HasErrors() bool {
	return len(f) > 0
}

// Err materializes the accumulated violations as a validation error,
// or returns nil when nothing was recorded.
func (f FieldErrors) Err() error {
	if len(f) == 0 {
		return nil
	}
	return New(CodeValidation, "validation failed").WithDetails(f)
}
