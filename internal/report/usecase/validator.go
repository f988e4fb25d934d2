package usecase

import "strings"

const (
	// MinThreadLength is the minimum trimmed input size worth analyzing
	MinThreadLength = 10
	// MaxThreadLength caps input size before any expensive processing
	MaxThreadLength = 100_000
)

// ValidationReason identifies why an input thread was rejected
type ValidationReason string

const (
	ReasonTooShort       ValidationReason = "TOO_SHORT"
	ReasonTooLong        ValidationReason = "TOO_LONG"
	ReasonNotEmailFormat ValidationReason = "NOT_EMAIL_FORMAT"
)

// ValidationError is a pre-extraction input rejection
type ValidationError struct {
	Reason ValidationReason
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonTooShort:
		return "thread is too short to analyze (minimum 10 characters)"
	case ReasonTooLong:
		return "thread is too long to analyze (maximum 100,000 characters)"
	case ReasonNotEmailFormat:
		return "text does not look like an email thread (no From:/To:/Subject: markers)"
	default:
		return "invalid thread"
	}
}

var emailMarkers = []string{"From:", "To:", "Subject:"}

// ValidateThread rejects malformed or out-of-bound input before extraction.
// Rules run in order, first failure wins. Pure and total: no I/O, all failure
// communicated through the returned error.
func ValidateThread(rawThread string) error {
	trimmed := strings.TrimSpace(rawThread)

	if len(trimmed) < MinThreadLength {
		return &ValidationError{Reason: ReasonTooShort}
	}
	if len(trimmed) > MaxThreadLength {
		return &ValidationError{Reason: ReasonTooLong}
	}

	hasMarker := false
	for _, marker := range emailMarkers {
		if strings.Contains(trimmed, marker) {
			hasMarker = true
			break
		}
	}
	if !hasMarker {
		return &ValidationError{Reason: ReasonNotEmailFormat}
	}

	return nil
}
