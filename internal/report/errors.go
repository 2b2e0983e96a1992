package report

import (
	"errors"
	"fmt"

	"github.com/username/hourly-report/internal/document"
)

var (
	// ErrInvalidDocument is matched by every *InvalidDocumentError
	ErrInvalidDocument = errors.New("invalid document")

	// ErrInvalidRange is returned when month, working hours, weekdays off or
	// holidays fall outside their valid domain
	ErrInvalidRange = errors.New("value out of range")

	// ErrMissingEntity is returned when Data is built without a worker,
	// company or dates off
	ErrMissingEntity = errors.New("missing entity")
)

// InvalidDocumentError carries the offending document value and its kind
type InvalidDocumentError struct {
	Type  document.Type
	Value string
}

func (e *InvalidDocumentError) Error() string {
	return fmt.Sprintf("document number %s is not a valid %s", e.Value, e.Type)
}

// Is lets errors.Is(err, ErrInvalidDocument) match
func (e *InvalidDocumentError) Is(target error) bool {
	return target == ErrInvalidDocument
}
