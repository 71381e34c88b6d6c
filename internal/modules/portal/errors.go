package portal

import (
	"errors"
	"fmt"
)

var (
	ErrEquipmentNotFound = errors.New("equipment not found")
	ErrNoTemplate        = errors.New("no pre-start template assigned to this equipment")
	ErrReadingRegression = errors.New("reading is lower than the current recorded value")
)

// ValidationError carries a message safe to show to the operator.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
