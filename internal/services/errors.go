package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrConfiguration           = errors.New("configuration error")
	ErrConfigurationIncomplete = errors.New("configuration incomplete")
	ErrValidation              = errors.New("validation error")
	ErrCatalogUnreachable      = errors.New("catalog unreachable")
	ErrLibraryNotFound         = errors.New("library not found")
	ErrRemoval                 = errors.New("removal failed")
	ErrLocked                  = errors.New("another run is in progress")
	ErrNotification            = errors.New("notification failed")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrValidation
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsFatal reports whether err must abort the run. Incomplete configuration is
// the only condition that ends a run without being treated as a failure.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, ErrConfigurationIncomplete)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
