package service

import (
	"errors"
	"fmt"

	"github.com/helixml/sitekit/domain/navigation"
	"github.com/helixml/sitekit/domain/repository"
	"github.com/helixml/sitekit/domain/slide"
)

// Errors returned by the services. Match them with errors.Is.
var (
	// ErrNotFound indicates a referenced row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates an invariant would be violated, or a migration
	// version was reused with different content.
	ErrConflict = errors.New("conflict")

	// ErrAmbiguousBinding indicates more than one slide matches a page, or a
	// slide's binding cannot be decided.
	ErrAmbiguousBinding = slide.ErrAmbiguousBinding

	// ErrAmbiguousParent indicates an anchor lookup matched several items.
	ErrAmbiguousParent = errors.New("ambiguous parent")

	// ErrInvalidLocation indicates a child would leave its parent's location.
	ErrInvalidLocation = navigation.ErrInvalidLocation

	// ErrStore wraps any other persistence failure. Retrying the run is safe.
	ErrStore = errors.New("store failure")

	// ErrClientClosed indicates the client has been closed.
	ErrClientClosed = errors.New("sitekit: client is closed")
)

// storeError classifies a store failure as ErrNotFound or ErrStore. Errors
// that already carry a service sentinel pass through unchanged.
func storeError(op string, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%s: %w: %w", op, ErrNotFound, err)
	case isServiceError(err):
		return fmt.Errorf("%s: %w", op, err)
	default:
		return fmt.Errorf("%s: %w: %w", op, ErrStore, err)
	}
}

func isServiceError(err error) bool {
	for _, target := range []error{ErrNotFound, ErrConflict, ErrAmbiguousBinding, ErrAmbiguousParent, ErrInvalidLocation, ErrStore} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound) || errors.Is(err, ErrNotFound)
}
