// Package controller implements the property base service layer: input
// validation, parent checks and delete guards over the repository, plus
// change events for the component hierarchy.
package controller

import (
	"errors"
	"fmt"

	e "github.com/gartstein/propertyhub/internal/propertybase/errors"
	"github.com/gartstein/propertyhub/internal/propertybase/events"
)

type EventProducer interface {
	Produce(event events.Event)
}

// SearchLimit bounds the number of hits a structure search returns.
const SearchLimit = 50

// MinSearchLength is the shortest accepted search query.
const MinSearchLength = 3

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", e.ErrInvalidInput, fmt.Sprintf(format, args...))
}

// parentMissing turns a not-found parent lookup into an input error so the
// caller sees 400 rather than 404.
func parentMissing(err error, kind string) error {
	if errors.Is(err, e.ErrNotFound) {
		return invalid("%s does not exist", kind)
	}
	return fmt.Errorf("failed to get %s: %w", kind, err)
}

// passNotFound returns ErrNotFound as is and labels any other error with op.
func passNotFound(err error, op string) error {
	if errors.Is(err, e.ErrNotFound) {
		return err
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
