package errors

import (
	"fmt"
)

var (
	ErrNotFound         = fmt.Errorf("not found")
	ErrDuplicateName    = fmt.Errorf("duplicate name")
	ErrInvalidInput     = fmt.Errorf("invalid input")
	ErrHasChildren      = fmt.Errorf("has dependent records")
	ErrAlreadyInstalled = fmt.Errorf("component already installed")
)
