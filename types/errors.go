package types

import (
	"errors"
	"fmt"
)

var (
	ErrConfig            = errors.New("configuration error")
	ErrNotFound          = errors.New("not found")
	ErrMissingFile       = errors.New("missing file")
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrGeometry          = errors.New("geometry error")

	ErrQuantityNotFound = fmt.Errorf("quantity %w", ErrNotFound)
	ErrUnknownAssembly  = fmt.Errorf("assembly index %w", ErrNotFound)
	ErrArchiveMissing   = fmt.Errorf("archive %w", ErrMissingFile)
)
