package catalog

import "errors"

var (
	// ErrDuplicateID indicates two records of the same kind share an id.
	ErrDuplicateID = errors.New("duplicate catalog id")
	// ErrMissingID indicates a record without an id.
	ErrMissingID = errors.New("catalog record missing id")
)
