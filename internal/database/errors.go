package database

import "errors"

var (
	// ErrConcurrentModification reports a lost version race: the row changed
	// between read and write.
	ErrConcurrentModification = errors.New("concurrent modification detected")
)
