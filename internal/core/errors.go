package core

import (
	"errors"
	"fmt"
)

var (
	// ErrCollectionNotFound means the collection identifier did not resolve.
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrNoMatchingBuild means no build supports the target runtime version and loader.
	ErrNoMatchingBuild = errors.New("no matching build")

	// ErrNoPrimaryFile means the selected build has no file marked primary.
	ErrNoPrimaryFile = errors.New("no downloadable file")
)

// TransferError wraps a failed fetch, write, or delete for one package file.
type TransferError struct {
	Op   string // "fetch" or "remove"
	Path string
	Err  error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}
