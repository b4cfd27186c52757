package infra

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindNotFound     ErrorKind = "NOT_FOUND"
	KindDuplicateKey ErrorKind = "DUPLICATE_KEY"
	KindConflict     ErrorKind = "CONFLICT"
	KindDBFailure    ErrorKind = "DB_FAILURE"
)

// RepositoryError is the single error shape crossing the infra boundary.
// Usecases branch on Kind via IsKind and never inspect pg error codes.
type RepositoryError struct {
	Kind ErrorKind
	Err  error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}

func NewNotFound(err error) *RepositoryError {
	return &RepositoryError{Kind: KindNotFound, Err: err}
}

func NewDuplicateKey(err error) *RepositoryError {
	return &RepositoryError{Kind: KindDuplicateKey, Err: err}
}

func NewConflict(err error) *RepositoryError {
	return &RepositoryError{Kind: KindConflict, Err: err}
}

func NewDBFailure(err error) *RepositoryError {
	return &RepositoryError{Kind: KindDBFailure, Err: err}
}

func IsKind(err error, kind ErrorKind) bool {
	var repoErr *RepositoryError
	if errors.As(err, &repoErr) {
		return repoErr.Kind == kind
	}
	return false
}
