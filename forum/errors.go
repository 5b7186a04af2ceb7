package forum

import (
	"errors"
	"net/http"
)

// Domain errors.
var (
	ErrNameAlreadyInUse = errors.New("forum: name already in use")
	// ErrBadLogin covers both an unknown name and a wrong password.
	ErrBadLogin       = errors.New("forum: bad login")
	ErrNoSuchUser     = errors.New("forum: no such user")
	ErrNoSuchTopic    = errors.New("forum: no such topic")
	ErrHashFailure    = errors.New("forum: password hash failure")
	ErrStorageFailure = errors.New("forum: storage failure")
	ErrSessionFailure = errors.New("forum: session failure")
	ErrInvalidPage    = errors.New("forum: invalid page")
)

// StatusCode maps an error returned by this package to an HTTP status.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrBadLogin):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNameAlreadyInUse):
		return http.StatusConflict
	case errors.Is(err, ErrNoSuchUser), errors.Is(err, ErrNoSuchTopic):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidPage):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// storageError passes domain errors through and marks anything else as a
// storage failure, keeping the cause in the chain.
func storageError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNameAlreadyInUse),
		errors.Is(err, ErrNoSuchUser),
		errors.Is(err, ErrNoSuchTopic),
		errors.Is(err, ErrStorageFailure):
		return err
	default:
		return errors.Join(ErrStorageFailure, err)
	}
}
