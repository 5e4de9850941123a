package services

import (
	"errors"

	"github.com/yukikurage/workforce-api/internal/repository"
	"github.com/yukikurage/workforce-api/internal/workforce"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrProjectNotFound      = errors.New("project not found")
	ErrShiftNotFound        = errors.New("shift not found")
	ErrEntryNotFound        = errors.New("clock entry not found")
	ErrExceptionNotFound    = errors.New("exception not found")
	ErrNotEntryOwner        = errors.New("clock entry belongs to another user")
	ErrAlreadyReviewed      = errors.New("exception has already been reviewed")
)

// lookupErr reports notFound for a missing record and a StoreError for anything else.
func lookupErr(op string, err, notFound error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFound
	}
	return workforce.NewStoreError(op, err)
}
