package patient

import "errors"

var (
	ErrNotFound         = errors.New("patient not found")
	ErrNoFieldsToUpdate = errors.New("no fields to update")
	ErrInvalidDate      = errors.New("date of birth must be in YYYY-MM-DD format")
)
