package errs

import "errors"

var (
	ErrNotFound  = errors.New("not found")
	ErrBadEvent  = errors.New("malformed booking event")
	ErrDuplicate = errors.New("event already recorded")
)
