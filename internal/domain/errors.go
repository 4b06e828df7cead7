package domain

import "errors"

// ErrNotFound is returned by repositories when no row matches the lookup.
// Usecases translate it into an apperror with the proper HTTP status.
var ErrNotFound = errors.New("resource not found")

// ErrDuplicate is returned by repositories on a unique-key violation
// (content section, user email).
var ErrDuplicate = errors.New("duplicate resource")
