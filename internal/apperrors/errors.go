package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found,
// or that it exists but is not visible to the requesting user.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrCorrupt indicates an invariant violation in stored data, e.g. a
// transaction whose mandatory detail row is missing. Always a server fault,
// never a client error.
var ErrCorrupt = errors.New("corrupt data")

// ErrInternal indicates an unexpected infrastructure failure.
var ErrInternal = errors.New("internal error")
