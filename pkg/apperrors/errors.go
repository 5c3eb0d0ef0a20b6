package apperrors

import "errors"

// ErrNotFound marks a lookup that matched nothing; handlers map it to 404.
var ErrNotFound = errors.New("not found")
