package repository

import "errors"

// ErrNotFound is the repository-level sentinel for a query that matched no
// rows. The service layer translates it into a domain error so business
// logic never sees `sql.ErrNoRows` directly.
var ErrNotFound = errors.New("repository: not found")
