package database

import "errors"

// Storage error kinds. Repositories return these so handlers can turn each
// outcome into the right user-visible message instead of a raw fault.
var (
	ErrAuthorNotFound = errors.New("author does not exist")
	ErrBookNotFound   = errors.New("book does not exist")
	ErrDuplicateISBN  = errors.New("a book with this ISBN already exists")
)
