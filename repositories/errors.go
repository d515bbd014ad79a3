package repositories

import (
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no row matches the given id
var ErrNotFound = errors.New("record not found")

// validID reports whether id can name a row. Postgres rejects malformed
// uuids with an error instead of matching nothing.
func validID(id string) bool {
	return uuid.Validate(id) == nil
}
