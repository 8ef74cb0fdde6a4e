package store

import (
	"github.com/scribblehq/scribble/types"
)

type Decision int

const (
	Denied Decision = iota
	Allowed
)

// Authorize is the single ownership gate for reading, updating or deleting an
// existing note. Listing never goes through it because list queries are
// scoped to the requester, and creation assigns the owner itself.
func Authorize(userID uint, note *types.Note) Decision {
	if note != nil && note.UserID == userID {
		return Allowed
	}
	return Denied
}
