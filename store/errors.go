package store

import (
	errs "errors"
	"sort"
	"strings"
)

// ErrNotFound is returned when a note id does not exist.
var ErrNotFound = errs.New("note not found")

// ErrBadCredentials covers both an unknown username and a wrong password, so
// a failed login never reveals which of the two it was.
var ErrBadCredentials = errs.New("invalid username or password")

// ValidationError maps field names to messages. No store write happens when
// one is returned.
type ValidationError map[string]string

func (v ValidationError) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(v))
	for _, f := range fields {
		parts = append(parts, f+": "+v[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
