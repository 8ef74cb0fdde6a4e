package main

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/scribblehq/scribble/store"
	"github.com/scribblehq/scribble/types"
)

// adminNotes is the operator view over every user's notes, searchable by
// title/content and filterable by owner. Non-admins get the same not-found
// page as any other missing route.
func adminNotes(notes *store.NoteStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, _ := GetSessionUser(c)
		if !user.IsAdmin() {
			return renderNotFound(c)
		}

		query := c.QueryParam("q")
		username := c.QueryParam("user")

		found, err := notes.Search(query, username)
		if err != nil {
			return errors.Wrap(err, "Searching notes")
		}

		return c.Render(200, "admin-notes", types.AdminNotesData{
			User:     user,
			Notes:    found,
			Query:    query,
			Username: username,
		})
	}
}
