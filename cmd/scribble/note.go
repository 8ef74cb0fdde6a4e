package main

import (
	errs "errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/scribblehq/scribble/store"
	"github.com/scribblehq/scribble/types"
)

func renderNotFound(c echo.Context) error {
	return c.Render(http.StatusNotFound, "not-found", nil)
}

// fetchOwned resolves the target note and runs the ownership gate. A missing
// note and someone else's note get the same not-found page, so guessing ids
// reveals nothing about other users' notes.
func fetchOwned(c echo.Context, notes *store.NoteStore) (*types.Note, bool, error) {
	user, _ := GetSessionUser(c)

	id, perr := strconv.ParseUint(c.Param("id"), 10, 64)
	if perr != nil {
		return nil, false, renderNotFound(c)
	}

	note, err := notes.Get(uint(id))
	if errs.Is(err, store.ErrNotFound) {
		return nil, false, renderNotFound(c)
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "Fetching note")
	}

	if store.Authorize(user.ID, note) != store.Allowed {
		logrus.Debugf("User %d denied access to note %d", user.ID, note.ID)
		return nil, false, renderNotFound(c)
	}

	return note, true, nil
}

func listNotes(notes *store.NoteStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, _ := GetSessionUser(c)

		page, err := strconv.Atoi(c.QueryParam("page"))
		if err != nil || page < 1 {
			page = 1
		}

		pageNotes, total, err := notes.ListByOwner(user.ID, page)
		if err != nil {
			return errors.Wrap(err, "Listing notes")
		}

		pages := int((total + store.PageSize - 1) / store.PageSize)
		if pages < 1 {
			pages = 1
		}

		return c.Render(http.StatusOK, "note-list", types.NoteListData{
			User:    user,
			Notes:   pageNotes,
			Flashes: takeFlashes(c),
			Page:    page,
			Pages:   pages,
		})
	}
}

func noteDetail(notes *store.NoteStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		note, ok, err := fetchOwned(c, notes)
		if !ok {
			return err
		}
		user, _ := GetSessionUser(c)

		return c.Render(http.StatusOK, "note-detail", types.NoteDetailData{
			User:    user,
			Note:    *note,
			Flashes: takeFlashes(c),
		})
	}
}

func newNoteForm() echo.HandlerFunc {
	return func(c echo.Context) error {
		user, _ := GetSessionUser(c)
		return c.Render(http.StatusOK, "note-form", types.NoteFormData{
			User:    user,
			Form:    types.NewFormData(),
			Heading: "Create New Note",
			Submit:  "Create Note",
			Action:  "/notes/new",
		})
	}
}

func createNote(notes *store.NoteStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, _ := GetSessionUser(c)

		title := c.FormValue("title")
		content := c.FormValue("content")

		// The owner comes from the session, never from the form.
		note, err := notes.Create(user.ID, title, content)

		var v store.ValidationError
		if errs.As(err, &v) {
			return c.Render(http.StatusUnprocessableEntity, "note-form", types.NoteFormData{
				User: user,
				Form: types.FormData{
					Errors: v,
					Values: map[string]string{"title": title, "content": content},
				},
				Heading: "Create New Note",
				Submit:  "Create Note",
				Action:  "/notes/new",
			})
		}
		if err != nil {
			return errors.Wrap(err, "Creating note")
		}

		addFlash(c, "Note created successfully!")
		return c.Redirect(http.StatusFound, fmt.Sprintf("/notes/%d", note.ID))
	}
}

func editNoteForm(notes *store.NoteStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		note, ok, err := fetchOwned(c, notes)
		if !ok {
			return err
		}
		user, _ := GetSessionUser(c)

		return c.Render(http.StatusOK, "note-form", types.NoteFormData{
			User: user,
			Note: *note,
			Form: types.FormData{
				Errors: map[string]string{},
				Values: map[string]string{"title": note.Title, "content": note.Content},
			},
			Heading: "Edit Note",
			Submit:  "Save Changes",
			Action:  fmt.Sprintf("/notes/%d/edit", note.ID),
		})
	}
}

func updateNote(notes *store.NoteStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		note, ok, err := fetchOwned(c, notes)
		if !ok {
			return err
		}
		user, _ := GetSessionUser(c)

		title := c.FormValue("title")
		content := c.FormValue("content")

		_, err = notes.Update(note.ID, title, content)

		var v store.ValidationError
		if errs.As(err, &v) {
			return c.Render(http.StatusUnprocessableEntity, "note-form", types.NoteFormData{
				User: user,
				Note: *note,
				Form: types.FormData{
					Errors: v,
					Values: map[string]string{"title": title, "content": content},
				},
				Heading: "Edit Note",
				Submit:  "Save Changes",
				Action:  fmt.Sprintf("/notes/%d/edit", note.ID),
			})
		}
		if err != nil {
			return errors.Wrap(err, "Updating note")
		}

		addFlash(c, "Note updated successfully!")
		return c.Redirect(http.StatusFound, fmt.Sprintf("/notes/%d", note.ID))
	}
}

func confirmDeleteNote(notes *store.NoteStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		note, ok, err := fetchOwned(c, notes)
		if !ok {
			return err
		}
		user, _ := GetSessionUser(c)

		return c.Render(http.StatusOK, "note-confirm-delete", types.NoteDetailData{
			User: user,
			Note: *note,
		})
	}
}

func deleteNote(notes *store.NoteStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		note, ok, err := fetchOwned(c, notes)
		if !ok {
			return err
		}

		if err := notes.Delete(note.ID); err != nil {
			if errs.Is(err, store.ErrNotFound) {
				return renderNotFound(c)
			}
			return errors.Wrap(err, "Deleting note")
		}

		addFlash(c, "Note deleted successfully!")
		return c.Redirect(http.StatusFound, "/notes")
	}
}
