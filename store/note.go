package store

import (
	errs "errors"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/scribblehq/scribble/types"
)

const (
	// PageSize is the number of notes shown per listing page.
	PageSize = 12
	// TitleMaxLen bounds note titles.
	TitleMaxLen = 200
)

type NoteStore struct {
	db *gorm.DB
}

func NewNoteStore(db *gorm.DB) *NoteStore {
	return &NoteStore{db: db}
}

func validateNote(title, content string) ValidationError {
	v := ValidationError{}
	if strings.TrimSpace(title) == "" {
		v["title"] = "Title is required"
	} else if len(title) > TitleMaxLen {
		v["title"] = "Title must be at most 200 characters"
	}
	if strings.TrimSpace(content) == "" {
		v["content"] = "Content is required"
	}
	if len(v) == 0 {
		return nil
	}
	return v
}

// Create persists a new note for ownerID. The caller decides the owner; the
// title and content come from the form.
func (s *NoteStore) Create(ownerID uint, title, content string) (*types.Note, error) {
	if v := validateNote(title, content); v != nil {
		return nil, v
	}

	now := time.Now()
	note := types.Note{
		UserID:    ownerID,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.db.Create(&note).Error; err != nil {
		return nil, errors.Wrap(err, "Saving note to db")
	}
	return &note, nil
}

func (s *NoteStore) Get(id uint) (*types.Note, error) {
	var note types.Note
	err := s.db.First(&note, id).Error
	if errs.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "Looking for note %d", id)
	}
	return &note, nil
}

// ListByOwner returns the requested page of the owner's notes, most recently
// updated first, along with the total number of the owner's notes. Pages are
// 1-based; out-of-range pages return an empty slice.
func (s *NoteStore) ListByOwner(ownerID uint, page int) ([]types.Note, int64, error) {
	if page < 1 {
		page = 1
	}

	var total int64
	if err := s.db.Model(&types.Note{}).Where("user_id = ?", ownerID).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrapf(err, "Counting notes owned by user %d", ownerID)
	}

	ret := []types.Note{}
	result := s.db.
		Where("user_id = ?", ownerID).
		Order("updated_at DESC").
		Limit(PageSize).
		Offset((page - 1) * PageSize).
		Find(&ret)
	if result.Error != nil {
		return nil, 0, errors.Wrapf(result.Error, "Looking for notes owned by user %d", ownerID)
	}
	return ret, total, nil
}

// Update replaces title and content and refreshes the updated timestamp. The
// owner and the created timestamp are never written. Last write wins; there
// is no version guard.
func (s *NoteStore) Update(id uint, title, content string) (*types.Note, error) {
	if v := validateNote(title, content); v != nil {
		return nil, v
	}

	note, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	note.Title = title
	note.Content = content
	note.UpdatedAt = time.Now()
	err = s.db.Model(note).Updates(map[string]any{
		"title":      note.Title,
		"content":    note.Content,
		"updated_at": note.UpdatedAt,
	}).Error
	if err != nil {
		return nil, errors.Wrapf(err, "Updating note %d", id)
	}
	return note, nil
}

// Delete removes the note for good. A second delete of the same id fails
// with ErrNotFound.
func (s *NoteStore) Delete(id uint) error {
	result := s.db.Delete(&types.Note{}, id)
	if result.Error != nil {
		return errors.Wrapf(result.Error, "Deleting note %d", id)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Search is the operator surface behind the admin panel: every user's notes,
// optionally narrowed by a title/content substring and an owner username.
func (s *NoteStore) Search(query, username string) ([]types.Note, error) {
	q := s.db.Preload("User").Order("updated_at DESC")
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("title LIKE ? OR content LIKE ?", like, like)
	}
	if username != "" {
		var owner types.User
		err := s.db.First(&owner, "username = ?", username).Error
		if errs.Is(err, gorm.ErrRecordNotFound) {
			return []types.Note{}, nil
		}
		if err != nil {
			return nil, errors.Wrapf(err, "Looking for user %q", username)
		}
		q = q.Where("user_id = ?", owner.ID)
	}

	ret := []types.Note{}
	if err := q.Find(&ret).Error; err != nil {
		return nil, errors.Wrap(err, "Searching notes")
	}
	return ret, nil
}
