package repository

import (
	"context"
	"errors"
	"time"

	notedomain "cryptnote-backend/internal/note/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormNoteRepository implements NoteRepository using GORM
type gormNoteRepository struct {
	db *gorm.DB
}

// NewGormNoteRepository creates a new GORM-based NoteRepository
func NewGormNoteRepository(db *gorm.DB) NoteRepository {
	return &gormNoteRepository{db: db}
}

func (r *gormNoteRepository) Create(ctx context.Context, note *notedomain.Note) error {
	if note.ID == "" {
		note.ID = uuid.New().String()
	}
	if note.Tag == "" {
		note.Tag = notedomain.DefaultTag
	}
	note.Date = time.Now()
	note.UpdatedAt = note.Date
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *gormNoteRepository) FindByID(ctx context.Context, id string) (*notedomain.Note, error) {
	var note notedomain.Note
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&note).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &note, nil
}

func (r *gormNoteRepository) FindByUserID(ctx context.Context, userID string) ([]*notedomain.Note, error) {
	notes := make([]*notedomain.Note, 0)
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("date DESC").Find(&notes).Error
	return notes, err
}

func (r *gormNoteRepository) Update(ctx context.Context, note *notedomain.Note) error {
	note.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Save(note).Error
}

func (r *gormNoteRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&notedomain.Note{}, "id = ?", id).Error
}

func (r *gormNoteRepository) DeleteByUserID(ctx context.Context, userID string) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&notedomain.Note{}, "user_id = ?", userID)
	return res.RowsAffected, res.Error
}
