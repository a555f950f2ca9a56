package repository

import (
	"context"

	notedomain "cryptnote-backend/internal/note/domain"
)

// NoteRepository defines the interface for note data access
type NoteRepository interface {
	// Create assigns an id and creation date and stores the note
	Create(ctx context.Context, note *notedomain.Note) error

	// FindByID returns nil, nil when no note has the id
	FindByID(ctx context.Context, id string) (*notedomain.Note, error)

	// FindByUserID returns every note owned by userID, newest first
	FindByUserID(ctx context.Context, userID string) ([]*notedomain.Note, error)

	// Update persists all fields of note
	Update(ctx context.Context, note *notedomain.Note) error

	// Delete removes a note by id
	Delete(ctx context.Context, id string) error

	// DeleteByUserID removes every note owned by userID
	DeleteByUserID(ctx context.Context, userID string) (int64, error)
}
