package usecase

import (
	"context"

	notedomain "cryptnote-backend/internal/note/domain"
	notedto "cryptnote-backend/internal/note/dto"
)

// NoteUsecase defines the interface for note business logic. Mutations check
// that the acting user owns the note.
type NoteUsecase interface {
	// List returns the caller's notes, newest first
	List(ctx context.Context, userID string) ([]*notedomain.Note, error)

	// Create stores a note owned by userID
	Create(ctx context.Context, userID string, req *notedto.CreateNoteRequest) (*notedomain.Note, error)

	// Update changes the provided fields of a note the caller owns
	Update(ctx context.Context, userID, noteID string, req *notedto.UpdateNoteRequest) (*notedomain.Note, error)

	// Delete removes a note the caller owns and returns it
	Delete(ctx context.Context, userID, noteID string) (*notedomain.Note, error)

	// DeleteAllForUser removes every note of a deleted account
	DeleteAllForUser(ctx context.Context, userID string) error
}
