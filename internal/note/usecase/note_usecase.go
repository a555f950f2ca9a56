package usecase

import (
	"context"
	"fmt"
	"log"

	notedomain "cryptnote-backend/internal/note/domain"
	notedto "cryptnote-backend/internal/note/dto"
	"cryptnote-backend/internal/note/repository"
	"cryptnote-backend/pkg/apperror"
	"cryptnote-backend/pkg/sanitize"
	"cryptnote-backend/pkg/validation"
)

var (
	ErrNoteNotFound = apperror.NotFound("Not Found")
	ErrNotAllowed   = apperror.Forbidden("Not Allowed")
)

type noteUsecase struct {
	noteRepo repository.NoteRepository
}

func NewNoteUsecase(noteRepo repository.NoteRepository) NoteUsecase {
	return &noteUsecase{noteRepo: noteRepo}
}

func (u *noteUsecase) List(ctx context.Context, userID string) ([]*notedomain.Note, error) {
	notes, err := u.noteRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("list notes: %w", err))
	}
	if notes == nil {
		notes = []*notedomain.Note{}
	}
	return notes, nil
}

func (u *noteUsecase) Create(ctx context.Context, userID string, req *notedto.CreateNoteRequest) (*notedomain.Note, error) {
	// length rules apply to the text that is stored
	req.Title = sanitize.Text(req.Title)
	req.Description = sanitize.Text(req.Description)
	req.Tag = sanitize.Text(req.Tag)
	if err := validation.Validate(req).Err(); err != nil {
		return nil, err
	}

	note := &notedomain.Note{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Tag:         req.Tag,
	}
	if note.Tag == "" {
		note.Tag = notedomain.DefaultTag
	}

	if err := u.noteRepo.Create(ctx, note); err != nil {
		return nil, apperror.Internal(fmt.Errorf("create note: %w", err))
	}
	return note, nil
}

func (u *noteUsecase) Update(ctx context.Context, userID, noteID string, req *notedto.UpdateNoteRequest) (*notedomain.Note, error) {
	// empty values leave the field unchanged
	req.Title = sanitize.Optional(req.Title)
	req.Description = sanitize.Optional(req.Description)
	req.Tag = sanitize.Optional(req.Tag)
	if err := validation.Validate(req).Err(); err != nil {
		return nil, err
	}

	note, err := u.ownedNote(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		note.Title = *req.Title
	}
	if req.Description != nil {
		note.Description = *req.Description
	}
	if req.Tag != nil && *req.Tag != "" {
		note.Tag = *req.Tag
	}

	if err := u.noteRepo.Update(ctx, note); err != nil {
		return nil, apperror.Internal(fmt.Errorf("update note: %w", err))
	}
	return note, nil
}

func (u *noteUsecase) Delete(ctx context.Context, userID, noteID string) (*notedomain.Note, error) {
	note, err := u.ownedNote(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}

	if err := u.noteRepo.Delete(ctx, note.ID); err != nil {
		return nil, apperror.Internal(fmt.Errorf("delete note: %w", err))
	}
	return note, nil
}

func (u *noteUsecase) DeleteAllForUser(ctx context.Context, userID string) error {
	n, err := u.noteRepo.DeleteByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("delete notes of user %s: %w", userID, err)
	}
	log.Printf("[NoteUsecase] Removed %d notes of deleted user %s", n, userID)
	return nil
}

func (u *noteUsecase) ownedNote(ctx context.Context, userID, noteID string) (*notedomain.Note, error) {
	note, err := u.noteRepo.FindByID(ctx, noteID)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("find note: %w", err))
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}
	if !note.OwnedBy(userID) {
		return nil, ErrNotAllowed
	}
	return note, nil
}
