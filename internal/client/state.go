package client

import (
	"context"
	"sort"
	"sync"

	notedomain "cryptnote-backend/internal/note/domain"
)

// NoteState owns the notes loaded for the current session. It is created when
// the session starts and cleared on logout; all changes go through the API and
// the local copy is updated from the server's answer.
type NoteState struct {
	api *APIClient

	mu    sync.RWMutex
	notes []*notedomain.Note
}

func NewNoteState(api *APIClient) *NoteState {
	return &NoteState{api: api}
}

// Refresh replaces the local notes with the server's list.
func (s *NoteState) Refresh(ctx context.Context) error {
	notes, err := s.api.FetchNotes(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.notes = notes
	s.mu.Unlock()
	return nil
}

func (s *NoteState) Add(ctx context.Context, title, description, tag string) (*notedomain.Note, error) {
	note, err := s.api.AddNote(ctx, title, description, tag)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.notes = append(s.notes, note)
	s.mu.Unlock()
	return note, nil
}

func (s *NoteState) Edit(ctx context.Context, id string, changes NoteChanges) (*notedomain.Note, error) {
	note, err := s.api.UpdateNote(ctx, id, changes)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	for i, n := range s.notes {
		if n.ID == note.ID {
			s.notes[i] = note
			break
		}
	}
	s.mu.Unlock()
	return note, nil
}

func (s *NoteState) Delete(ctx context.Context, id string) error {
	if _, err := s.api.DeleteNote(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	kept := s.notes[:0]
	for _, n := range s.notes {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	s.notes = kept
	s.mu.Unlock()
	return nil
}

// Sorted returns a copy of the notes, newest first.
func (s *NoteState) Sorted() []*notedomain.Note {
	s.mu.RLock()
	out := make([]*notedomain.Note, len(s.notes))
	copy(out, s.notes)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

func (s *NoteState) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}

// Clear drops every loaded note.
func (s *NoteState) Clear() {
	s.mu.Lock()
	s.notes = nil
	s.mu.Unlock()
}
