package dto

import notedomain "cryptnote-backend/internal/note/domain"

type CreateNoteRequest struct {
	Title       string `json:"title" validate:"min=3" msg:"Enter Valid Title"`
	Description string `json:"description" validate:"min=5" msg:"Description must be atleast 5 charector"`
	Tag         string `json:"tag"`
}

// UpdateNoteRequest carries only the fields the caller wants to change.
type UpdateNoteRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitnil,min=3" msg:"Enter Valid Title"`
	Description *string `json:"description,omitempty" validate:"omitnil,min=5" msg:"Description must be atleast 5 charector"`
	Tag         *string `json:"tag,omitempty"`
}

type UpdateNoteResponse struct {
	Note *notedomain.Note `json:"note"`
}

type DeleteNoteResponse struct {
	Success string           `json:"Success"`
	Note    *notedomain.Note `json:"note"`
}
