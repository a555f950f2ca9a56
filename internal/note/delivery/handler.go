package delivery

import (
	"net/http"

	authDelivery "cryptnote-backend/internal/auth/delivery"
	notedto "cryptnote-backend/internal/note/dto"
	"cryptnote-backend/internal/note/usecase"
	"cryptnote-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

const component = "NoteHandler"

// NoteHandler handles note-related HTTP requests
type NoteHandler struct {
	noteUsecase usecase.NoteUsecase
}

// NewNoteHandler creates a new NoteHandler
func NewNoteHandler(noteUsecase usecase.NoteUsecase) *NoteHandler {
	return &NoteHandler{noteUsecase: noteUsecase}
}

// FetchAllNotes returns the caller's notes
// GET /api/notes/fetchallnotes
func (h *NoteHandler) FetchAllNotes(c *gin.Context) {
	notes, err := h.noteUsecase.List(c.Request.Context(), c.GetString(authDelivery.UserIDKey))
	if err != nil {
		response.Error(c, component, err)
		return
	}
	c.JSON(http.StatusOK, notes)
}

// AddNote
// POST /api/notes/addnote
func (h *NoteHandler) AddNote(c *gin.Context) {
	var req notedto.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c)
		return
	}

	note, err := h.noteUsecase.Create(c.Request.Context(), c.GetString(authDelivery.UserIDKey), &req)
	if err != nil {
		response.Error(c, component, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

// UpdateNote
// PUT /api/notes/updatenote/:id
func (h *NoteHandler) UpdateNote(c *gin.Context) {
	var req notedto.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c)
		return
	}

	note, err := h.noteUsecase.Update(c.Request.Context(), c.GetString(authDelivery.UserIDKey), c.Param("id"), &req)
	if err != nil {
		response.Error(c, component, err)
		return
	}
	c.JSON(http.StatusOK, notedto.UpdateNoteResponse{Note: note})
}

// DeleteNote
// DELETE /api/notes/deletenote/:id
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	note, err := h.noteUsecase.Delete(c.Request.Context(), c.GetString(authDelivery.UserIDKey), c.Param("id"))
	if err != nil {
		response.Error(c, component, err)
		return
	}
	c.JSON(http.StatusOK, notedto.DeleteNoteResponse{Success: "Note has been Deleted", Note: note})
}
