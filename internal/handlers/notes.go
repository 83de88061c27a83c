package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const errInvalidNoteID = "invalid note id"

// NoteRequest is the body of create and update calls.
type NoteRequest struct {
	Title   string `json:"title" example:"Groceries"`
	Content string `json:"content" example:"milk, eggs"`
}

// userOrAbort reads the authenticated user; it only fails if the route is mounted outside the guard.
func (h *Handler) userOrAbort(c *gin.Context) (int, bool) {
	uid, ok := currentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
	}
	return uid, ok
}

func noteIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": errInvalidNoteID})
		return 0, false
	}
	return id, true
}

// @Summary      List notes
// @Tags         notes
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, notes"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/notes [get]
// @Security     BearerAuth
func (h *Handler) listNotes(c *gin.Context) {
	uid, ok := h.userOrAbort(c)
	if !ok {
		return
	}
	notes, err := h.services.ListByOwner(c.Request.Context(), uid)
	if err != nil {
		h.abortWithServiceError(c, err, "note_list_failed", "user_id", uid)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(notes), "notes": notes})
}

// @Summary      Create note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        body  body      NoteRequest  true  "Note"
// @Param        X-CSRF-Token  header  string  false  "Required for cookie sessions"
// @Success      201   {object}  models.Note
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/v1/notes [post]
// @Security     BearerAuth
func (h *Handler) createNote(c *gin.Context) {
	uid, ok := h.userOrAbort(c)
	if !ok {
		return
	}
	var req NoteRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	n, err := h.services.Notes.Create(c.Request.Context(), uid, req.Title, req.Content)
	if err != nil {
		h.abortWithServiceError(c, err, "note_create_failed", "user_id", uid)
		return
	}
	c.JSON(http.StatusCreated, n)
}

// @Summary      Search notes
// @Description  Case-insensitive substring match over title and content of the caller's notes. A blank query returns no notes.
// @Tags         notes
// @Produce      json
// @Param        q    query     string  false  "Search text"
// @Success      200  {object}  map[string]interface{}  "query, count, notes"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/notes/search [get]
// @Security     BearerAuth
func (h *Handler) searchNotes(c *gin.Context) {
	uid, ok := h.userOrAbort(c)
	if !ok {
		return
	}
	query := c.Query("q")
	notes, err := h.services.Search(c.Request.Context(), uid, query)
	if err != nil {
		h.abortWithServiceError(c, err, "note_search_failed", "user_id", uid)
		return
	}
	c.JSON(http.StatusOK, gin.H{"query": strings.TrimSpace(query), "count": len(notes), "notes": notes})
}

// @Summary      Get note
// @Tags         notes
// @Produce      json
// @Param        id   path      int  true  "Note id"
// @Success      200  {object}  models.Note
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/notes/{id} [get]
// @Security     BearerAuth
func (h *Handler) getNote(c *gin.Context) {
	uid, ok := h.userOrAbort(c)
	if !ok {
		return
	}
	id, ok := noteIDParam(c)
	if !ok {
		return
	}
	n, err := h.services.Notes.Get(c.Request.Context(), uid, id)
	if err != nil {
		h.abortWithServiceError(c, err, "note_get_failed", "user_id", uid, "note_id", id)
		return
	}
	c.JSON(http.StatusOK, n)
}

// @Summary      Update note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        id    path      int          true  "Note id"
// @Param        body  body      NoteRequest  true  "Note"
// @Param        X-CSRF-Token  header  string  false  "Required for cookie sessions"
// @Success      200   {object}  models.Note
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/notes/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateNote(c *gin.Context) {
	uid, ok := h.userOrAbort(c)
	if !ok {
		return
	}
	id, ok := noteIDParam(c)
	if !ok {
		return
	}
	var req NoteRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	n, err := h.services.Notes.Update(c.Request.Context(), uid, id, req.Title, req.Content)
	if err != nil {
		h.abortWithServiceError(c, err, "note_update_failed", "user_id", uid, "note_id", id)
		return
	}
	c.JSON(http.StatusOK, n)
}

// @Summary      Delete note
// @Tags         notes
// @Param        id   path  int  true  "Note id"
// @Param        X-CSRF-Token  header  string  false  "Required for cookie sessions"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/notes/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteNote(c *gin.Context) {
	uid, ok := h.userOrAbort(c)
	if !ok {
		return
	}
	id, ok := noteIDParam(c)
	if !ok {
		return
	}
	if err := h.services.Notes.Delete(c.Request.Context(), uid, id); err != nil {
		h.abortWithServiceError(c, err, "note_delete_failed", "user_id", uid, "note_id", id)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary      Issue CSRF token
// @Description  Single-use token for state-changing requests made with the session cookie
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/csrf [get]
// @Security     BearerAuth
func (h *Handler) issueCSRF(c *gin.Context) {
	uid, ok := h.userOrAbort(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"csrf_token": h.services.IssueCSRF(uid)})
}
