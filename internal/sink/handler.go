package sink

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler exposes HTTP endpoints for inspecting received lines.
type Handler struct {
	st *Store
}

// NewHandler wires a Store into a gin-compatible HTTP handler.
func NewHandler(st *Store) *Handler {
	return &Handler{st: st}
}

// Ping handles `GET /ping`.
func (h *Handler) Ping(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}

// Lines handles `GET /lines` and returns the buffered lines, oldest first.
func (h *Handler) Lines(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"total": h.st.Total(),
		"lines": h.st.Recent(),
	})
}

// Index handles `GET /` with a plain-text summary.
func (h *Handler) Index(c *gin.Context) {
	c.String(http.StatusOK, "statline sink: %d lines buffered, %d received total\n",
		h.st.Len(), h.st.Total())
}
