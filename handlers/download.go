package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/omarzydan610/JetStay-sub001/database"
)

func (h *Handler) DownloadDocument(c *gin.Context) {
	if h.history == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": errNoHistory.Error()})
		return
	}
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing document ID"})
		return
	}

	doc, err := h.history.GetDocument(c.Request.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	if len(doc.PDFData) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "PDF has not been generated for this booking"})
		return
	}
	writePDF(c, "jetstay-booking.pdf", doc.PDFData)
}

func writePDF(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/pdf", data)
}

// Health reports every configured dependency. Any failing dependency makes
// the answer 503.
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status, code := "ok", http.StatusOK
	deps := make(map[string]string, len(h.pingers)+1)
	for name, p := range h.pingers {
		if err := p.Ping(ctx); err != nil {
			deps[name] = "error: " + err.Error()
			status, code = "degraded", http.StatusServiceUnavailable
			continue
		}
		deps[name] = "ok"
	}
	if h.history == nil {
		deps["database"] = "not configured"
	}

	c.JSON(code, gin.H{
		"status":       status,
		"service":      "JetStay gateway",
		"dependencies": deps,
	})
}
