package transport

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Page renders a compiled template with an empty data context.
func (h *PageHandler) Page(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, contentType, err := h.templates.Render(name, nil)
		if err != nil {
			respondError(c, err)
			return
		}
		c.Data(http.StatusOK, contentType, body)
	}
}
