package transport

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ds124wfegd/jpegify/internal/entity"
	"github.com/gin-gonic/gin"
)

const serviceName = "jpegify"

// UploadImage distorts the raw request body and answers with the URL the
// result can be fetched from.
func (h *ImageHandler) UploadImage(c *gin.Context) {
	body := http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, fmt.Errorf("%w: limit %d bytes", entity.ErrUploadTooLarge, tooLarge.Limit))
			return
		}
		respondError(c, fmt.Errorf("read upload body: %w", err))
		return
	}

	id, err := h.service.Upload(c.Request.Context(), data)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.UploadResponse{Src: h.service.SourcePath(id)})
}

func (h *ImageHandler) GetImage(c *gin.Context) {
	img, err := h.service.GetImage(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	// stored images never change
	c.Header("Cache-Control", "public, max-age=31536000, immutable")
	c.Data(http.StatusOK, img.ContentType, img.Data)
}

func (h *ImageHandler) Health(c *gin.Context) {
	stats := h.service.Stats()
	c.JSON(http.StatusOK, entity.HealthResponse{
		Status:  "ok",
		Service: serviceName,
		Images:  stats.Images,
	})
}
