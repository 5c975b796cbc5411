package transport

import (
	"errors"
	"net/http"

	"github.com/ds124wfegd/jpegify/internal/entity"
	"github.com/gin-gonic/gin"
)

const genericErrorMessage = "Something went wrong, sorry!"

// respondError maps err to a status code and a fixed message. Error text
// never reaches the client; middleware.Logger logs it with the request.
func respondError(c *gin.Context, err error) {
	status, message := classify(err)

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, entity.ErrorResponse{Error: message})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, entity.ErrInvalidID):
		return http.StatusBadRequest, "invalid image id"
	case errors.Is(err, entity.ErrImageNotFound):
		return http.StatusNotFound, "image not found"
	case errors.Is(err, entity.ErrUploadTooLarge), errors.Is(err, entity.ErrImageTooLarge):
		return http.StatusRequestEntityTooLarge, "image too large"
	default:
		// undecodable uploads land here as well
		return http.StatusInternalServerError, genericErrorMessage
	}
}
