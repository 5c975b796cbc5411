package transport

import (
	"github.com/ds124wfegd/jpegify/internal/pkg/templates"
	"github.com/ds124wfegd/jpegify/internal/service"
)

type ImageHandler struct {
	service        service.ImageService
	maxUploadBytes int64
}

func NewImageHandler(service service.ImageService, maxUploadBytes int64) *ImageHandler {
	return &ImageHandler{service: service, maxUploadBytes: maxUploadBytes}
}

type PageHandler struct {
	templates *templates.Registry
}

func NewPageHandler(templates *templates.Registry) *PageHandler {
	return &PageHandler{templates: templates}
}
