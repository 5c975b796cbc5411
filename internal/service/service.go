package service

import (
	"context"

	"github.com/ds124wfegd/jpegify/internal/database"
	"github.com/ds124wfegd/jpegify/internal/entity"
	"github.com/ds124wfegd/jpegify/internal/pkg/idgen"
	"github.com/ds124wfegd/jpegify/internal/pkg/kafka"
	"github.com/ds124wfegd/jpegify/internal/pkg/processor"
	"github.com/oklog/ulid/v2"
)

// putAttempts bounds how many fresh ids Upload tries before giving up.
const putAttempts = 3

type ImageService interface {
	// Upload distorts data and stores the result under a new id.
	Upload(ctx context.Context, data []byte) (ulid.ULID, error)
	// GetImage resolves a retrieval path segment such as "<id>" or "<id>.jpg".
	GetImage(ctx context.Context, segment string) (entity.StoredImage, error)
	// SourcePath is the URL path an uploaded image is served from.
	SourcePath(id ulid.ULID) string
	Stats() Stats
}

type Stats struct {
	Images int
	Bytes  int64
}

type imageService struct {
	repo       database.ImageRepository
	producer   kafka.Producer
	processor  processor.ImageProcessor
	ids        idgen.Generator
	imagesPath string
}

func NewImageService(repo database.ImageRepository, producer kafka.Producer, processor processor.ImageProcessor, ids idgen.Generator, imagesPath string) ImageService {
	return &imageService{
		repo:       repo,
		producer:   producer,
		processor:  processor,
		ids:        ids,
		imagesPath: imagesPath,
	}
}
