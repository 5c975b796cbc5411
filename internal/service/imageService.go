package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ds124wfegd/jpegify/internal/entity"
	"github.com/ds124wfegd/jpegify/internal/pkg/idgen"
	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
)

func (s *imageService) Upload(ctx context.Context, data []byte) (ulid.ULID, error) {
	// the transform runs before any store lock is taken
	distorted, err := s.processor.Distort(ctx, data)
	if err != nil {
		return ulid.ULID{}, err
	}

	img := entity.StoredImage{
		ContentType: entity.ContentTypeJPEG,
		Data:        distorted,
	}
	id, err := s.store(ctx, img)
	if err != nil {
		return ulid.ULID{}, err
	}

	logrus.WithFields(logrus.Fields{
		"image_id": id.String(),
		"in":       len(data),
		"out":      len(distorted),
	}).Info("Image stored")

	s.publishStored(ctx, id, img)
	return id, nil
}

// store never overwrites: a taken id is replaced by a fresh one.
func (s *imageService) store(ctx context.Context, img entity.StoredImage) (ulid.ULID, error) {
	var id ulid.ULID
	for attempt := 1; attempt <= putAttempts; attempt++ {
		id = s.ids.NewID()
		if s.repo.Put(ctx, id, img) {
			return id, nil
		}
		logrus.WithFields(logrus.Fields{
			"image_id": id.String(),
			"attempt":  attempt,
		}).Warn("Image id already in use")
	}
	return ulid.ULID{}, fmt.Errorf("%w: %s after %d attempts", entity.ErrIDCollision, id, putAttempts)
}

func (s *imageService) publishStored(ctx context.Context, id ulid.ULID, img entity.StoredImage) {
	event := entity.ImageStoredEvent{
		ImageID:     idgen.Render(id),
		ContentType: img.ContentType,
		Size:        len(img.Data),
		Src:         s.SourcePath(id),
		CreatedAt:   time.UnixMilli(int64(id.Time())).UTC(),
	}

	if err := s.producer.SendMessage(ctx, event.ImageID, event); err != nil {
		logrus.WithError(err).WithField("image_id", event.ImageID).Error("Failed to publish image stored event")
	}
}

func (s *imageService) GetImage(ctx context.Context, segment string) (entity.StoredImage, error) {
	id, err := idgen.ParseSegment(segment)
	if err != nil {
		return entity.StoredImage{}, err
	}

	img, ok := s.repo.Get(ctx, id)
	if !ok {
		return entity.StoredImage{}, entity.ErrImageNotFound
	}
	return img, nil
}

func (s *imageService) SourcePath(id ulid.ULID) string {
	return s.imagesPath + "/" + idgen.Render(id)
}

func (s *imageService) Stats() Stats {
	return Stats{Images: s.repo.Len(), Bytes: s.repo.Bytes()}
}
