package database

import (
	"context"

	"github.com/ds124wfegd/jpegify/internal/entity"
	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
)

func NewImageRepository() ImageRepository {
	r := &memoryImageRepository{}
	for i := range r.shards {
		r.shards[i] = &shard{images: make(map[ulid.ULID]entity.StoredImage)}
	}
	return r
}

func (r *memoryImageRepository) Put(ctx context.Context, id ulid.ULID, img entity.StoredImage) bool {
	stored := entity.StoredImage{
		ContentType: img.ContentType,
		Data:        clone(img.Data),
	}

	s := r.shardFor(id)
	s.mu.Lock()
	if _, exists := s.images[id]; exists {
		s.mu.Unlock()
		logrus.WithField("image_id", id.String()).Warn("Image id already stored, keeping the first entry")
		return false
	}
	s.images[id] = stored
	s.mu.Unlock()

	r.count.Add(1)
	r.size.Add(int64(len(stored.Data)))
	return true
}

func (r *memoryImageRepository) Get(ctx context.Context, id ulid.ULID) (entity.StoredImage, bool) {
	s := r.shardFor(id)
	s.mu.RLock()
	img, ok := s.images[id]
	s.mu.RUnlock()
	if !ok {
		return entity.StoredImage{}, false
	}
	return entity.StoredImage{
		ContentType: img.ContentType,
		Data:        clone(img.Data),
	}, true
}

func (r *memoryImageRepository) Len() int {
	return int(r.count.Load())
}

func (r *memoryImageRepository) Bytes() int64 {
	return r.size.Load()
}

// shardFor picks a shard from the last entropy byte, which is random even
// for ids minted within the same millisecond.
func (r *memoryImageRepository) shardFor(id ulid.ULID) *shard {
	return r.shards[int(id[len(id)-1])%shardCount]
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
