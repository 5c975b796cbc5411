package database

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/ds124wfegd/jpegify/internal/entity"
	"github.com/oklog/ulid/v2"
)

// ImageRepository keeps images for the lifetime of the process. An entry is
// written once and never replaced or removed.
type ImageRepository interface {
	// Put stores img under id. Callers pass freshly generated ids only; a
	// second Put for the same id keeps the first image and reports false.
	Put(ctx context.Context, id ulid.ULID, img entity.StoredImage) bool
	// Get returns a copy of the image stored under id.
	Get(ctx context.Context, id ulid.ULID) (entity.StoredImage, bool)
	Len() int
	Bytes() int64
}

const shardCount = 32

type shard struct {
	mu     sync.RWMutex
	images map[ulid.ULID]entity.StoredImage
}

type memoryImageRepository struct {
	shards [shardCount]*shard
	count  atomic.Int64
	size   atomic.Int64
}
