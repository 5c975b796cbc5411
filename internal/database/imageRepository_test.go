package database

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/ds124wfegd/jpegify/internal/entity"
	"github.com/ds124wfegd/jpegify/internal/pkg/idgen"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutThenGet(t *testing.T) {
	ctx := context.Background()
	repo := NewImageRepository()
	id := idgen.NewGenerator().NewID()
	img := entity.StoredImage{ContentType: entity.ContentTypeJPEG, Data: []byte{0xff, 0xd8, 0xff, 0xd9}}

	require.True(t, repo.Put(ctx, id, img))

	got, ok := repo.Get(ctx, id)
	require.True(t, ok)
	assert.Equal(t, img, got)
	assert.Equal(t, 1, repo.Len())
	assert.Equal(t, int64(4), repo.Bytes())
}

func TestGetUnknownID(t *testing.T) {
	repo := NewImageRepository()

	got, ok := repo.Get(context.Background(), idgen.NewGenerator().NewID())
	assert.False(t, ok)
	assert.Empty(t, got.Data)
	assert.Empty(t, got.ContentType)

	_, ok = repo.Get(context.Background(), ulid.ULID{})
	assert.False(t, ok)
}

func TestPutIsWriteOnce(t *testing.T) {
	ctx := context.Background()
	repo := NewImageRepository()
	id := idgen.NewGenerator().NewID()

	first := entity.StoredImage{ContentType: entity.ContentTypeJPEG, Data: []byte("first")}
	second := entity.StoredImage{ContentType: "image/png", Data: []byte("second")}

	require.True(t, repo.Put(ctx, id, first))
	assert.False(t, repo.Put(ctx, id, second))

	got, ok := repo.Get(ctx, id)
	require.True(t, ok)
	assert.Equal(t, first, got)
	assert.Equal(t, 1, repo.Len())
	assert.Equal(t, int64(len("first")), repo.Bytes())
}

// TestStoredImageIsNotAliased проверяет, что хранилище не делит память с вызывающим кодом
func TestStoredImageIsNotAliased(t *testing.T) {
	ctx := context.Background()
	repo := NewImageRepository()
	id := idgen.NewGenerator().NewID()

	data := []byte("payload")
	repo.Put(ctx, id, entity.StoredImage{ContentType: entity.ContentTypeJPEG, Data: data})
	data[0] = 'X'

	got, ok := repo.Get(ctx, id)
	require.True(t, ok)
	assert.Equal(t, []byte("payload"), got.Data)

	got.Data[0] = 'Y'
	again, _ := repo.Get(ctx, id)
	assert.Equal(t, []byte("payload"), again.Data)
}

func TestConcurrentPutAndGet(t *testing.T) {
	const (
		writers   = 32
		perWriter = 200
	)

	ctx := context.Background()
	repo := NewImageRepository()
	gen := idgen.NewGenerator()

	type written struct {
		id   ulid.ULID
		data []byte
	}
	results := make(chan written, writers*perWriter)

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				id := gen.NewID()
				data := []byte(fmt.Sprintf("writer-%d-image-%d", w, i))
				if !repo.Put(ctx, id, entity.StoredImage{ContentType: entity.ContentTypeJPEG, Data: data}) {
					t.Errorf("fresh id %s rejected", id)
				}

				// read-after-write from the same goroutine
				got, ok := repo.Get(ctx, id)
				if !ok || !bytes.Equal(got.Data, data) {
					t.Errorf("image %s not visible after put", id)
				}
				results <- written{id: id, data: data}
			}
		}(w)
	}
	wg.Wait()
	close(results)

	assert.Equal(t, writers*perWriter, repo.Len())

	// every entry is visible from a different goroutine than its writer
	var readers sync.WaitGroup
	for res := range results {
		readers.Add(1)
		go func(res written) {
			defer readers.Done()
			got, ok := repo.Get(ctx, res.id)
			if !ok {
				t.Errorf("image %s lost", res.id)
				return
			}
			if !bytes.Equal(got.Data, res.data) || got.ContentType != entity.ContentTypeJPEG {
				t.Errorf("image %s corrupted", res.id)
			}
		}(res)
	}
	readers.Wait()
}
