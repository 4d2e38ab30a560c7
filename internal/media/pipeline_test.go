package media_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/FavasCherukunnu/ecomm-api/internal/media"
	"github.com/FavasCherukunnu/ecomm-api/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// uploadFixture encodes a small PNG the way a browser upload would arrive.
func uploadFixture(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for x := 0; x < 32; x++ {
		for y := 0; y < 32; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 8), G: uint8(y * 8), B: 64, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPipelineProcess(t *testing.T) {
	host := mocks.NewMockMediaStore()
	pipeline := media.NewPipeline(host, "products", nil)

	pair, err := pipeline.Process(context.Background(), uploadFixture(t), "image/png")
	require.NoError(t, err)
	require.NotEmpty(t, pair.Image)
	require.NotEmpty(t, pair.Thumbnail)

	displayID, err := media.PublicIDFromURL(pair.Image)
	require.NoError(t, err)
	thumbnailID, err := media.PublicIDFromURL(pair.Thumbnail)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(displayID, "products/"), "derivatives live under the configured folder")
	assert.Equal(t, displayID+"_thumb", thumbnailID, "both IDs must share one batch")

	uploads := host.Uploads()
	assert.Len(t, uploads, 2)
	assert.NotEmpty(t, uploads[displayID])
	assert.NotEmpty(t, uploads[thumbnailID])
	assert.Empty(t, host.Deletes(), "a clean batch leaves nothing to destroy")
}

func TestPipelineProcessDistinctBatches(t *testing.T) {
	host := mocks.NewMockMediaStore()
	pipeline := media.NewPipeline(host, "products", nil)

	first, err := pipeline.Process(context.Background(), uploadFixture(t), "image/png")
	require.NoError(t, err)
	second, err := pipeline.Process(context.Background(), uploadFixture(t), "image/png")
	require.NoError(t, err)

	assert.NotEqual(t, first.Image, second.Image, "every upload gets a fresh batch ID")
}

func TestPipelineProcessRejectsUnsupportedFormat(t *testing.T) {
	host := mocks.NewMockMediaStore()
	pipeline := media.NewPipeline(host, "products", nil)

	_, err := pipeline.Process(context.Background(), uploadFixture(t), "image/gif")
	assert.ErrorIs(t, err, media.ErrUnsupportedFormat)
	assert.Empty(t, host.Uploads(), "nothing is uploaded for rejected formats")
}

func TestPipelineProcessPartialFailureDestroysStray(t *testing.T) {
	host := mocks.NewMockMediaStore()
	host.FailThumbnail = true
	pipeline := media.NewPipeline(host, "products", nil)

	_, err := pipeline.Process(context.Background(), uploadFixture(t), "image/png")
	require.ErrorIs(t, err, media.ErrAssetUpload)

	deletes := host.Deletes()
	require.Len(t, deletes, 1, "the landed display derivative must be destroyed")
	assert.False(t, strings.HasSuffix(deletes[0], "_thumb"))
	assert.Empty(t, host.Uploads(), "no derivative survives a failed batch")
}

func TestPipelineProcessTotalFailure(t *testing.T) {
	host := mocks.NewMockMediaStore()
	host.FailDisplay = true
	host.FailThumbnail = true
	pipeline := media.NewPipeline(host, "products", nil)

	_, err := pipeline.Process(context.Background(), uploadFixture(t), "image/png")
	require.ErrorIs(t, err, media.ErrAssetUpload)
	assert.Empty(t, host.Deletes(), "nothing landed, nothing to destroy")
}

func TestPipelineRemove(t *testing.T) {
	t.Run("destroys both derivatives", func(t *testing.T) {
		host := mocks.NewMockMediaStore()
		pipeline := media.NewPipeline(host, "products", nil)

		pipeline.Remove(context.Background(),
			"https://cdn.test/demo/image/upload/v1/products/batch1.jpg",
			"https://cdn.test/demo/image/upload/v1/products/batch1_thumb.jpg")

		assert.Equal(t, []string{"products/batch1", "products/batch1_thumb"}, host.Deletes())
	})

	t.Run("skips empty and unusable URLs", func(t *testing.T) {
		host := mocks.NewMockMediaStore()
		pipeline := media.NewPipeline(host, "products", nil)

		pipeline.Remove(context.Background(), "", "https://cdn.test/loneseg.jpg")

		assert.Empty(t, host.Deletes())
	})

	t.Run("swallows host failures", func(t *testing.T) {
		host := mocks.NewMockMediaStore()
		host.DeleteErr = errors.New("remote unavailable")
		pipeline := media.NewPipeline(host, "products", nil)

		pipeline.Remove(context.Background(),
			"https://cdn.test/demo/image/upload/v1/products/batch1.jpg")

		assert.Len(t, host.Deletes(), 1, "the delete is still attempted")
	})
}
