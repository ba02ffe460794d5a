// Package imaging prepares downloaded images for posting.
package imaging

import (
	"bytes"
	"fmt"
	"image"

	img "github.com/disintegration/imaging"

	"github.com/bluetrivia/bluetrivia/internal/models"
)

const (
	// Posts reject blobs near the 1MB mark; capping width plus JPEG
	// re-encoding keeps backdrops comfortably under it.
	maxWidth = 1000

	DefaultQuality = 85
)

// Prepare decodes an image, scales it down to the posting width when
// needed, and re-encodes it as JPEG at the given quality. Quality
// outside 1..100 falls back to DefaultQuality.
func Prepare(content []byte, quality int) (models.MediaItem, error) {
	if quality < 1 || quality > 100 {
		quality = DefaultQuality
	}

	src, err := img.Decode(bytes.NewReader(content))
	if err != nil {
		return models.MediaItem{}, fmt.Errorf("failed to decode image: %w", err)
	}

	src = shrink(src)

	var buf bytes.Buffer
	if err := img.Encode(&buf, src, img.JPEG, img.JPEGQuality(quality)); err != nil {
		return models.MediaItem{}, fmt.Errorf("failed to encode image: %w", err)
	}

	return models.MediaItem{
		Content:  buf.Bytes(),
		MimeType: "image/jpeg",
	}, nil
}

// PrepareAll runs Prepare over a batch, dropping items that fail to
// decode rather than failing the whole batch
func PrepareAll(items []models.MediaItem, quality int) []models.MediaItem {
	prepared := make([]models.MediaItem, 0, len(items))
	for _, item := range items {
		out, err := Prepare(item.Content, quality)
		if err != nil {
			continue
		}
		out.AltText = item.AltText
		prepared = append(prepared, out)
	}
	return prepared
}

func shrink(src image.Image) image.Image {
	if src.Bounds().Dx() <= maxWidth {
		return src
	}
	return img.Resize(src, maxWidth, 0, img.Lanczos)
}
