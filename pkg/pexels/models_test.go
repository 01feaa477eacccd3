package pexels

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pixfetch/pkg/media"
)

func TestPhotoDescriptor(t *testing.T) {
	photo := Photo{
		ID:           12345,
		Photographer: "Alice",
		Alt:          "A mountain at dawn",
		Src: PhotoSrc{
			Original: "https://img/orig.jpg",
			Large:    "https://img/large.jpg",
			Medium:   "https://img/medium.jpg",
			Small:    "https://img/small.jpg",
			Tiny:     "https://img/tiny.jpg",
		},
	}

	d := photo.Descriptor()

	assert.Equal(t, "12345", d.ID)
	assert.Equal(t, "Alice", d.Photographer)
	assert.Equal(t, "A mountain at dawn", d.Alt)
	assert.Equal(t, "https://img/tiny.jpg", d.ThumbnailURL)
	assert.Equal(t, "https://img/orig.jpg", d.URLs[media.ResolutionOriginal])
	assert.Equal(t, "https://img/large.jpg", d.URLs[media.ResolutionLarge])
	assert.Equal(t, "https://img/medium.jpg", d.URLs[media.ResolutionMedium])
	assert.Equal(t, "https://img/small.jpg", d.URLs[media.ResolutionSmall])
}

func TestPhotoDescriptorMissingSizes(t *testing.T) {
	photo := Photo{
		ID:  7,
		Src: PhotoSrc{Original: "https://img/orig.jpg"},
	}

	d := photo.Descriptor()

	assert.Equal(t, "7", d.ID)
	assert.Equal(t, "https://img/orig.jpg", d.URLs[media.ResolutionOriginal])
	_, hasSmall := d.URLs[media.ResolutionSmall]
	_, hasMedium := d.URLs[media.ResolutionMedium]
	_, hasLarge := d.URLs[media.ResolutionLarge]
	assert.False(t, hasSmall)
	assert.False(t, hasMedium)
	assert.False(t, hasLarge)

	// Requested sizes still resolve through the fallback chain
	assert.Equal(t, "https://img/orig.jpg", d.URLFor(media.ResolutionSmall))
}

func TestPhotoDescriptorThumbnailFallback(t *testing.T) {
	photo := Photo{
		ID:  9,
		Src: PhotoSrc{Original: "https://img/orig.jpg", Small: "https://img/small.jpg"},
	}

	assert.Equal(t, "https://img/small.jpg", photo.Descriptor().ThumbnailURL)
}
