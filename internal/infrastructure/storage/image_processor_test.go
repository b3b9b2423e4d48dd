package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}

	buf := new(bytes.Buffer)
	require.NoError(t, jpeg.Encode(buf, img, nil))
	return buf.Bytes()
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestValidateImage(t *testing.T) {
	p := NewImageProcessor()

	assert.NoError(t, p.ValidateImage(encodeJPEG(t, 100, 150)))
	assert.NoError(t, p.ValidateImage(encodePNG(t, 100, 150)))
	assert.Error(t, p.ValidateImage([]byte("not an image at all")))
}

func TestValidateImageSizeLimit(t *testing.T) {
	p := NewImageProcessor()
	p.MaxSize = 64

	err := p.ValidateImage(encodeJPEG(t, 100, 150))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "limit")
}

func TestProcessPosterCropsToPosterRatio(t *testing.T) {
	p := NewImageProcessor()

	tests := []struct {
		name         string
		w, h         int
		wantW, wantH int
	}{
		{"square crops width", 600, 600, 400, 600},
		{"wide crops width", 900, 600, 400, 600},
		{"tall crops height", 400, 900, 400, 600},
		{"already 2:3 untouched", 400, 600, 400, 600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := p.ProcessPoster(encodeJPEG(t, tt.w, tt.h))
			require.NoError(t, err)

			cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
			require.NoError(t, err)
			assert.Equal(t, "jpeg", format)
			assert.Equal(t, tt.wantW, cfg.Width)
			assert.Equal(t, tt.wantH, cfg.Height)
		})
	}
}

func TestProcessPosterAcceptsPNG(t *testing.T) {
	p := NewImageProcessor()

	out, err := p.ProcessPoster(encodePNG(t, 300, 450))
	require.NoError(t, err)

	_, format, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
}

func TestProcessPosterRejectsGarbage(t *testing.T) {
	p := NewImageProcessor()
	_, err := p.ProcessPoster([]byte("garbage"))
	assert.Error(t, err)
}
