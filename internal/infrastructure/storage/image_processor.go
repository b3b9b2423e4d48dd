package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/disintegration/imaging"
)

const maxImageSize = 5 * 1024 * 1024 // 5MB

// ImageProcessor validates uploaded images and normalizes posters.
// Validation happens before any storage call so bad files never hit the bucket.
type ImageProcessor struct {
	MaxSize int64
}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{MaxSize: maxImageSize}
}

// ValidateImage accepts JPEG/PNG/WebP up to MaxSize
func (p *ImageProcessor) ValidateImage(data []byte) error {
	if int64(len(data)) > p.MaxSize {
		return fmt.Errorf("image exceeds %dMB limit", p.MaxSize/(1024*1024))
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("not an image: %w", err)
	}
	switch format {
	case "jpeg", "png", "webp":
		return nil
	default:
		return fmt.Errorf("image format %s not allowed (only jpeg/png/webp)", format)
	}
}

// ProcessPoster crops the image to the 2:3 poster aspect ratio and
// re-encodes it as JPEG quality 90.
func (p *ImageProcessor) ProcessPoster(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	// Largest centered 2:3 region that fits the source
	cropW, cropH := w, h
	if w*3 > h*2 {
		cropW = h * 2 / 3
	} else {
		cropH = w * 3 / 2
	}
	cropped := imaging.CropCenter(img, cropW, cropH)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, cropped, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("cannot encode poster: %w", err)
	}
	return buf.Bytes(), nil
}
