package processing

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	"gallery/config"

	"github.com/nfnt/resize"
)

// ErrBadImage reports input that cannot be decoded as an image.
var ErrBadImage = errors.New("cannot decode image")

// NormalizeImage re-encodes an uploaded image as JPEG at a fixed
// quality, bounded to MAX_IMAGE_DIMENSION on the longer side. Aspect
// ratio is preserved and images are never upscaled, so the output is
// deterministic for a given input and configuration.
func NormalizeImage(reader io.Reader) (data []byte, width, height int, err error) {
	img, _, err := image.Decode(reader)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("%w: %v", ErrBadImage, err)
	}
	bound := uint(config.MAX_IMAGE_DIMENSION)
	newImage := resize.Thumbnail(bound, bound, img, resize.Lanczos3)
	var buf bytes.Buffer
	if err = jpeg.Encode(&buf, newImage, &jpeg.Options{Quality: config.JPEG_QUALITY}); err != nil {
		return nil, 0, 0, err
	}
	rect := newImage.Bounds().Size()
	return buf.Bytes(), rect.X, rect.Y, nil
}
