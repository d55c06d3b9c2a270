package render

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// FileSink persists rendered images. The format is inferred from the file
// extension:
//   - ".png"          → PNG image
//   - ".jpg"/".jpeg"  → JPEG image
//   - ".bmp"          → BMP image
type FileSink struct{}

// NewFileSink creates an image file sink.
func NewFileSink() *FileSink {
	return &FileSink{}
}

// Save implements generator.ImageSink. OS errors are returned unwrapped
// enough for the caller to classify them (fs.ErrPermission stays
// reachable through the chain).
func (s *FileSink) Save(img image.Image, path string) error {
	encode, err := encoderFor(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

func encoderFor(path string) (func(io.Writer, image.Image) error, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return png.Encode, nil
	case ".jpg", ".jpeg":
		return func(w io.Writer, img image.Image) error {
			return jpeg.Encode(w, img, nil)
		}, nil
	case ".bmp":
		return bmp.Encode, nil
	default:
		return nil, fmt.Errorf("unsupported image format %q: use .png, .jpg or .bmp", ext)
	}
}
