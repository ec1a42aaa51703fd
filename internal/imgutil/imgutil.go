package imgutil

import (
	"bytes"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedFormat is returned by EncodeImage for formats it cannot write
var ErrUnsupportedFormat = errors.New("unsupported format")

// LoadImageFromFile loads an image from a file path
// Returns the image, format string, and any error
func LoadImageFromFile(path string) (image.Image, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to read file")
	}
	return LoadImage(data)
}

// LoadImage decodes PNG, JPEG, GIF, BMP, TIFF or WebP data
// Returns the image, format string, and any error
func LoadImage(data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to decode image")
	}
	return img, format, nil
}

// SaveImageToFile saves an image to a file
func SaveImageToFile(img image.Image, format, path string, quality int) error {
	data, err := EncodeImage(img, format, quality)
	if err != nil {
		return err
	}
	return errors.WithStack(os.WriteFile(path, data, 0644))
}

// CanEncode reports whether EncodeImage supports the format
func CanEncode(format string) bool {
	switch strings.ToLower(format) {
	case "png", "image/png", "jpg", "jpeg", "image/jpeg", "bmp", "image/bmp", "tif", "tiff", "image/tiff":
		return true
	}
	return false
}

// EncodeImage encodes an image to the specified format.
// quality only applies to JPEG.
func EncodeImage(img image.Image, format string, quality int) ([]byte, error) {
	var buf bytes.Buffer

	format = strings.ToLower(format)
	switch format {
	case "png", "image/png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, errors.Wrap(err, "failed to encode PNG")
		}
	case "jpg", "jpeg", "image/jpeg":
		opts := &jpeg.Options{Quality: quality}
		if err := jpeg.Encode(&buf, img, opts); err != nil {
			return nil, errors.Wrap(err, "failed to encode JPEG")
		}
	case "bmp", "image/bmp":
		if err := bmp.Encode(&buf, img); err != nil {
			return nil, errors.Wrap(err, "failed to encode BMP")
		}
	case "tif", "tiff", "image/tiff":
		if err := tiff.Encode(&buf, img, &tiff.Options{Compression: tiff.Deflate}); err != nil {
			return nil, errors.Wrap(err, "failed to encode TIFF")
		}
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%q", format)
	}

	return buf.Bytes(), nil
}

// BlockCount returns the number of whole 8x8 blocks in a width x height image
func BlockCount(width, height int) int {
	blocksAcross := width / 8
	blocksDown := height / 8
	return blocksAcross * blocksDown
}
