package pixel

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
)

// Channels is the number of 8-bit channels per pixel in a Buffer
const Channels = 3

// ErrBuffer indicates a Buffer whose Pix and Stride cannot hold Width x Height pixels
var ErrBuffer = errors.New("malformed pixel buffer")

// Buffer is a row-major RGB pixel buffer, three bytes per pixel
type Buffer struct {
	Pix    []uint8
	Width  int
	Height int
	Stride int
}

// NewBuffer allocates a zeroed buffer
func NewBuffer(width, height int) *Buffer {
	stride := width * Channels
	return &Buffer{
		Pix:    make([]uint8, stride*height),
		Width:  width,
		Height: height,
		Stride: stride,
	}
}

// Validate checks that every pixel in Width x Height is addressable
func (b *Buffer) Validate() error {
	if b == nil {
		return errors.Wrap(ErrBuffer, "nil buffer")
	}
	if b.Width <= 0 || b.Height <= 0 {
		return errors.Wrapf(ErrBuffer, "size %dx%d", b.Width, b.Height)
	}
	row := b.Width * Channels
	if b.Stride < row {
		return errors.Wrapf(ErrBuffer, "stride %d shorter than a %d-pixel row", b.Stride, b.Width)
	}
	if need := b.Stride*(b.Height-1) + row; len(b.Pix) < need {
		return errors.Wrapf(ErrBuffer, "%d bytes, need %d", len(b.Pix), need)
	}
	return nil
}

// At returns the channels of the pixel at (x, y)
func (b *Buffer) At(x, y int) (r, g, bl uint8) {
	i := y*b.Stride + x*Channels
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2]
}

// Set stores the channels of the pixel at (x, y)
func (b *Buffer) Set(x, y int, r, g, bl uint8) {
	i := y*b.Stride + x*Channels
	b.Pix[i] = r
	b.Pix[i+1] = g
	b.Pix[i+2] = bl
}

// FromImage copies an image into an RGB buffer, dropping alpha.
// Channels are stored straight (not premultiplied), so translucent pixels
// keep their color.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	buf := NewBuffer(width, height)

	switch src := img.(type) {
	case *image.NRGBA:
		for y := 0; y < height; y++ {
			row := src.Pix[src.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
			dst := buf.Pix[y*buf.Stride:]
			for x := 0; x < width; x++ {
				copy(dst[x*Channels:x*Channels+Channels], row[x*4:x*4+3])
			}
		}
		return buf
	case *image.RGBA:
		for y := 0; y < height; y++ {
			row := src.Pix[src.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
			dst := buf.Pix[y*buf.Stride:]
			for x := 0; x < width; x++ {
				p := row[x*4 : x*4+4]
				if p[3] == 0xff {
					copy(dst[x*Channels:x*Channels+Channels], p[:3])
					continue
				}
				c := color.NRGBAModel.Convert(color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}).(color.NRGBA)
				buf.Set(x, y, c.R, c.G, c.B)
			}
		}
		return buf
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			buf.Set(x, y, c.R, c.G, c.B)
		}
	}
	return buf
}

// Image converts the buffer to an opaque RGBA image
func (b *Buffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			r, g, bl := b.At(x, y)
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: bl, A: 255})
		}
	}
	return img
}
