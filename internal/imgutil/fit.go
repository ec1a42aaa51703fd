package imgutil

import (
	"image"
	"strings"

	"github.com/disintegration/gift"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

// FitMode selects how an image of the wrong size is brought to the frame size
type FitMode int

const (
	// FitNone leaves the image untouched; the caller rejects a mismatch
	FitNone FitMode = iota
	// FitStretch scales both axes independently to the target size
	FitStretch
	// FitFill scales preserving aspect ratio and crops the overflow around the center
	FitFill
)

// ErrUnknownFitMode is returned by ParseFitMode for unrecognised names
var ErrUnknownFitMode = errors.New("unknown fit mode")

func (m FitMode) String() string {
	switch m {
	case FitNone:
		return "none"
	case FitStretch:
		return "stretch"
	case FitFill:
		return "fill"
	default:
		return "unknown"
	}
}

// ParseFitMode maps "none", "stretch" or "fill" to a FitMode
func ParseFitMode(s string) (FitMode, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return FitNone, nil
	case "stretch":
		return FitStretch, nil
	case "fill":
		return FitFill, nil
	default:
		return FitNone, errors.Wrapf(ErrUnknownFitMode, "%q", s)
	}
}

// Fit resizes img to width x height according to mode.
// Images already at the target size are returned as is.
func Fit(img image.Image, width, height int, mode FitMode) image.Image {
	b := img.Bounds()
	if mode == FitNone || (b.Dx() == width && b.Dy() == height) {
		return img
	}

	switch mode {
	case FitStretch:
		return resize.Resize(uint(width), uint(height), img, resize.Lanczos3)
	case FitFill:
		g := gift.New(gift.ResizeToFill(width, height, gift.LanczosResampling, gift.CenterAnchor))
		dst := image.NewRGBA(g.Bounds(b))
		g.Draw(dst, img)
		return dst
	default:
		return img
	}
}
