package pixel

import "github.com/pkg/errors"

// ErrUnknownWeight is returned by ParseWeight for unrecognised names
var ErrUnknownWeight = errors.New("unknown luma weight")

// WeightFunc reduces the three channels of a pixel to one intensity
type WeightFunc func(r, g, b uint8) float64

// BT601 is the luma weighting Y = 0.299*R + 0.587*G + 0.114*B
func BT601(r, g, b uint8) float64 {
	return 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
}

// Average weights the three channels equally
func Average(r, g, b uint8) float64 {
	return (float64(r) + float64(g) + float64(b)) / 3
}

// Green uses the green channel alone
func Green(_, g, _ uint8) float64 {
	return float64(g)
}

// ParseWeight maps a weight name ("bt601", "average", "green") to its
// function. The empty string selects BT601.
func ParseWeight(name string) (WeightFunc, error) {
	switch name {
	case "", "bt601":
		return BT601, nil
	case "average":
		return Average, nil
	case "green":
		return Green, nil
	default:
		return nil, errors.Wrapf(ErrUnknownWeight, "%q", name)
	}
}
