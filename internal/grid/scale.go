package grid

import (
	"math"

	"github.com/tuomas-lb/blockxform/internal/dst"
)

// ScaleTable holds one divisor per intra-block position, indexed [x][y].
// Reconstruct divides inverse-transform output by it to get back to the
// 0-255 intensity range.
type ScaleTable [dst.Size][dst.Size]float64

// defaultScale is an empirical calibration of the basis gain at each
// position, measured on reference footage. The values are opaque constants
// and are not rederived from the matrix.
var defaultScale = ScaleTable{
	{18.575, 19.0, 19.225, 19.733333333333334, 19.652173913043477, 19.642857142857142, 19.125, 19.05},
	{18.833333333333332, 19.093023255813954, 19.651162790697676, 19.77777777777778, 19.88372093023256, 19.736842105263158, 19.16216216216216, 19.18918918918919},
	{19.47826086956522, 19.76595744680851, 20.041666666666668, 20.083333333333332, 20.025, 19.63888888888889, 19.16216216216216, 19.42105263157895},
	{19.964285714285715, 20.12727272727273, 20.444444444444443, 20.39622641509434, 20.574468085106382, 20.3, 19.952380952380953, 20.113636363636363},
	{19.70967741935484, 19.857142857142858, 20.20967741935484, 20.271186440677965, 20.327272727272728, 19.98, 19.510204081632654, 19.76923076923077},
	{19.761194029850746, 19.791044776119403, 20.176470588235293, 20.227272727272727, 20.225806451612904, 20.05263157894737, 19.683333333333334, 19.746031746031747},
	{19.303030303030305, 19.3768115942029, 19.760563380281692, 19.901408450704224, 20.12857142857143, 19.941176470588236, 19.454545454545453, 19.55072463768116},
	{19.18032786885246, 19.257575757575758, 19.791044776119403, 19.985915492957748, 20.0, 19.742424242424242, 19.348484848484848, 19.36764705882353},
}

// DefaultScale returns a copy of the calibrated table
func DefaultScale() ScaleTable {
	return defaultScale
}

// UnitScale returns a table of ones, which leaves samples untouched
func UnitScale() ScaleTable {
	var s ScaleTable
	for x := range s {
		for y := range s[x] {
			s[x][y] = 1
		}
	}
	return s
}

// Validate checks that every entry is a positive finite number
func (s *ScaleTable) Validate() error {
	for x := range s {
		for y := range s[x] {
			v := s[x][y]
			if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
				return ErrScale
			}
		}
	}
	return nil
}

// Apply converts a block of reconstructed samples to display intensities:
// divide by the table entry, clamp to [0, 255], truncate.
func (s *ScaleTable) Apply(b *dst.Samples) [dst.Size][dst.Size]uint8 {
	var out [dst.Size][dst.Size]uint8
	for x := 0; x < dst.Size; x++ {
		for y := 0; y < dst.Size; y++ {
			out[x][y] = Intensity(b[x][y], s[x][y])
		}
	}
	return out
}

// Intensity divides v by scale and clamps the result to a byte
func Intensity(v int16, scale float64) uint8 {
	f := float64(v) / scale
	if f < 0 || math.IsNaN(f) {
		return 0
	}
	if f > 255 {
		return 255
	}
	return uint8(f)
}
