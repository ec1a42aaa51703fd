package quant

import "github.com/tuomas-lb/blockxform/internal/dst"

// Shift is the number of low-order bits discarded from every coefficient
const Shift = 5

// Quantize coarsens coefficients by an arithmetic right shift.
// This is the lossy step: the discarded bits are gone for good.
func Quantize(c *dst.Coeffs, l *dst.Levels) {
	for x := 0; x < dst.Size; x++ {
		for y := 0; y < dst.Size; y++ {
			l[x][y] = c[x][y] >> Shift
		}
	}
}

// Dequantize restores the coefficient scale by a left shift. Levels that
// came from Quantize always fit; anything larger saturates instead of
// wrapping.
func Dequantize(l *dst.Levels, c *dst.Coeffs) {
	for x := 0; x < dst.Size; x++ {
		for y := 0; y < dst.Size; y++ {
			c[x][y] = dst.Clamp16(int32(l[x][y]) << Shift)
		}
	}
}
