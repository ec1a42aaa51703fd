package dst

import (
	"fmt"
	"strings"
)

// Size is the edge length of a transform block
const Size = 8

// Block is an 8x8 grid of signed 16-bit values indexed as b[x][y],
// x being the column and y the row inside the block.
// The 2D transform treats the first index as its row axis.
type Block [Size][Size]int16

// Samples holds spatial-domain values (luma or reconstructed samples)
type Samples Block

// Coeffs holds transform coefficients produced by Forward or Dequantize
type Coeffs Block

// Levels holds quantized coefficients
type Levels Block

// String formats the block in image orientation, one row per line,
// each value padded to three columns.
func (b Block) String() string {
	var sb strings.Builder
	sb.WriteString("[ ")
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			fmt.Fprintf(&sb, "%3d, ", b[x][y])
		}
		if y < Size-1 {
			sb.WriteString("\n  ")
		}
	}
	sb.WriteString(" ]")
	return sb.String()
}

func (s Samples) String() string { return Block(s).String() }
func (c Coeffs) String() string  { return Block(c).String() }
func (l Levels) String() string  { return Block(l).String() }

// Clamp16 saturates v to the int16 range
func Clamp16(v int32) int16 {
	if v < -32768 {
		return -32768
	}
	if v > 32767 {
		return 32767
	}
	return int16(v)
}
