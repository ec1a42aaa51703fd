package grid

import (
	"math"

	"github.com/pkg/errors"

	"github.com/tuomas-lb/blockxform/internal/dst"
	"github.com/tuomas-lb/blockxform/internal/pixel"
)

var (
	// ErrDimensions indicates a width or height that is not a positive multiple of 8
	ErrDimensions = errors.New("dimensions must be positive multiples of 8")
	// ErrScale indicates a scale table entry that is zero, negative or not finite
	ErrScale = errors.New("scale table entries must be positive and finite")
)

// Grid is the set of 8x8 sample blocks covering one frame.
// Block (bx, by) is stored at index bx + by*BlocksAcross and owns pixels
// [bx*8, bx*8+8) x [by*8, by*8+8).
type Grid struct {
	Width        int
	Height       int
	BlocksAcross int
	BlocksDown   int
	Blocks       []dst.Samples
}

// NewGrid allocates a zeroed grid for a width x height frame
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 || width%dst.Size != 0 || height%dst.Size != 0 {
		return nil, errors.Wrapf(ErrDimensions, "got %dx%d", width, height)
	}
	across := width / dst.Size
	down := height / dst.Size
	return &Grid{
		Width:        width,
		Height:       height,
		BlocksAcross: across,
		BlocksDown:   down,
		Blocks:       make([]dst.Samples, across*down),
	}, nil
}

// Len returns the number of blocks
func (g *Grid) Len() int {
	return len(g.Blocks)
}

// Block returns the block at grid position (bx, by)
func (g *Grid) Block(bx, by int) *dst.Samples {
	return &g.Blocks[bx+by*g.BlocksAcross]
}

// Locate maps a pixel to its block index and intra-block offset
func (g *Grid) Locate(px, py int) (id, x, y int) {
	return px/dst.Size + (py/dst.Size)*g.BlocksAcross, px % dst.Size, py % dst.Size
}

// Partition splits a pixel buffer into blocks of intensity samples.
// Each pixel is reduced with weight (BT601 when nil) and truncated toward
// zero into an int16. A buffer whose Pix or Stride is too short for its
// size fails with pixel.ErrBuffer.
func Partition(buf *pixel.Buffer, weight pixel.WeightFunc) (*Grid, error) {
	if weight == nil {
		weight = pixel.BT601
	}
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	g, err := NewGrid(buf.Width, buf.Height)
	if err != nil {
		return nil, err
	}

	for py := 0; py < buf.Height; py++ {
		for px := 0; px < buf.Width; px++ {
			r, gr, b := buf.At(px, py)
			id, x, y := g.Locate(px, py)
			g.Blocks[id][x][y] = toSample(weight(r, gr, b))
		}
	}
	return g, nil
}

// Reconstruct turns a grid of reconstructed samples back into a grayscale
// buffer, dividing every sample by its scale entry (DefaultScale when nil)
// and replicating the clamped intensity into all three channels.
func Reconstruct(g *Grid, scale *ScaleTable) (*pixel.Buffer, error) {
	if scale == nil {
		s := DefaultScale()
		scale = &s
	}
	if err := scale.Validate(); err != nil {
		return nil, err
	}
	if g.Len() != g.BlocksAcross*g.BlocksDown || g.Width != g.BlocksAcross*dst.Size || g.Height != g.BlocksDown*dst.Size {
		return nil, errors.Wrapf(ErrDimensions, "grid %dx%d with %d blocks", g.Width, g.Height, g.Len())
	}

	buf := pixel.NewBuffer(g.Width, g.Height)
	for by := 0; by < g.BlocksDown; by++ {
		for bx := 0; bx < g.BlocksAcross; bx++ {
			out := scale.Apply(g.Block(bx, by))
			for x := 0; x < dst.Size; x++ {
				for y := 0; y < dst.Size; y++ {
					v := out[x][y]
					buf.Set(bx*dst.Size+x, by*dst.Size+y, v, v, v)
				}
			}
		}
	}
	return buf, nil
}

// toSample truncates toward zero, saturating at the int16 range; NaN maps to 0
func toSample(v float64) int16 {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt16:
		return math.MaxInt16
	case v <= math.MinInt16:
		return math.MinInt16
	}
	return int16(v)
}
