package blockxform

import (
	"fmt"
	"io"
	"math"

	"github.com/pkg/errors"

	"github.com/tuomas-lb/blockxform/internal/dst"
	"github.com/tuomas-lb/blockxform/internal/grid"
	"github.com/tuomas-lb/blockxform/internal/imgutil"
	"github.com/tuomas-lb/blockxform/internal/pixel"
	"github.com/tuomas-lb/blockxform/internal/quant"
)

// Trace is the state of one block after every pipeline stage
type Trace struct {
	Index         int
	Samples       dst.Samples
	Coeffs        dst.Coeffs
	Levels        dst.Levels
	Dequantized   dst.Coeffs
	Reconstructed dst.Samples
	// Output is the final intensity per position, indexed [x][y]
	Output [dst.Size][dst.Size]uint8
	// Ratio is Reconstructed / Samples per position; NaN where the sample is 0
	Ratio [dst.Size][dst.Size]float64
	// Extremes covers the forward transform of this block only
	Extremes dst.Extremes
}

// Inspect runs a single block of a 720x480 buffer through the pipeline and
// records each intermediate stage
func Inspect(buf *pixel.Buffer, index int, opts *Options) (*Trace, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := checkFrame(buf); err != nil {
		return nil, err
	}

	if n := imgutil.BlockCount(buf.Width, buf.Height); index < 0 || index >= n {
		return nil, errors.Wrapf(ErrBlockIndex, "%d not in [0, %d)", index, n)
	}

	g, err := grid.Partition(buf, opts.Weight)
	if err != nil {
		return nil, errors.Wrap(err, "failed to partition frame")
	}

	scale := grid.DefaultScale()
	if opts.Scale != nil {
		scale = *opts.Scale
	}
	if err := scale.Validate(); err != nil {
		return nil, err
	}

	tr := &Trace{Index: index, Samples: g.Blocks[index]}
	dst.Forward(&tr.Samples, &tr.Coeffs, &tr.Extremes)
	quant.Quantize(&tr.Coeffs, &tr.Levels)
	quant.Dequantize(&tr.Levels, &tr.Dequantized)
	dst.Inverse(&tr.Dequantized, &tr.Reconstructed)
	tr.Output = scale.Apply(&tr.Reconstructed)

	for x := 0; x < dst.Size; x++ {
		for y := 0; y < dst.Size; y++ {
			orig := tr.Samples[x][y]
			if orig == 0 {
				tr.Ratio[x][y] = math.NaN()
				continue
			}
			tr.Ratio[x][y] = float64(tr.Reconstructed[x][y]) / float64(orig)
		}
	}
	return tr, nil
}

// InspectImage decodes an encoded image and inspects one of its blocks
func InspectImage(input []byte, index int, opts *Options) (*Trace, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	buf, _, err := loadFrame(input, opts.Fit)
	if err != nil {
		return nil, err
	}
	return Inspect(buf, index, opts)
}

// InspectFile loads an image file and inspects one of its blocks
func InspectFile(path string, index int, opts *Options) (*Trace, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	img, _, err := imgutil.LoadImageFromFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load input file")
	}
	return Inspect(frameFromImage(img, opts.Fit), index, opts)
}

// WriteTo prints every stage in image orientation
func (tr *Trace) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	fmt.Fprintf(cw, "block %d\n", tr.Index)
	fmt.Fprintf(cw, "samples:\n%v\n", tr.Samples)
	fmt.Fprintf(cw, "coefficients (min %d, max %d):\n%v\n", tr.Extremes.Min, tr.Extremes.Max, tr.Coeffs)
	fmt.Fprintf(cw, "levels:\n%v\n", tr.Levels)
	fmt.Fprintf(cw, "dequantized:\n%v\n", tr.Dequantized)
	fmt.Fprintf(cw, "reconstructed:\n%v\n", tr.Reconstructed)
	fmt.Fprintln(cw, "ratio:")
	for y := 0; y < dst.Size; y++ {
		for x := 0; x < dst.Size; x++ {
			fmt.Fprintf(cw, "%.4f ", tr.Ratio[x][y])
		}
		fmt.Fprintln(cw)
	}
	fmt.Fprintln(cw, "output:")
	for y := 0; y < dst.Size; y++ {
		for x := 0; x < dst.Size; x++ {
			fmt.Fprintf(cw, "%3d ", tr.Output[x][y])
		}
		fmt.Fprintln(cw)
	}
	return cw.n, cw.err
}

type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.err = err
	return n, err
}
