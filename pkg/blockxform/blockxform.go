package blockxform

import (
	"image"
	"runtime"
	"sync"

	"github.com/pkg/errors"

	"github.com/tuomas-lb/blockxform/internal/dst"
	"github.com/tuomas-lb/blockxform/internal/grid"
	"github.com/tuomas-lb/blockxform/internal/imgutil"
	"github.com/tuomas-lb/blockxform/internal/pixel"
	"github.com/tuomas-lb/blockxform/internal/quant"
)

const (
	// FrameWidth is the only accepted frame width
	FrameWidth = 720
	// FrameHeight is the only accepted frame height
	FrameHeight = 480
)

var (
	// ErrFrameSize indicates a buffer that is not FrameWidth x FrameHeight
	ErrFrameSize = errors.New("frame must be 720x480")
	// ErrBlockIndex indicates an Inspect index outside the grid
	ErrBlockIndex = errors.New("block index out of range")
)

// FrameBlocks returns the number of 8x8 blocks in a frame
func FrameBlocks() int {
	return imgutil.BlockCount(FrameWidth, FrameHeight)
}

// FitMode selects how ProcessImage handles images of another size
type FitMode = imgutil.FitMode

const (
	// FitNone rejects images that are not 720x480
	FitNone = imgutil.FitNone
	// FitStretch resizes both axes to the frame
	FitStretch = imgutil.FitStretch
	// FitFill resizes preserving aspect ratio and crops to the frame
	FitFill = imgutil.FitFill
)

// Options configures a pipeline run
type Options struct {
	// Workers is the number of goroutines sharing the blocks; <= 0 means runtime.NumCPU()
	Workers int
	// Weight reduces RGB to intensity; nil means BT.601 luma
	Weight pixel.WeightFunc
	// Scale divides reconstructed samples; nil means the calibrated default table
	Scale *grid.ScaleTable
	// Fit is applied by ProcessImage before the frame size check
	Fit FitMode
	// OutputFormat is "png", "jpg", "bmp" or "tiff"; empty keeps the input format when it can be written, else PNG
	OutputFormat string
	// JPEGQuality is the JPEG quality (1-100) when the output is JPEG
	JPEGQuality int
}

// DefaultOptions returns the default pipeline options
func DefaultOptions() *Options {
	return &Options{
		Workers:     runtime.NumCPU(),
		Weight:      pixel.BT601,
		Fit:         FitNone,
		JPEGQuality: 90,
	}
}

// Stats summarises a pipeline run
type Stats struct {
	// Blocks is the number of 8x8 blocks processed
	Blocks int
	// Extremes is the range of every 1D forward output over the whole frame
	Extremes dst.Extremes
}

// Process runs the full kernel over a 720x480 buffer: partition, forward
// transform, quantize, dequantize, inverse transform, reconstruct.
// The returned buffer is grayscale replicated into three channels.
func Process(buf *pixel.Buffer, opts *Options) (*pixel.Buffer, *Stats, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := checkFrame(buf); err != nil {
		return nil, nil, err
	}

	g, err := grid.Partition(buf, opts.Weight)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to partition frame")
	}

	ext := transformGrid(g, opts.Workers)

	out, err := grid.Reconstruct(g, opts.Scale)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to reconstruct frame")
	}

	return out, &Stats{Blocks: g.Len(), Extremes: ext}, nil
}

// ProcessImage decodes an encoded image, runs Process and encodes the result
func ProcessImage(input []byte, opts *Options) ([]byte, *Stats, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if input == nil {
		return nil, nil, errors.New("input data required")
	}

	buf, format, err := loadFrame(input, opts.Fit)
	if err != nil {
		return nil, nil, err
	}

	out, stats, err := Process(buf, opts)
	if err != nil {
		return nil, nil, err
	}

	data, err := imgutil.EncodeImage(out.Image(), outputFormat(opts, format), opts.JPEGQuality)
	if err != nil {
		return nil, nil, err
	}
	return data, stats, nil
}

// ProcessFile runs the pipeline from one image file to another
func ProcessFile(inputPath, outputPath string, opts *Options) (*Stats, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	img, format, err := imgutil.LoadImageFromFile(inputPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load input file")
	}

	out, stats, err := Process(frameFromImage(img, opts.Fit), opts)
	if err != nil {
		return nil, err
	}

	if err := imgutil.SaveImageToFile(out.Image(), outputFormat(opts, format), outputPath, opts.JPEGQuality); err != nil {
		return nil, errors.Wrap(err, "failed to write output file")
	}
	return stats, nil
}

// outputFormat picks the encoding: the configured format, else the input
// format when it can be written, else PNG
func outputFormat(opts *Options, inputFormat string) string {
	if opts.OutputFormat != "" {
		return opts.OutputFormat
	}
	if imgutil.CanEncode(inputFormat) {
		return inputFormat
	}
	return "png"
}

func checkFrame(buf *pixel.Buffer) error {
	if buf == nil || buf.Width != FrameWidth || buf.Height != FrameHeight {
		var w, h int
		if buf != nil {
			w, h = buf.Width, buf.Height
		}
		return errors.Wrapf(ErrFrameSize, "got %dx%d", w, h)
	}
	return buf.Validate()
}

func loadFrame(input []byte, fit FitMode) (*pixel.Buffer, string, error) {
	img, format, err := imgutil.LoadImage(input)
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to load image")
	}
	return frameFromImage(img, fit), format, nil
}

func frameFromImage(img image.Image, fit FitMode) *pixel.Buffer {
	return pixel.FromImage(imgutil.Fit(img, FrameWidth, FrameHeight, fit))
}

// transformGrid sends every block through forward, quantize, dequantize
// and inverse in place. Blocks are split into contiguous ranges, one per
// worker, and each worker keeps its own Extremes until the merge.
func transformGrid(g *grid.Grid, workers int) dst.Extremes {
	n := g.Len()
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		var ext dst.Extremes
		for i := range g.Blocks {
			roundTrip(&g.Blocks[i], &ext)
		}
		return ext
	}

	partial := make([]dst.Extremes, workers)
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := min(lo+chunk, n)
		if lo >= hi {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				roundTrip(&g.Blocks[i], &partial[w])
			}
		}()
	}
	wg.Wait()

	var ext dst.Extremes
	for _, p := range partial {
		ext.Merge(p)
	}
	return ext
}

// roundTrip runs one block through the lossy transform chain in place
func roundTrip(b *dst.Samples, ext *dst.Extremes) {
	var coeffs dst.Coeffs
	var levels dst.Levels
	dst.Forward(b, &coeffs, ext)
	quant.Quantize(&coeffs, &levels)
	quant.Dequantize(&levels, &coeffs)
	dst.Inverse(&coeffs, b)
}
