package blockxform_test

import (
	"fmt"
	"os"

	"github.com/tuomas-lb/blockxform/internal/pixel"
	"github.com/tuomas-lb/blockxform/pkg/blockxform"
)

func ExampleProcess() {
	buf := pixel.NewBuffer(blockxform.FrameWidth, blockxform.FrameHeight)

	_, stats, err := blockxform.Process(buf, nil)
	if err != nil {
		return
	}
	fmt.Printf("%d blocks, coefficients in [%d, %d]\n", stats.Blocks, stats.Extremes.Min, stats.Extremes.Max)
	// Output: 5400 blocks, coefficients in [0, 0]
}

func ExampleInspect() {
	buf := pixel.NewBuffer(blockxform.FrameWidth, blockxform.FrameHeight)
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			buf.Set(x, y, 0, 128, 0)
		}
	}

	opts := blockxform.DefaultOptions()
	opts.Weight = pixel.Green
	tr, err := blockxform.Inspect(buf, 0, opts)
	if err != nil {
		return
	}
	fmt.Println(tr.Coeffs[0][0], tr.Levels[0][0], tr.Dequantized[0][0])
	// Output: 4050 126 4032
}

func ExampleProcessFile() {
	opts := blockxform.DefaultOptions()
	opts.Fit = blockxform.FitFill
	_, _ = blockxform.ProcessFile("frame.png", os.DevNull, opts)
}
