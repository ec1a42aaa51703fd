package blockxform

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/tuomas-lb/blockxform/internal/pixel"
)

// createBenchmarkImage creates a PNG-encoded test image for benchmarking
func createBenchmarkImage(width, height int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r := uint8((x * 255) / width)
			g := uint8((y * 255) / height)
			b := uint8((x + y) * 255 / (width + height))
			img.Set(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func benchmarkProcess(b *testing.B, workers int) {
	img := image.NewRGBA(image.Rect(0, 0, FrameWidth, FrameHeight))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 7)
	}
	buf := pixel.FromImage(img)
	opts := DefaultOptions()
	opts.Workers = workers

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := Process(buf, opts); err != nil {
			b.Fatalf("Process failed: %v", err)
		}
	}
}

func BenchmarkProcess_SingleWorker(b *testing.B) {
	benchmarkProcess(b, 1)
}

func BenchmarkProcess_AllCPUs(b *testing.B) {
	benchmarkProcess(b, 0)
}

func BenchmarkProcessImage_Frame(b *testing.B) {
	imageData := createBenchmarkImage(FrameWidth, FrameHeight)
	opts := DefaultOptions()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := ProcessImage(imageData, opts); err != nil {
			b.Fatalf("ProcessImage failed: %v", err)
		}
	}
}

func BenchmarkProcessImage_Stretch(b *testing.B) {
	imageData := createBenchmarkImage(1280, 720)
	opts := DefaultOptions()
	opts.Fit = FitStretch

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := ProcessImage(imageData, opts); err != nil {
			b.Fatalf("ProcessImage failed: %v", err)
		}
	}
}

func BenchmarkInspect(b *testing.B) {
	buf := pixel.NewBuffer(FrameWidth, FrameHeight)
	opts := DefaultOptions()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Inspect(buf, i%5400, opts); err != nil {
			b.Fatalf("Inspect failed: %v", err)
		}
	}
}
