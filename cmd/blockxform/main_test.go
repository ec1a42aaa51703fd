package main

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuomas-lb/blockxform/internal/imgutil"
	"github.com/tuomas-lb/blockxform/pkg/blockxform"
)

func writeTestImage(t *testing.T, path string, width, height int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 64, A: 255})
		}
	}
	require.NoError(t, imgutil.SaveImageToFile(img, "png", path, 0))
}

func TestBuildOptions(t *testing.T) {
	opts, err := buildOptions("fill", "green")
	require.NoError(t, err)
	assert.Equal(t, blockxform.FitFill, opts.Fit)
	assert.Equal(t, 90, opts.JPEGQuality)

	tests := []struct {
		name   string
		fit    string
		weight string
	}{
		{name: "bad fit", fit: "zoom", weight: "bt601"},
		{name: "bad weight", fit: "none", weight: "rec709"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildOptions(tt.fit, tt.weight)
			var ue usageError
			assert.True(t, errors.As(err, &ue))
		})
	}
}

func TestRunProcess(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.tiff")
	writeTestImage(t, in, 160, 90)

	err := runProcess([]string{"-in", in, "-out", out})
	assert.ErrorIs(t, err, blockxform.ErrFrameSize)

	require.NoError(t, runProcess([]string{"-in", in, "-out", out, "-fit", "stretch", "-workers", "2"}))
	img, format, err := imgutil.LoadImageFromFile(out)
	require.NoError(t, err)
	assert.Equal(t, "tiff", format)
	assert.Equal(t, image.Rect(0, 0, 720, 480), img.Bounds())
}

func TestRunProcessUsage(t *testing.T) {
	tests := [][]string{
		{},
		{"-in", "a.png"},
		{"-in", "a.png", "-out", "b.png", "-q", "0"},
		{"-undefined"},
	}
	for _, args := range tests {
		var ue usageError
		assert.True(t, errors.As(runProcess(args), &ue), "%v", args)
	}
}

func TestRunInspect(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	writeTestImage(t, in, 720, 480)

	var ue usageError
	assert.True(t, errors.As(runInspect([]string{"-in", in, "-block", "5400"}), &ue))
	assert.True(t, errors.As(runInspect(nil), &ue))
	require.NoError(t, runInspect([]string{"-in", in, "-block", "3"}))

	_, err := os.Stat(in)
	require.NoError(t, err)
	assert.ErrorIs(t, runInspect([]string{"-in", filepath.Join(dir, "missing.png")}), os.ErrNotExist)
}
