package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/tuomas-lb/blockxform/internal/imgutil"
	"github.com/tuomas-lb/blockxform/internal/pixel"
	"github.com/tuomas-lb/blockxform/pkg/blockxform"
)

// usageError marks bad arguments; main exits with 2 for these
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func main() {
	log.SetFlags(0)
	log.SetPrefix("blockxform: ")

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	var err error
	switch os.Args[1] {
	case "run":
		err = runProcess(os.Args[2:])
	case "inspect":
		err = runInspect(os.Args[2:])
	case "-h", "-help", "--help", "help":
		usage()
		return
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fail(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: blockxform <command> [args]")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  run     -in input.png -out output.png [-fit none|stretch|fill] [-workers N] [-weight bt601|average|green] [-format png|jpg|bmp|tiff] [-q 90]")
	fmt.Fprintln(os.Stderr, "  inspect -in input.png [-block 0] [-fit none|stretch|fill] [-weight bt601|average|green]")
}

func fail(err error) {
	log.Print(err)
	var ue usageError
	if errors.As(err, &ue) || errors.Is(err, flag.ErrHelp) {
		os.Exit(2)
	}
	os.Exit(1)
}

// commonFlags registers the options shared by every subcommand
func commonFlags(fs *flag.FlagSet) (in, fit, weight *string) {
	in = fs.String("in", "", "input image (png, jpg, gif, bmp, tiff, webp)")
	fit = fs.String("fit", "none", "resize mode for images that are not 720x480: none, stretch or fill")
	weight = fs.String("weight", "bt601", "RGB to intensity weighting: bt601, average or green")
	return in, fit, weight
}

func buildOptions(fit, weight string) (*blockxform.Options, error) {
	opts := blockxform.DefaultOptions()
	mode, err := imgutil.ParseFitMode(fit)
	if err != nil {
		return nil, usageError{err.Error()}
	}
	w, err := pixel.ParseWeight(weight)
	if err != nil {
		return nil, usageError{err.Error()}
	}
	opts.Fit = mode
	opts.Weight = w
	return opts, nil
}

func runProcess(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	inPath, fit, weight := commonFlags(fs)
	outPath := fs.String("out", "", "output image")
	workers := fs.Int("workers", 0, "worker goroutines (0 = number of CPUs)")
	format := fs.String("format", "", "output format: png, jpg, bmp or tiff (default: from -out extension, else input format)")
	q := fs.Int("q", 90, "JPEG quality")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return usageError{err.Error()}
	}
	if *inPath == "" || *outPath == "" {
		return usageError{"missing required arguments"}
	}
	if *q < 1 || *q > 100 {
		return usageError{fmt.Sprintf("quality %d not in [1, 100]", *q)}
	}

	opts, err := buildOptions(*fit, *weight)
	if err != nil {
		return err
	}
	opts.Workers = *workers
	opts.JPEGQuality = *q
	opts.OutputFormat = *format
	if opts.OutputFormat == "" {
		if ext := filepath.Ext(*outPath); len(ext) > 1 && imgutil.CanEncode(ext[1:]) {
			opts.OutputFormat = ext[1:]
		}
	}

	stats, err := blockxform.ProcessFile(filepath.Clean(*inPath), filepath.Clean(*outPath), opts)
	if err != nil {
		return err
	}
	log.Printf("%s: %d blocks, forward outputs in [%d, %d]", *outPath, stats.Blocks, stats.Extremes.Min, stats.Extremes.Max)
	return nil
}

func runInspect(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	inPath, fit, weight := commonFlags(fs)
	blocks := blockxform.FrameBlocks()
	index := fs.Int("block", 0, fmt.Sprintf("block index in [0, %d), row-major over the frame", blocks))
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return usageError{err.Error()}
	}
	if *inPath == "" {
		return usageError{"missing required arguments"}
	}
	if *index < 0 || *index >= blocks {
		return usageError{fmt.Sprintf("block %d not in [0, %d)", *index, blocks)}
	}

	opts, err := buildOptions(*fit, *weight)
	if err != nil {
		return err
	}

	tr, err := blockxform.InspectFile(filepath.Clean(*inPath), *index, opts)
	if err != nil {
		return err
	}
	_, err = tr.WriteTo(os.Stdout)
	return err
}
