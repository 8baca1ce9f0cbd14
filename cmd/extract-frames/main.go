package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"reciperoll/internal/frame"
	"reciperoll/internal/ingestion"
)

func main() {
	var (
		inputDir  = flag.String("i", "", "Directory of raw luma frame dumps (<n>_<ts>_<w>x<h>.y)")
		outputDir = flag.String("o", "keyframes", "Output directory for keyframe JPEGs")
		verbose   = flag.Bool("v", false, "Verbose output")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -i frames/ -o keyframes/\n", os.Args[0])
	}

	flag.Parse()

	if *inputDir == "" {
		fmt.Fprintf(os.Stderr, "Error: Input directory is required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	frames, err := ingestion.LoadFrameDir(*inputDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to load frames: %v\n", err)
		os.Exit(1)
	}
	if *verbose {
		fmt.Fprintf(os.Stderr, "Loaded %d frames from %s\n", len(frames), *inputDir)
	}

	extractor := frame.New()
	keyframes := extractor.ProcessBatch(frames)

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	for _, kf := range keyframes {
		if len(kf.JPEGData) == 0 {
			fmt.Fprintf(os.Stderr, "Warning: frame %d produced no JPEG payload\n", kf.FrameNumber)
			continue
		}
		path := filepath.Join(*outputDir, fmt.Sprintf("%06d_%d.jpg", kf.FrameNumber, kf.TimestampMs))
		if err := os.WriteFile(path, kf.JPEGData, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to write %s: %v\n", path, err)
			os.Exit(1)
		}
		if *verbose {
			fmt.Fprintf(os.Stderr, "  kept frame %d @ %dms (confidence %.2f)\n",
				kf.FrameNumber, kf.TimestampMs, kf.Confidence)
		}
	}

	stats := extractor.Stats()
	fmt.Printf("Processed %d frames, extracted %d keyframes\n",
		stats.ProcessedFrames, stats.ExtractedFrames)
}
