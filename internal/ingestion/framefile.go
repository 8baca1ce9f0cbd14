package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"reciperoll/internal/frame"
)

// Frame dumps are raw Y planes, one file per frame, named
// <frame_number>_<timestamp_ms>_<width>x<height>.y
// The decoder that produced them owns the naming; this loader only parses
// it back.

// parseFrameFileName splits a dump file name into its frame metadata.
func parseFrameFileName(name string) (frameNumber, timestampMs uint64, width, height int, err error) {
	base := strings.TrimSuffix(name, ".y")
	parts := strings.Split(base, "_")
	if len(parts) != 3 {
		return 0, 0, 0, 0, fmt.Errorf("malformed frame file name: %s", name)
	}

	frameNumber, err = strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("bad frame number in %s: %w", name, err)
	}
	timestampMs, err = strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("bad timestamp in %s: %w", name, err)
	}

	dims := strings.Split(parts[2], "x")
	if len(dims) != 2 {
		return 0, 0, 0, 0, fmt.Errorf("bad dimensions in %s", name)
	}
	width, err = strconv.Atoi(dims[0])
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("bad width in %s: %w", name, err)
	}
	height, err = strconv.Atoi(dims[1])
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("bad height in %s: %w", name, err)
	}

	return frameNumber, timestampMs, width, height, nil
}

// LoadFrameDir reads every .y dump in a directory and returns the frames
// ordered by frame number. Files whose size does not match their declared
// dimensions are skipped, without a log message, rather than failing the
// batch.
func LoadFrameDir(dir string) ([]frame.LumaFrame, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read frame directory: %w", err)
	}

	var frames []frame.LumaFrame
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".y") {
			continue
		}

		frameNumber, timestampMs, width, height, err := parseFrameFileName(entry.Name())
		if err != nil {
			return nil, err
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read frame %s: %w", entry.Name(), err)
		}
		if len(data) != width*height {
			// Truncated dump; the analyzer would degrade it to no-text
			// anyway, so leave it out entirely.
			continue
		}

		frames = append(frames, frame.LumaFrame{
			Width:       width,
			Height:      height,
			Y:           data,
			TimestampMs: timestampMs,
			FrameNumber: frameNumber,
		})
	}

	sort.Slice(frames, func(i, j int) bool {
		return frames[i].FrameNumber < frames[j].FrameNumber
	})

	return frames, nil
}
