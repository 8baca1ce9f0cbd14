package frame

import (
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Extractor is the primary, batch-oriented keyframe extractor. It is the
// recommended entry point; the single-frame pipeline in package legacy
// exists only as an RGBA compatibility shim.
type Extractor struct {
	mu              sync.Mutex
	processedFrames uint64
	extractedFrames uint64
}

// New creates an Extractor with its counters at zero.
func New() *Extractor {
	return &Extractor{}
}

type frameWork struct {
	tile     croppedTile
	analysis regionAnalysis
	frame    LumaFrame
}

// ProcessBatch returns the subset of frames whose subtitle content changed
// relative to the last kept frame, plus text frames that arrive more than
// maxKeyframeIntervalMs after the last kept one. Cropping and region analysis for every
// frame run concurrently, bounded by GOMAXPROCS; the keep/drop fold that
// follows is strictly serial and is the only code that touches last-kept
// state or the statistics counters.
func (e *Extractor) ProcessBatch(frames []LumaFrame) []Keyframe {
	n := len(frames)
	if n == 0 {
		return nil
	}

	work := make([]frameWork, n)

	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range frames {
		i := i
		g.Go(func() error {
			f := frames[i]
			tile := cropLumaTile(f.Y, f.Width, f.Height, batchTopCropRatio, batchBottomCropRatio)
			work[i] = frameWork{
				tile:     tile,
				analysis: analyzeRegion(tile, 0, 100),
				frame:    f,
			}
			return nil
		})
	}
	_ = g.Wait() // analysis never fails; malformed frames degrade to no-text

	var (
		keyframes    []Keyframe
		lastContent  *regionAnalysis
		lastKeptMs   uint64
		haveLastKept bool
	)

	for _, w := range work {
		changed := hasRegionChanged(lastContent, w.analysis)
		timeForced := haveLastKept &&
			w.frame.TimestampMs > lastKeptMs &&
			w.frame.TimestampMs-lastKeptMs > maxKeyframeIntervalMs &&
			w.analysis.hasText

		if !changed && !timeForced {
			continue
		}

		jpegData := compressToJPEG(w.tile)
		keyframes = append(keyframes, Keyframe{
			TimestampMs: w.frame.TimestampMs,
			FrameNumber: w.frame.FrameNumber,
			Confidence:  confidenceFor(w.analysis),
			JPEGData:    jpegData,
			Width:       w.tile.width,
			Height:      w.tile.height,
		})

		analysisCopy := w.analysis
		lastContent = &analysisCopy
		lastKeptMs = w.frame.TimestampMs
		haveLastKept = true
	}

	e.mu.Lock()
	e.processedFrames += uint64(n)
	e.extractedFrames += uint64(len(keyframes))
	e.mu.Unlock()

	return keyframes
}

// confidenceFor is presence-based: text frames at full confidence,
// non-text frames (kept when text disappears after a kept text frame) at
// zero.
func confidenceFor(a regionAnalysis) float32 {
	if a.hasText {
		return 1.0
	}
	return 0.0
}

// Stats returns a snapshot of the lifetime processed/extracted counters.
func (e *Extractor) Stats() ExtractionStats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return ExtractionStats{ProcessedFrames: e.processedFrames, ExtractedFrames: e.extractedFrames}
}

// Reset zeroes the lifetime counters.
func (e *Extractor) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.processedFrames = 0
	e.extractedFrames = 0
}
