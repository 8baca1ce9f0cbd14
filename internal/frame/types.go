// Package frame implements the subtitle-aware keyframe extraction pipeline:
// luma-plane cropping/resampling, text-row detection, region hashing, and a
// keep/drop decision over a batch of video frames.
package frame

// LumaFrame is the Y (luma) channel of one decoded video frame. Width and
// Height are in pixels; Y is row-major, length Width*Height. The caller
// retains ownership across a ProcessBatch call; the extractor only reads it.
type LumaFrame struct {
	Width       int
	Height      int
	Y           []byte
	TimestampMs uint64
	FrameNumber uint64
}

// YUVFrame additionally carries 4:2:0 subsampled U and V planes, each of
// size (Width/2)*(Height/2). Used only by CropAndResizeFrameWithConfig.
type YUVFrame struct {
	Width       int
	Height      int
	Y           []byte
	U           []byte
	V           []byte
	TimestampMs uint64
	FrameNumber uint64
}

// croppedTile is a fixed-size square grayscale buffer produced from a
// LumaFrame by cropLumaTile.
type croppedTile struct {
	data   []byte
	width  int
	height int
}

// regionAnalysis is the transient per-frame record compared against the
// last kept analysis to decide keep/drop.
type regionAnalysis struct {
	hasText bool
	hash    uint16
}

// Keyframe is one emitted output of ProcessBatch.
type Keyframe struct {
	TimestampMs uint64
	FrameNumber uint64
	Confidence  float32
	JPEGData    []byte
	Width       int
	Height      int
}

// ExtractionStats are monotonically increasing counters over the
// Extractor's lifetime, reset only by an explicit Reset call.
type ExtractionStats struct {
	ProcessedFrames uint64
	ExtractedFrames uint64
}

// CroppedFrame is the output of CropAndResizeFrameWithConfig: an RGB byte
// buffer of size OutputSize*OutputSize*3.
type CroppedFrame struct {
	RGBData     []byte
	Width       int
	Height      int
	TimestampMs uint64
	FrameNumber uint64
}

// FrameCropConfig controls CropAndResizeFrameWithConfig. Its defaults
// (0.15/0.20) are intentionally different from the 0.11/0.20 ratios
// hardcoded inside ProcessBatch's internal luma crop; the two crop paths
// are independent.
type FrameCropConfig struct {
	TopCropRatio    float64
	BottomCropRatio float64
	OutputSize      int
}

// DefaultFrameCropConfig is the crop used for multimodal model input.
func DefaultFrameCropConfig() FrameCropConfig {
	return FrameCropConfig{TopCropRatio: 0.15, BottomCropRatio: 0.20, OutputSize: 512}
}

const (
	// tileSize is the fixed output side of the internal analysis tile used
	// by ProcessBatch.
	tileSize = 512
	// Internal batch crop ratios: trim the title/watermark band at the top
	// and the subtitle band at the bottom so the analyzed region is the
	// body of the frame. Distinct from FrameCropConfig's own defaults.
	batchTopCropRatio    = 0.11
	batchBottomCropRatio = 0.20
	// maxKeyframeIntervalMs forces a keep when a text frame arrives this
	// long after the last kept one.
	maxKeyframeIntervalMs = 5000
	// contentHashDistanceThreshold is the popcount threshold above which two
	// region hashes are considered different content.
	contentHashDistanceThreshold = 4
	// jpegQuality is the fixed quality used to encode kept tiles.
	jpegQuality = 70
)
