package legacy

// ExtractionConfig bundles the tunables of the single-frame pipeline.
type ExtractionConfig struct {
	StateConfig    StateConfig
	DiffThreshold  float32
	DedupThreshold int
}

func DefaultExtractionConfig() ExtractionConfig {
	return ExtractionConfig{
		StateConfig:    DefaultStateConfig(),
		DiffThreshold:  0.10,
		DedupThreshold: 8,
	}
}

func HighMotionExtractionConfig() ExtractionConfig {
	return ExtractionConfig{
		StateConfig:    HighMotionStateConfig(),
		DiffThreshold:  0.12,
		DedupThreshold: 10,
	}
}

func LowMotionExtractionConfig() ExtractionConfig {
	return ExtractionConfig{
		StateConfig:    LowMotionStateConfig(),
		DiffThreshold:  0.18,
		DedupThreshold: 6,
	}
}

// ExtractionResult is one extracted frame's metadata and the detector's
// confidence for it.
type ExtractionResult struct {
	FrameInfo  FrameInfo
	Confidence float32
}

// FrameExtractor is the single-frame extraction pipeline: a diff filter in
// front, then text detection and region dedup feeding the state machine.
// It exists for callers that deliver frames one at a time in RGBA or full
// YUV; batch Y-plane callers should use the batch extractor instead.
type FrameExtractor struct {
	diffFilter   *FrameDiffFilter
	stateMachine *StateMachine
	deduplicator *FrameDeduplicator
	config       ExtractionConfig
}

func NewFrameExtractor() *FrameExtractor {
	return NewFrameExtractorWithConfig(DefaultExtractionConfig())
}

func NewFrameExtractorWithConfig(config ExtractionConfig) *FrameExtractor {
	return &FrameExtractor{
		diffFilter:   NewFrameDiffFilterWithThreshold(config.DiffThreshold),
		stateMachine: NewStateMachineWithConfig(config.StateConfig),
		deduplicator: NewFrameDeduplicatorWithThreshold(config.DedupThreshold),
		config:       config,
	}
}

// ProcessFrame runs one RGBA frame through the pipeline. A non-nil result
// means the frame was extracted.
func (e *FrameExtractor) ProcessFrame(frame Frame, detector TextDetector) *ExtractionResult {
	if !e.diffFilter.ShouldProcess(frame) {
		return nil
	}

	detection := detector.Detect(frame)
	isDuplicate := e.deduplicator.IsDuplicate(frame)

	action, _ := e.stateMachine.ProcessFrame(detection.HasText, isDuplicate)
	if action != ActionExtract {
		return nil
	}

	e.deduplicator.Add(frame)
	return &ExtractionResult{
		FrameInfo:  FrameInfoFromFrame(frame),
		Confidence: detection.Confidence,
	}
}

// ProcessRawFrame converts a YUV420 frame to RGBA and processes it.
func (e *FrameExtractor) ProcessRawFrame(raw RawFrame, detector TextDetector) *ExtractionResult {
	return e.ProcessFrame(raw.ToRGBA(), detector)
}

// ProcessYFrame is the Y-plane fast path: detection, diff filtering, and
// dedup all run on the luma plane without an RGBA conversion.
func (e *FrameExtractor) ProcessYFrame(width, height int, yPlane []byte, detector TextDetector, timestampMs, frameNumber uint64) *ExtractionResult {
	detection := detector.DetectYUV(width, height, yPlane)

	if !e.diffFilter.ShouldProcessY(yPlane, width, height) {
		e.stateMachine.ProcessFrame(false, false)
		return nil
	}

	regionHashes := RegionHashesFromYPlane(yPlane, width, height, timestampMs)
	decision := e.deduplicator.CheckDuplicate(regionHashes)

	action, _ := e.stateMachine.ProcessFrame(detection.HasText, decision.IsDuplicate)
	if action != ActionExtract {
		return nil
	}

	return &ExtractionResult{
		FrameInfo: FrameInfo{
			Width:       width,
			Height:      height,
			TimestampMs: timestampMs,
			FrameNumber: frameNumber,
		},
		Confidence: detection.Confidence,
	}
}

// FrameCount is the number of frames fed to the state machine.
func (e *FrameExtractor) FrameCount() uint64 {
	return e.stateMachine.FrameCount()
}

// ExtractedCount is the number of kept frames in the dedup history window.
func (e *FrameExtractor) ExtractedCount() int {
	return e.deduplicator.Len()
}

// Reset clears all pipeline state.
func (e *FrameExtractor) Reset() {
	e.diffFilter.Reset()
	e.stateMachine.Reset()
	e.deduplicator.Clear()
}
