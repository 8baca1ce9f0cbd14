package legacy

import "testing"

func numberedFrame(width, height int, fill byte, frameNumber uint64) Frame {
	f := fillFrame(width, height, fill)
	f.FrameNumber = frameNumber
	f.TimestampMs = frameNumber * 500 // spaced past the dedup force interval
	return f
}

func TestExtractorFullPipeline(t *testing.T) {
	config := DefaultExtractionConfig()
	config.StateConfig.MinLockFrames = 1
	config.StateConfig.CooldownFrames = 3

	extractor := NewFrameExtractorWithConfig(config)
	detector := MockTextDetectorWithFixedFrames([]uint64{5, 10, 15})

	extracted := 0
	for i := uint64(1); i <= 20; i++ {
		frame := numberedFrame(100, 100, byte(i*10), i)
		if result := extractor.ProcessFrame(frame, detector); result != nil {
			extracted++
			if result.FrameInfo.FrameNumber != i {
				t.Fatalf("result frame number %d, want %d", result.FrameInfo.FrameNumber, i)
			}
		}
	}

	if extracted != 3 {
		t.Fatalf("expected 3 extracted frames, got %d", extracted)
	}
}

func TestExtractorRespectsCooldown(t *testing.T) {
	config := DefaultExtractionConfig()
	config.StateConfig.MinLockFrames = 1
	config.StateConfig.CooldownFrames = 10
	config.StateConfig.InitialSkip = 2

	extractor := NewFrameExtractorWithConfig(config)
	detector := MockTextDetectorWithPattern(func(n uint64) bool { return n == 5 || n == 6 })

	extracted := 0
	for i := uint64(1); i <= 20; i++ {
		frame := numberedFrame(100, 100, byte(i*20), i)
		if extractor.ProcessFrame(frame, detector) != nil {
			extracted++
		}
	}

	if extracted != 1 {
		t.Fatalf("expected 1 extraction (frame 6 inside cooldown), got %d", extracted)
	}
}

func TestExtractorDiffFilterRejectsStaticFrames(t *testing.T) {
	config := DefaultExtractionConfig()
	config.StateConfig.MinLockFrames = 1

	extractor := NewFrameExtractorWithConfig(config)
	detector := MockTextDetectorWithPattern(func(uint64) bool { return true })

	extracted := 0
	for i := uint64(1); i <= 10; i++ {
		// Identical content every frame: only the first passes the diff
		// filter.
		frame := numberedFrame(100, 100, 128, i)
		if extractor.ProcessFrame(frame, detector) != nil {
			extracted++
		}
	}

	if extracted != 1 {
		t.Fatalf("expected only the first static frame extracted, got %d", extracted)
	}
}

func TestExtractorReset(t *testing.T) {
	extractor := NewFrameExtractor()
	detector := MockTextDetectorWithPattern(func(uint64) bool { return true })

	for i := uint64(1); i <= 10; i++ {
		frame := numberedFrame(100, 100, byte(i*25), i)
		extractor.ProcessFrame(frame, detector)
	}

	if extractor.FrameCount() == 0 {
		t.Fatal("expected nonzero frame count before reset")
	}

	extractor.Reset()

	if extractor.FrameCount() != 0 {
		t.Fatalf("expected zero frame count after reset, got %d", extractor.FrameCount())
	}
	if extractor.ExtractedCount() != 0 {
		t.Fatalf("expected empty dedup history after reset, got %d", extractor.ExtractedCount())
	}
}

func TestExtractorYFramePath(t *testing.T) {
	config := DefaultExtractionConfig()
	config.StateConfig.MinLockFrames = 1

	extractor := NewFrameExtractorWithConfig(config)
	detector := MockTextDetectorWithPattern(func(uint64) bool { return true })

	y := make([]byte, 64*64)
	for i := range y {
		y[i] = byte(i % 255)
	}

	result := extractor.ProcessYFrame(64, 64, y, detector, 1000, 1)
	if result == nil {
		t.Fatal("expected first text Y frame to be extracted")
	}
	if result.FrameInfo.Width != 64 || result.FrameInfo.TimestampMs != 1000 {
		t.Fatalf("unexpected frame info: %+v", result.FrameInfo)
	}
}

func TestRawFrameConversionBounds(t *testing.T) {
	raw := RawFrame{
		Width:  64,
		Height: 64,
		Y:      make([]byte, 64*64),
		U:      make([]byte, 32*32),
		V:      make([]byte, 32*32),
	}
	for i := range raw.Y {
		raw.Y[i] = 128
	}
	for i := range raw.U {
		raw.U[i] = 128
		raw.V[i] = 128
	}

	frame := raw.ToRGBA()
	if frame.Width != 64 || frame.Height != 64 {
		t.Fatalf("unexpected dimensions: %dx%d", frame.Width, frame.Height)
	}
	if len(frame.Data) != 64*64*4 {
		t.Fatalf("unexpected RGBA length: %d", len(frame.Data))
	}
	// Neutral chroma: gray output.
	if frame.Data[0] != 128 || frame.Data[1] != 128 || frame.Data[2] != 128 || frame.Data[3] != 255 {
		t.Fatalf("neutral YUV should convert to gray: %v", frame.Data[:4])
	}
}
