package frame

import "testing"

func uniformFrame(frameNumber uint64, tsMs uint64, width, height int) LumaFrame {
	y := make([]byte, width*height)
	for i := range y {
		y[i] = 80
	}
	return LumaFrame{Width: width, Height: height, Y: y, TimestampMs: tsMs, FrameNumber: frameNumber}
}

// edgesFrame produces a checkerboard-stripe pattern dense enough in bright
// edges and stroke transitions to register as text.
func edgesFrame(frameNumber uint64, tsMs uint64, width, height int) LumaFrame {
	y := make([]byte, width*height)
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			v := byte(0)
			if col%4 == 0 || row%4 == 0 {
				v = 255
			}
			y[row*width+col] = v
		}
	}
	return LumaFrame{Width: width, Height: height, Y: y, TimestampMs: tsMs, FrameNumber: frameNumber}
}

func TestProcessBatchEmpty(t *testing.T) {
	e := New()
	out := e.ProcessBatch(nil)
	if len(out) != 0 {
		t.Fatalf("expected no keyframes, got %d", len(out))
	}
	stats := e.Stats()
	if stats.ProcessedFrames != 0 || stats.ExtractedFrames != 0 {
		t.Fatalf("expected zero stats, got %+v", stats)
	}
}

func TestProcessBatchUniformFramesOnly(t *testing.T) {
	e := New()
	frames := []LumaFrame{
		uniformFrame(1, 0, 100, 100),
		uniformFrame(2, 100, 100, 100),
		uniformFrame(3, 200, 100, 100),
	}
	out := e.ProcessBatch(frames)
	if len(out) != 0 {
		t.Fatalf("expected 0 keyframes for uniform frames, got %d", len(out))
	}
	stats := e.Stats()
	if stats.ProcessedFrames != 3 || stats.ExtractedFrames != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestProcessBatchTextFramesWithDuplicates(t *testing.T) {
	e := New()
	frames := []LumaFrame{
		edgesFrame(1, 0, 200, 200),
		edgesFrame(2, 100, 200, 200),
		edgesFrame(3, 200, 200, 200),
	}
	out := e.ProcessBatch(frames)
	if len(out) != 1 {
		t.Fatalf("expected exactly 1 keyframe, got %d", len(out))
	}
	if out[0].FrameNumber != 1 {
		t.Fatalf("expected frame 1 to be kept, got frame %d", out[0].FrameNumber)
	}
}

func TestProcessBatchAlternatingNoTextText(t *testing.T) {
	e := New()
	frames := []LumaFrame{
		uniformFrame(1, 0, 200, 200),
		edgesFrame(2, 100, 200, 200),
		uniformFrame(3, 200, 200, 200),
		edgesFrame(4, 300, 200, 200),
	}
	out := e.ProcessBatch(frames)
	if len(out) < 1 {
		t.Fatalf("expected at least 1 keyframe, got %d", len(out))
	}
	stats := e.Stats()
	if stats.ProcessedFrames != 4 {
		t.Fatalf("expected processedFrames=4, got %d", stats.ProcessedFrames)
	}
}

func TestProcessBatchTimeForcedKeep(t *testing.T) {
	e := New()
	// 100 identical text frames at 100ms spacing: spans one max-interval
	// window, so exactly the first frame plus one time-forced keep.
	frames := make([]LumaFrame, 0, 100)
	for i := 0; i < 100; i++ {
		frames = append(frames, edgesFrame(uint64(i+1), uint64(i)*100, 200, 200))
	}
	out := e.ProcessBatch(frames)
	if len(out) != 2 {
		t.Fatalf("expected exactly 2 keyframes (first + time-forced), got %d", len(out))
	}
	if out[1].TimestampMs-out[0].TimestampMs <= maxKeyframeIntervalMs {
		t.Fatalf("second keyframe should be time-forced: got interval %d", out[1].TimestampMs-out[0].TimestampMs)
	}
}

func TestProcessBatchTimeForcedKeepRepeats(t *testing.T) {
	e := New()
	// Over several interval windows, identical text frames keep being
	// re-emitted at just over the max interval.
	frames := make([]LumaFrame, 0, 200)
	for i := 0; i < 200; i++ {
		frames = append(frames, edgesFrame(uint64(i+1), uint64(i)*100, 200, 200))
	}
	out := e.ProcessBatch(frames)
	if len(out) < 3 {
		t.Fatalf("expected repeated time-forced keeps over 20s, got %d", len(out))
	}
	for i := 1; i < len(out); i++ {
		interval := out[i].TimestampMs - out[i-1].TimestampMs
		if interval <= maxKeyframeIntervalMs {
			t.Fatalf("keep %d not time-forced: interval %d", i, interval)
		}
	}
}

func TestProcessBatchPreservesOrderAndSubset(t *testing.T) {
	e := New()
	frames := []LumaFrame{
		uniformFrame(1, 0, 100, 100),
		edgesFrame(2, 50, 100, 100),
		edgesFrame(3, 100, 100, 100),
	}
	out := e.ProcessBatch(frames)
	if len(out) > len(frames) {
		t.Fatalf("output longer than input")
	}
	for i := 1; i < len(out); i++ {
		if out[i].TimestampMs < out[i-1].TimestampMs {
			t.Fatalf("keyframes out of order: %v", out)
		}
	}
}

func TestResetClearsStats(t *testing.T) {
	e := New()
	e.ProcessBatch([]LumaFrame{uniformFrame(1, 0, 50, 50)})
	e.Reset()
	stats := e.Stats()
	if stats.ProcessedFrames != 0 || stats.ExtractedFrames != 0 {
		t.Fatalf("expected reset stats, got %+v", stats)
	}
}
