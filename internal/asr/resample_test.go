package asr

import (
	"math"
	"testing"
)

func TestResampleIdentityAt16k(t *testing.T) {
	input := []float32{0.1, -0.2, 0.3, -0.4, 0.5}
	out, err := ResampleTo16kMono(input, 16000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != len(input) {
		t.Fatalf("identity resample changed length: %d -> %d", len(input), len(out))
	}
	for i := range input {
		if out[i] != input[i] {
			t.Fatalf("identity resample changed sample %d: %v -> %v", i, input[i], out[i])
		}
	}
}

func TestResampleRejectsZeroRate(t *testing.T) {
	_, err := ResampleTo16kMono([]float32{0}, 0)
	if err == nil {
		t.Fatal("expected error for zero input rate")
	}
	if !IsKind(err, KindResample) {
		t.Fatalf("expected resample error kind, got %v", err)
	}
}

func TestDownsampleByFactorLength(t *testing.T) {
	tests := []struct {
		inLen, factor, wantLen int
	}{
		{10, 2, 5},
		{11, 2, 6}, // trailing partial run averaged
		{9, 3, 3},
		{10, 3, 4},
	}
	for _, tt := range tests {
		input := make([]float32, tt.inLen)
		out := downsampleByFactor(input, tt.factor)
		if len(out) != tt.wantLen {
			t.Errorf("downsampleByFactor(len=%d, factor=%d) length = %d, want %d",
				tt.inLen, tt.factor, len(out), tt.wantLen)
		}
	}
}

func TestResample32kToneRoundTrip(t *testing.T) {
	// 1 kHz tone at 32 kHz, well inside the passband after halving.
	const inRate = 32000
	const freq = 1000.0
	input := make([]float32, inRate) // 1 second
	for i := range input {
		input[i] = float32(0.8 * math.Sin(2*math.Pi*freq*float64(i)/inRate))
	}

	out, err := ResampleTo16kMono(input, inRate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantLen := (len(input) + 1) / 2
	if len(out) != wantLen {
		t.Fatalf("box-averaged output length = %d, want %d", len(out), wantLen)
	}

	// Peak amplitude preserved within the averaging filter's passband
	// attenuation at 1 kHz (cos(pi*f/fs) ~ 0.995).
	var peak float64
	for _, v := range out {
		if a := math.Abs(float64(v)); a > peak {
			peak = a
		}
	}
	if peak < 0.75 || peak > 0.85 {
		t.Fatalf("tone amplitude not preserved: peak = %v, want ~0.8", peak)
	}
}

func TestSincResampleRate(t *testing.T) {
	// 44100 -> 16000 takes the sinc path; a DC signal must come out at
	// (approximately) unity gain and the rate-converted length.
	const inRate = 44100
	input := make([]float32, inRate/2)
	for i := range input {
		input[i] = 0.5
	}

	out, err := ResampleTo16kMono(input, inRate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantLen := int(float64(len(input)) * 16000.0 / float64(inRate))
	if len(out) != wantLen {
		t.Fatalf("sinc output length = %d, want %d", len(out), wantLen)
	}

	// Ignore the filter's warm-up and tail regions.
	for i := sincLen; i < len(out)-sincLen; i++ {
		if math.Abs(float64(out[i])-0.5) > 0.02 {
			t.Fatalf("DC gain off at sample %d: %v", i, out[i])
		}
	}
}

func TestExtractSegmentLength(t *testing.T) {
	samples := make([]float32, 16000)
	for i := range samples {
		samples[i] = float32(i) / 16000.0
	}

	extracted := ExtractSegment(samples, 16000, SpeechSegment{Start: 0.5, End: 1.0})
	if len(extracted) != 8000 {
		t.Fatalf("extracted length = %d, want 8000", len(extracted))
	}
	if extracted[0] != samples[8000] {
		t.Fatalf("extracted window misaligned: got %v, want %v", extracted[0], samples[8000])
	}
}

func TestExtractSegmentClamps(t *testing.T) {
	samples := make([]float32, 1000)

	extracted := ExtractSegment(samples, 16000, SpeechSegment{Start: 0, End: 10})
	if len(extracted) != len(samples) {
		t.Fatalf("out-of-range end should clamp to buffer: got %d", len(extracted))
	}

	extracted = ExtractSegment(samples, 16000, SpeechSegment{Start: 5, End: 10})
	if len(extracted) != 0 {
		t.Fatalf("fully out-of-range segment should be empty: got %d", len(extracted))
	}
}
