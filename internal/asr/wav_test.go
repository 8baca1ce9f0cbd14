package asr

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// writeTestWav writes a minimal PCM-16 WAV file with interleaved samples.
func writeTestWav(t *testing.T, path string, sampleRate int, channels int, samples []int16) {
	t.Helper()

	dataSize := len(samples) * 2
	buf := make([]byte, 0, 44+dataSize)

	le := binary.LittleEndian
	u16 := func(v uint16) []byte { b := make([]byte, 2); le.PutUint16(b, v); return b }
	u32 := func(v uint32) []byte { b := make([]byte, 4); le.PutUint32(b, v); return b }

	buf = append(buf, []byte("RIFF")...)
	buf = append(buf, u32(uint32(36+dataSize))...)
	buf = append(buf, []byte("WAVE")...)
	buf = append(buf, []byte("fmt ")...)
	buf = append(buf, u32(16)...)
	buf = append(buf, u16(1)...) // PCM
	buf = append(buf, u16(uint16(channels))...)
	buf = append(buf, u32(uint32(sampleRate))...)
	buf = append(buf, u32(uint32(sampleRate*channels*2))...)
	buf = append(buf, u16(uint16(channels*2))...)
	buf = append(buf, u16(16)...)
	buf = append(buf, []byte("data")...)
	buf = append(buf, u32(uint32(dataSize))...)
	for _, s := range samples {
		buf = append(buf, u16(uint16(s))...)
	}

	if err := os.WriteFile(path, buf, 0644); err != nil {
		t.Fatalf("failed to write test WAV: %v", err)
	}
}

func TestLoadWavMono(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mono.wav")
	writeTestWav(t, path, 16000, 1, []int16{0, 16384, -16384, 32767})

	samples, err := LoadWavMonoF32(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(samples) != 4 {
		t.Fatalf("expected 4 samples, got %d", len(samples))
	}
	want := []float32{0, 16384.0 / 32767.0, -16384.0 / 32767.0, 1.0}
	for i := range want {
		if math.Abs(float64(samples[i]-want[i])) > 1e-6 {
			t.Errorf("sample %d = %v, want %v", i, samples[i], want[i])
		}
	}
}

func TestLoadWavStereoMixdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stereo.wav")
	// Interleaved L/R pairs: mixdown averages them.
	writeTestWav(t, path, 16000, 2, []int16{1000, 3000, -2000, -4000})

	samples, err := LoadWavMonoF32(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("expected 2 mixed samples, got %d", len(samples))
	}
	want := []float32{2000.0 / 32767.0, -3000.0 / 32767.0}
	for i := range want {
		if math.Abs(float64(samples[i]-want[i])) > 1e-6 {
			t.Errorf("sample %d = %v, want %v", i, samples[i], want[i])
		}
	}
}

func TestLoadWavResamplesNon16k(t *testing.T) {
	path := filepath.Join(t.TempDir(), "32k.wav")
	raw := make([]int16, 3200)
	for i := range raw {
		raw[i] = 8000
	}
	writeTestWav(t, path, 32000, 1, raw)

	samples, err := LoadWavMonoF32(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(samples) != 1600 {
		t.Fatalf("expected resample to halve length: got %d, want 1600", len(samples))
	}
}

func TestLoadWavRejectsZeroSampleRate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zero.wav")
	writeTestWav(t, path, 0, 1, []int16{1, 2, 3})

	_, err := LoadWavMonoF32(path)
	if err == nil {
		t.Fatal("expected error for zero sample rate")
	}
	if !IsKind(err, KindWav) {
		t.Fatalf("expected wav error kind, got %v", err)
	}
}

func TestLoadWavMissingFile(t *testing.T) {
	_, err := LoadWavMonoF32(filepath.Join(t.TempDir(), "nope.wav"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !IsKind(err, KindIO) {
		t.Fatalf("expected io error kind, got %v", err)
	}
}

func TestLoadWavRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.wav")
	if err := os.WriteFile(path, []byte("this is not a wav file at all"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadWavMonoF32(path)
	if err == nil {
		t.Fatal("expected error for non-WAV content")
	}
	if !IsKind(err, KindWav) {
		t.Fatalf("expected wav error kind, got %v", err)
	}
}
