package asr

import (
	"log"
	"sync"

	sherpa "github.com/k2-fsa/sherpa-onnx-go/sherpa_onnx"
)

// vadChunkSize is the chunk size fed to the VAD engine (16000 samples =
// 1 second at 16 kHz).
const vadChunkSize = 16000

// SpeechSegment is one detected speech region, in seconds from the start
// of the waveform.
type SpeechSegment struct {
	Start float32 `json:"start"`
	End   float32 `json:"end"`
}

// VAD wraps the Silero voice-activity detector. The engine is stateful and
// not re-entrant; all access is serialized through a mutex.
type VAD struct {
	mu  sync.Mutex
	vad *sherpa.VoiceActivityDetector
}

// NewVAD loads the Silero VAD model from modelPath.
func NewVAD(modelPath string) (*VAD, error) {
	log.Printf("Initializing Silero VAD with model: %s", modelPath)

	config := sherpa.VadModelConfig{
		SileroVad: sherpa.SileroVadModelConfig{
			Model:              modelPath,
			Threshold:          0.5,
			MinSilenceDuration: 0.5,
			MinSpeechDuration:  0.25,
			WindowSize:         512,
		},
		SampleRate: targetRate,
		NumThreads: 2,
		Debug:      0,
	}

	vad := sherpa.NewVoiceActivityDetector(&config, 60)
	if vad == nil {
		return nil, newError(KindEngine, "failed to create VAD from %s", modelPath)
	}

	return &VAD{vad: vad}, nil
}

// DetectSpeechSegments runs the full waveform through the VAD and returns
// the detected speech regions in chronological order. The engine is
// drained before feeding so state from a previous call cannot leak in.
// When nothing is detected, a single segment covering the whole waveform
// is returned so downstream ASR still sees the audio.
func (v *VAD) DetectSpeechSegments(samples []float32, sampleRate int) ([]SpeechSegment, error) {
	if sampleRate != targetRate {
		return nil, newError(KindResample, "VAD requires 16000Hz sample rate, got %dHz", sampleRate)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.vad == nil {
		return nil, newError(KindNotInitialized, "VAD engine already closed")
	}

	totalSamples := len(samples)
	totalDuration := float32(totalSamples) / float32(sampleRate)
	log.Printf("Running Silero VAD on %.1fs audio (%d samples)", totalDuration, totalSamples)

	for !v.vad.IsEmpty() {
		v.vad.Pop()
	}

	for start := 0; start < totalSamples; start += vadChunkSize {
		end := start + vadChunkSize
		if end > totalSamples {
			end = totalSamples
		}
		v.vad.AcceptWaveform(samples[start:end])
	}

	// Flush to close out the last segment.
	v.vad.Flush()

	var segments []SpeechSegment
	for !v.vad.IsEmpty() {
		seg := v.vad.Front()
		v.vad.Pop()

		start := float32(seg.Start) / float32(sampleRate)
		end := (float32(seg.Start) + float32(len(seg.Samples))) / float32(sampleRate)
		if end > totalDuration {
			end = totalDuration
		}
		segments = append(segments, SpeechSegment{Start: start, End: end})
	}

	log.Printf("Silero VAD: %d speech segments found", len(segments))

	if len(segments) == 0 {
		log.Printf("No speech detected, using full audio as single segment")
		return []SpeechSegment{{Start: 0, End: totalDuration}}, nil
	}

	return segments, nil
}

// ExtractSegment slices the PCM window for a segment, with both endpoints
// clamped to the sample buffer.
func ExtractSegment(samples []float32, sampleRate int, segment SpeechSegment) []float32 {
	startSample := int(segment.Start * float32(sampleRate))
	endSample := int(segment.End * float32(sampleRate))

	if startSample > len(samples) {
		startSample = len(samples)
	}
	if endSample > len(samples) {
		endSample = len(samples)
	}
	if endSample < startSample {
		endSample = startSample
	}

	out := make([]float32, endSample-startSample)
	copy(out, samples[startSample:endSample])
	return out
}

// Close releases the VAD engine.
func (v *VAD) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.vad != nil {
		sherpa.DeleteVoiceActivityDetector(v.vad)
		v.vad = nil
	}
	return nil
}
