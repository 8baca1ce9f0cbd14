package asr

import (
	"log"
	"sync"

	sherpa "github.com/k2-fsa/sherpa-onnx-go/sherpa_onnx"
)

// Recognizer owns one ASR engine and one VAD engine, loaded from a models
// directory at construction and released by Close. The underlying engines
// are not re-entrant, so all recognition is serialized through a mutex.
type Recognizer struct {
	config *Config
	vad    *VAD

	mu         sync.Mutex
	recognizer *sherpa.OfflineRecognizer
}

// NewRecognizer loads the ASR and VAD models from modelsDir, which must
// contain sherpa-ncnn/ and silero-vad/ subdirectories.
func NewRecognizer(modelsDir string) (*Recognizer, error) {
	config, err := NewConfig(modelsDir)
	if err != nil {
		return nil, err
	}
	return NewRecognizerWithConfig(config)
}

// NewRecognizerWithConfig loads the engines from an already-resolved
// configuration.
func NewRecognizerWithConfig(config *Config) (*Recognizer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	log.Printf("Loading ASR model from: %s (threads=%d)", config.ModelsDir, config.NumThreads)

	sherpaConfig := sherpa.OfflineRecognizerConfig{
		FeatConfig: sherpa.FeatureConfig{
			SampleRate: config.SampleRate,
			FeatureDim: 80,
		},
		ModelConfig: sherpa.OfflineModelConfig{
			Transducer: sherpa.OfflineTransducerModelConfig{
				Encoder: config.EncoderPath,
				Decoder: config.DecoderPath,
				Joiner:  config.JoinerPath,
			},
			Tokens:     config.TokensPath,
			NumThreads: config.NumThreads,
			Debug:      0,
		},
		DecodingMethod: config.DecodingMethod,
		MaxActivePaths: config.MaxActivePaths,
	}

	recognizer := sherpa.NewOfflineRecognizer(&sherpaConfig)
	if recognizer == nil {
		return nil, newError(KindModelLoad, "failed to create offline recognizer from %s", config.ModelsDir)
	}

	vad, err := NewVAD(config.VADModelPath)
	if err != nil {
		sherpa.DeleteOfflineRecognizer(recognizer)
		return nil, err
	}

	return &Recognizer{
		config:     config,
		recognizer: recognizer,
		vad:        vad,
	}, nil
}

// Transcribe runs the ASR engine over one PCM window and returns the raw
// transcribed text (possibly empty). Samples must be 16 kHz mono f32 in
// [-1, 1]. The lang parameter is accepted for API compatibility and
// ignored.
func (r *Recognizer) Transcribe(samples []float32, sampleRate int, lang string) (string, error) {
	if sampleRate != targetRate {
		return "", newError(KindEngine, "invalid sample rate: %dHz (expected 16000Hz)", sampleRate)
	}

	// The engine rejects very short input with an invalid-shape error;
	// under 0.1 s there is nothing worth decoding anyway.
	if len(samples) < sampleRate/10 {
		return "", nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.recognizer == nil {
		return "", newError(KindNotInitialized, "recognizer already closed")
	}

	stream := sherpa.NewOfflineStream(r.recognizer)
	if stream == nil {
		return "", newError(KindEngine, "failed to create stream")
	}
	defer sherpa.DeleteOfflineStream(stream)

	stream.AcceptWaveform(sampleRate, samples)
	r.recognizer.Decode(stream)

	result := stream.GetResult()
	if result == nil {
		return "", nil
	}
	return result.Text, nil
}

// Close releases the ASR and VAD engines.
func (r *Recognizer) Close() error {
	r.mu.Lock()
	if r.recognizer != nil {
		sherpa.DeleteOfflineRecognizer(r.recognizer)
		r.recognizer = nil
	}
	r.mu.Unlock()

	if r.vad != nil {
		return r.vad.Close()
	}
	return nil
}
