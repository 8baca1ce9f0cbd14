package asr

import (
	"os"
	"path/filepath"
	"runtime"
)

// Config holds the configuration for the ASR recognizer and VAD engines.
// A models directory is expected to contain two subdirectories:
//
//	sherpa-ncnn/  - transducer model (encoder, decoder, joiner, tokens.txt)
//	silero-vad/   - Silero VAD model
type Config struct {
	ModelsDir    string // Base directory holding the model subdirectories
	EncoderPath  string // Path to the encoder model
	DecoderPath  string // Path to the decoder model
	JoinerPath   string // Path to the joiner model
	TokensPath   string // Path to tokens.txt
	VADModelPath string // Path to the Silero VAD model

	NumThreads     int    // Number of threads for inference
	SampleRate     int    // Audio sample rate (always 16000)
	DecodingMethod string // greedy_search or modified_beam_search
	MaxActivePaths int    // Beam width for modified_beam_search
}

const (
	asrSubdir = "sherpa-ncnn"
	vadSubdir = "silero-vad"
)

// NewConfig builds a Config from a models directory, probing for the model
// files under the sherpa-ncnn/ and silero-vad/ subdirectories. The ncnn
// file names are probed first, then onnx variants (for the encoder and
// joiner, int8-quantized before full precision).
func NewConfig(modelsDir string) (*Config, error) {
	asrDir := filepath.Join(modelsDir, asrSubdir)
	if _, err := os.Stat(asrDir); err != nil {
		return nil, wrapError(KindModelLoad, err, "ASR model directory not found: %s", asrDir)
	}
	vadDir := filepath.Join(modelsDir, vadSubdir)
	if _, err := os.Stat(vadDir); err != nil {
		return nil, wrapError(KindModelLoad, err, "VAD model directory not found: %s", vadDir)
	}

	config := &Config{
		ModelsDir:      modelsDir,
		NumThreads:     defaultNumThreads(),
		SampleRate:     16000,
		DecodingMethod: "greedy_search",
		MaxActivePaths: 4,
	}

	encoderPath := findModelFile(asrDir, []string{
		"encoder_jit_trace-pnnx.ncnn.param",
		"encoder-epoch-99-avg-1.int8.onnx",
		"encoder.int8.onnx",
		"encoder-epoch-99-avg-1.onnx",
		"encoder.onnx",
	})
	if encoderPath == "" {
		return nil, newError(KindModelLoad, "encoder model not found in %s", asrDir)
	}
	config.EncoderPath = encoderPath

	decoderPath := findModelFile(asrDir, []string{
		"decoder_jit_trace-pnnx.ncnn.param",
		"decoder-epoch-99-avg-1.onnx",
		"decoder.onnx",
	})
	if decoderPath == "" {
		return nil, newError(KindModelLoad, "decoder model not found in %s", asrDir)
	}
	config.DecoderPath = decoderPath

	joinerPath := findModelFile(asrDir, []string{
		"joiner_jit_trace-pnnx.ncnn.param",
		"joiner-epoch-99-avg-1.int8.onnx",
		"joiner.int8.onnx",
		"joiner-epoch-99-avg-1.onnx",
		"joiner.onnx",
	})
	if joinerPath == "" {
		return nil, newError(KindModelLoad, "joiner model not found in %s", asrDir)
	}
	config.JoinerPath = joinerPath

	tokensPath := findModelFile(asrDir, []string{"tokens.txt"})
	if tokensPath == "" {
		return nil, newError(KindModelLoad, "tokens.txt not found in %s", asrDir)
	}
	config.TokensPath = tokensPath

	vadPath := findModelFile(vadDir, []string{"silero_vad.onnx", "silero-vad.onnx", "vad.onnx"})
	if vadPath == "" {
		return nil, newError(KindModelLoad, "VAD model not found in %s", vadDir)
	}
	config.VADModelPath = vadPath

	return config, nil
}

// Validate checks that all resolved model files still exist on disk.
func (c *Config) Validate() error {
	files := map[string]string{
		"encoder": c.EncoderPath,
		"decoder": c.DecoderPath,
		"joiner":  c.JoinerPath,
		"tokens":  c.TokensPath,
		"vad":     c.VADModelPath,
	}

	for name, path := range files {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return newError(KindModelLoad, "%s file not found: %s", name, path)
		}
	}

	return nil
}

// defaultNumThreads caps inference threads at 4 regardless of core count;
// the engine scales poorly beyond that on mobile-class hardware.
func defaultNumThreads() int {
	n := runtime.NumCPU()
	if n > 4 {
		n = 4
	}
	if n < 1 {
		n = 1
	}
	return n
}

// findModelFile searches for a model file in the given directory.
// Returns the first matching file path or empty string if not found.
func findModelFile(dir string, candidates []string) string {
	for _, candidate := range candidates {
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
