package asr

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// SupportedFormats lists audio formats the ingestion layer accepts; any file
// without a .wav extension is converted before transcription.
var SupportedFormats = []string{".mp3", ".m4a", ".aac", ".ogg", ".flac", ".wav", ".webm", ".opus"}

// IsSupportedFormat checks if the file extension is a supported audio format.
func IsSupportedFormat(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, format := range SupportedFormats {
		if ext == format {
			return true
		}
	}
	return false
}

// ConvertToWav converts an audio file to 16 kHz mono WAV via ffmpeg.
func ConvertToWav(inputPath, outputPath string) error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return fmt.Errorf("ffmpeg not found: please install ffmpeg to convert audio files")
	}

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", inputPath)
	}

	outputDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	cmd := exec.Command("ffmpeg",
		"-i", inputPath,
		"-ar", "16000",
		"-ac", "1",
		"-f", "wav",
		"-y",
		outputPath,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg conversion failed: %w\nOutput: %s", err, string(output))
	}

	return nil
}

// ConvertToWavTemp converts an audio file to WAV in the temp directory and
// returns the converted path (caller cleans up).
func ConvertToWavTemp(inputPath string) (string, error) {
	tempDir := os.TempDir()
	baseName := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	outputPath := filepath.Join(tempDir, baseName+"_converted.wav")

	if err := ConvertToWav(inputPath, outputPath); err != nil {
		return "", err
	}

	return outputPath, nil
}

// NeedsConversion reports whether a file must be converted before
// transcription. WAV files are loaded and resampled natively, so only
// non-WAV containers need ffmpeg.
func NeedsConversion(inputPath string) bool {
	return strings.ToLower(filepath.Ext(inputPath)) != ".wav"
}

// GetAudioDuration returns the duration of an audio file in seconds.
func GetAudioDuration(inputPath string) (float64, error) {
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return 0, fmt.Errorf("ffprobe not found: please install ffmpeg")
	}

	cmd := exec.Command("ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "csv=p=0",
		inputPath,
	)

	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("failed to get audio duration: %w", err)
	}

	var duration float64
	_, err = fmt.Sscanf(strings.TrimSpace(string(output)), "%f", &duration)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration: %w", err)
	}

	return duration, nil
}
