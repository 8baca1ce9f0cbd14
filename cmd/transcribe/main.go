package main

import (
	"flag"
	"fmt"
	"os"

	"reciperoll/internal/asr"
)

func main() {
	var (
		inputFile  = flag.String("i", "", "Input audio file (WAV format)")
		outputFile = flag.String("o", "", "Output file (default: stdout)")
		modelsDir  = flag.String("models", "models", "Models directory (containing sherpa-ncnn/ and silero-vad/)")
		lang       = flag.String("lang", "", "Language hint (accepted for compatibility, ignored)")
		verbose    = flag.Bool("v", false, "Verbose output")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -i audio.wav\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -i audio.wav -o transcript.txt\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -i audio.wav -models /opt/reciperoll/models\n", os.Args[0])
	}

	flag.Parse()

	if *inputFile == "" {
		fmt.Fprintf(os.Stderr, "Error: Input file is required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	if _, err := os.Stat(*inputFile); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error: Input file not found: %s\n", *inputFile)
		os.Exit(1)
	}

	if *verbose {
		fmt.Fprintf(os.Stderr, "Loading models from: %s\n", *modelsDir)
	}

	recognizer, err := asr.NewRecognizer(*modelsDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to create recognizer: %v\n", err)
		fmt.Fprintf(os.Stderr, "\nHint: the models directory must contain sherpa-ncnn/ (encoder,\n")
		fmt.Fprintf(os.Stderr, "decoder, joiner, tokens.txt) and silero-vad/ (silero_vad.onnx)\n")
		os.Exit(1)
	}
	defer recognizer.Close()

	if *verbose {
		fmt.Fprintf(os.Stderr, "Transcribing: %s\n", *inputFile)
	}

	var onProgress asr.ProgressCallback
	if *verbose {
		onProgress = func(pct int, step string) {
			fmt.Fprintf(os.Stderr, "  %3d%% %s\n", pct, step)
		}
	}

	transcript, err := recognizer.TranscribeAudio(*inputFile, *lang, onProgress)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Transcription failed: %v\n", err)
		os.Exit(1)
	}

	output := transcript.String()

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, []byte(output), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to write output file: %v\n", err)
			os.Exit(1)
		}
		if *verbose {
			fmt.Fprintf(os.Stderr, "Output written to: %s\n", *outputFile)
		}
	} else {
		fmt.Println(output)
	}
}
