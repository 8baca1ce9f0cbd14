package asr

import (
	"log"
	"strings"
)

// ProgressCallback reports transcription progress as a percentage.
type ProgressCallback func(progressPercent int, currentStep string)

// TranscribeAudio loads a WAV file, detects speech segments with the VAD,
// and transcribes each segment in order. A VAD failure degrades to a
// single whole-file segment; a per-segment ASR failure is logged and the
// segment skipped. Whitespace-only recognition results are dropped.
func (r *Recognizer) TranscribeAudio(path string, lang string, onProgress ProgressCallback) (Transcript, error) {
	reportProgress := func(pct int, step string) {
		if onProgress != nil {
			onProgress(pct, step)
		}
	}

	reportProgress(5, "loading")
	log.Printf("Loading WAV file: %s", path)
	pcm, err := LoadWavMonoF32(path)
	if err != nil {
		return Transcript{}, err
	}
	log.Printf("WAV loaded: %d samples", len(pcm))

	return r.transcribePcm(pcm, targetRate, lang, reportProgress)
}

func (r *Recognizer) transcribePcm(pcm []float32, sampleRate int, lang string, reportProgress func(int, string)) (Transcript, error) {
	pcm16k := pcm
	if sampleRate != targetRate {
		resampled, err := ResampleTo16kMono(pcm, sampleRate)
		if err != nil {
			return Transcript{}, err
		}
		pcm16k = resampled
	}

	reportProgress(15, "detecting speech")
	segments, err := r.vad.DetectSpeechSegments(pcm16k, targetRate)
	if err != nil {
		// Degradation policy, not an error: transcribe the whole file as
		// one segment.
		log.Printf("VAD detection failed (%v), falling back to whole-file segment", err)
		duration := float32(len(pcm16k)) / float32(targetRate)
		segments = []SpeechSegment{{Start: 0, End: duration}}
	}

	log.Printf("Running ASR on %d speech segments", len(segments))

	var transcript Transcript
	for index, segment := range segments {
		reportProgress(20+70*index/len(segments), "transcribing")

		segmentSamples := ExtractSegment(pcm16k, targetRate, segment)

		text, err := r.Transcribe(segmentSamples, targetRate, lang)
		if err != nil {
			log.Printf("Segment %d failed: %v", index+1, err)
			continue
		}

		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		transcript.Lines = append(transcript.Lines, Line{
			Start: segment.Start,
			End:   segment.End,
			Text:  text,
		})
	}

	reportProgress(95, "formatting")
	log.Printf("All segments processed, total lines: %d", len(transcript.Lines))
	return transcript, nil
}
