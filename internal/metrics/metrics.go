// Package metrics exposes the service's Prometheus instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FramesProcessed counts luma frames fed through the batch extractor.
	FramesProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reciperoll_frames_processed_total",
		Help: "Total number of frames analyzed by the batch extractor",
	})

	// KeyframesExtracted counts frames kept as keyframes.
	KeyframesExtracted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reciperoll_keyframes_extracted_total",
		Help: "Total number of keyframes emitted by the batch extractor",
	})

	// BatchDuration tracks wall-clock time per ProcessBatch call.
	BatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "reciperoll_frame_batch_duration_seconds",
		Help:    "Time spent processing one frame batch",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	})

	// TranscriptionDuration tracks wall-clock time per transcribed file.
	TranscriptionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "reciperoll_transcription_duration_seconds",
		Help:    "Time spent transcribing one audio file",
		Buckets: []float64{1, 2.5, 5, 10, 30, 60, 120, 300},
	})

	// JobsProcessed counts worker job completions by type and outcome.
	JobsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reciperoll_jobs_processed_total",
		Help: "Total number of processed jobs by type and outcome",
	}, []string{"type", "outcome"})
)
