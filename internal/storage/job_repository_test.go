package storage

import (
	"context"
	"path/filepath"
	"testing"

	"reciperoll/internal/models"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestJobLifecycle(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	sources := NewSourceRepository(db)
	jobs := NewJobRepository(db)

	source := &models.Source{Type: models.SourceTypeAudio, FilePath: "/tmp/a.wav"}
	if err := sources.Create(ctx, source); err != nil {
		t.Fatalf("create source: %v", err)
	}

	job := &models.ProcessingJob{SourceID: source.ID, Type: models.JobTypeTranscribe, Priority: models.JobPriorityNormal}
	if err := jobs.Create(ctx, job); err != nil {
		t.Fatalf("create job: %v", err)
	}
	if job.ID == "" {
		t.Fatal("create should assign an ID")
	}

	next, err := jobs.GetNextQueued(ctx)
	if err != nil {
		t.Fatalf("get next queued: %v", err)
	}
	if next == nil || next.ID != job.ID {
		t.Fatalf("expected queued job %s, got %+v", job.ID, next)
	}
	if next.Status != models.JobStatusQueued {
		t.Fatalf("expected queued status, got %s", next.Status)
	}

	if err := jobs.Start(ctx, job.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := jobs.UpdateProgressWithStep(ctx, job.ID, 50, "transcribing"); err != nil {
		t.Fatalf("update progress: %v", err)
	}

	got, err := jobs.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got.Status != models.JobStatusRunning || got.Progress != 50 || got.CurrentStep != "transcribing" {
		t.Fatalf("unexpected running job state: %+v", got)
	}
	if got.StartedAt == nil {
		t.Fatal("expected started_at to be set")
	}

	if err := jobs.Complete(ctx, job.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}
	got, _ = jobs.GetByID(ctx, job.ID)
	if got.Status != models.JobStatusCompleted || got.Progress != 100 || got.CompletedAt == nil {
		t.Fatalf("unexpected completed job state: %+v", got)
	}

	// No queued jobs remain.
	next, err = jobs.GetNextQueued(ctx)
	if err != nil {
		t.Fatalf("get next queued: %v", err)
	}
	if next != nil {
		t.Fatalf("expected empty queue, got %+v", next)
	}
}

func TestJobRetryAndFail(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	jobs := NewJobRepository(db)

	job := &models.ProcessingJob{Type: models.JobTypeExtractFrames}
	if err := jobs.Create(ctx, job); err != nil {
		t.Fatalf("create job: %v", err)
	}

	if err := jobs.Start(ctx, job.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := jobs.Retry(ctx, job.ID); err != nil {
		t.Fatalf("retry: %v", err)
	}

	got, _ := jobs.GetByID(ctx, job.ID)
	if got.Status != models.JobStatusQueued || got.RetryCount != 1 {
		t.Fatalf("unexpected retried job state: %+v", got)
	}
	if got.StartedAt != nil {
		t.Fatal("retry should clear started_at")
	}

	if err := jobs.Fail(ctx, job.ID, "model not found"); err != nil {
		t.Fatalf("fail: %v", err)
	}
	got, _ = jobs.GetByID(ctx, job.ID)
	if got.Status != models.JobStatusFailed || got.Error != "model not found" {
		t.Fatalf("unexpected failed job state: %+v", got)
	}
}

func TestJobPriorityOrdering(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	jobs := NewJobRepository(db)

	batch := &models.ProcessingJob{Type: models.JobTypeTranscribe, Priority: models.JobPriorityBatch}
	immediate := &models.ProcessingJob{Type: models.JobTypeTranscribe, Priority: models.JobPriorityImmediate}
	if err := jobs.Create(ctx, batch); err != nil {
		t.Fatal(err)
	}
	if err := jobs.Create(ctx, immediate); err != nil {
		t.Fatal(err)
	}

	next, err := jobs.GetNextQueued(ctx)
	if err != nil {
		t.Fatalf("get next queued: %v", err)
	}
	if next.ID != immediate.ID {
		t.Fatalf("expected immediate-priority job first, got %+v", next)
	}
}

func TestArtifactRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	sources := NewSourceRepository(db)
	artifacts := NewArtifactRepository(db)

	source := &models.Source{Type: models.SourceTypeVideo, FilePath: "/tmp/frames"}
	if err := sources.Create(ctx, source); err != nil {
		t.Fatal(err)
	}

	artifact := &models.ProcessingArtifact{
		SourceID: source.ID,
		Type:     models.ArtifactTypeKeyframe,
		FilePath: "/tmp/frames/keyframe_1.jpg",
		Metadata: `{"timestamp_ms":1000,"frame_number":1}`,
	}
	if err := artifacts.Create(ctx, artifact); err != nil {
		t.Fatalf("create artifact: %v", err)
	}

	list, err := artifacts.GetBySourceID(ctx, source.ID)
	if err != nil {
		t.Fatalf("get by source: %v", err)
	}
	if len(list) != 1 || list[0].Type != models.ArtifactTypeKeyframe {
		t.Fatalf("unexpected artifacts: %+v", list)
	}

	if err := artifacts.DeleteBySourceID(ctx, source.ID); err != nil {
		t.Fatalf("delete by source: %v", err)
	}
	list, _ = artifacts.GetBySourceID(ctx, source.ID)
	if len(list) != 0 {
		t.Fatalf("expected no artifacts after delete, got %d", len(list))
	}
}
