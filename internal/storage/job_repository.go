package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"reciperoll/internal/models"
)

// JobRepository はジョブのデータアクセス層
type JobRepository struct {
	db *DB
}

// NewJobRepository は新しいJobRepositoryを作成
func NewJobRepository(db *DB) *JobRepository {
	return &JobRepository{db: db}
}

const jobColumns = `id, COALESCE(source_id, ''), type, status, priority, progress,
	COALESCE(current_step, ''), retry_count, COALESCE(error, ''),
	created_at, started_at, completed_at`

func scanJob(row interface{ Scan(...interface{}) error }) (*models.ProcessingJob, error) {
	var job models.ProcessingJob
	err := row.Scan(
		&job.ID, &job.SourceID, &job.Type, &job.Status, &job.Priority,
		&job.Progress, &job.CurrentStep, &job.RetryCount, &job.Error,
		&job.CreatedAt, &job.StartedAt, &job.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// Create は新しいジョブを作成
func (r *JobRepository) Create(ctx context.Context, job *models.ProcessingJob) error {
	if job.ID == "" {
		job.ID = uuid.New().String()
	}
	job.CreatedAt = time.Now()
	if job.Status == "" {
		job.Status = models.JobStatusQueued
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO processing_jobs
			(id, source_id, type, status, priority, progress, current_step,
			 retry_count, error, created_at, started_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		job.ID, nullIfEmpty(job.SourceID), job.Type, job.Status, job.Priority,
		job.Progress, nullIfEmpty(job.CurrentStep), job.RetryCount,
		nullIfEmpty(job.Error), job.CreatedAt, job.StartedAt, job.CompletedAt,
	)
	return err
}

// GetByID はIDでジョブを取得
func (r *JobRepository) GetByID(ctx context.Context, id string) (*models.ProcessingJob, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+jobColumns+` FROM processing_jobs WHERE id = ?`, id)
	job, err := scanJob(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return job, err
}

// GetNextQueued は次に処理すべきキュー済みジョブを取得（優先度順）
func (r *JobRepository) GetNextQueued(ctx context.Context) (*models.ProcessingJob, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+jobColumns+` FROM processing_jobs
		WHERE status = ?
		ORDER BY priority ASC, created_at ASC
		LIMIT 1`, models.JobStatusQueued)
	job, err := scanJob(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return job, err
}

// Start はジョブを開始状態にする
func (r *JobRepository) Start(ctx context.Context, id string) error {
	now := time.Now()
	_, err := r.db.ExecContext(ctx, `
		UPDATE processing_jobs
		SET status = ?, started_at = ?, progress = 0
		WHERE id = ?`, models.JobStatusRunning, now, id)
	return err
}

// UpdateProgress はジョブの進捗を更新
func (r *JobRepository) UpdateProgress(ctx context.Context, id string, progress int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE processing_jobs SET progress = ? WHERE id = ?`, progress, id)
	return err
}

// UpdateProgressWithStep はジョブの進捗とステップを更新
func (r *JobRepository) UpdateProgressWithStep(ctx context.Context, id string, progress int, step string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE processing_jobs SET progress = ?, current_step = ? WHERE id = ?`,
		progress, step, id)
	return err
}

// Complete はジョブを完了状態にする
func (r *JobRepository) Complete(ctx context.Context, id string) error {
	now := time.Now()
	_, err := r.db.ExecContext(ctx, `
		UPDATE processing_jobs
		SET status = ?, progress = 100, completed_at = ?
		WHERE id = ?`, models.JobStatusCompleted, now, id)
	return err
}

// Fail はジョブを失敗状態にする
func (r *JobRepository) Fail(ctx context.Context, id string, errorMsg string) error {
	now := time.Now()
	_, err := r.db.ExecContext(ctx, `
		UPDATE processing_jobs
		SET status = ?, error = ?, completed_at = ?
		WHERE id = ?`, models.JobStatusFailed, errorMsg, now, id)
	return err
}

// Retry はジョブを再試行キューに戻す
func (r *JobRepository) Retry(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE processing_jobs
		SET status = ?, retry_count = retry_count + 1,
		    started_at = NULL, completed_at = NULL
		WHERE id = ?`, models.JobStatusQueued, id)
	return err
}

// GetBySourceID はソースIDでジョブ一覧を取得
func (r *JobRepository) GetBySourceID(ctx context.Context, sourceID string) ([]models.ProcessingJob, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+jobColumns+` FROM processing_jobs
		WHERE source_id = ?
		ORDER BY created_at DESC`, sourceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJobs(rows)
}

// ListByStatus はステータスでジョブ一覧を取得
func (r *JobRepository) ListByStatus(ctx context.Context, status string, limit int) ([]models.ProcessingJob, error) {
	if limit == 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+jobColumns+` FROM processing_jobs
		WHERE status = ?
		ORDER BY created_at DESC
		LIMIT ?`, status, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJobs(rows)
}

// ListRecent は最近のジョブ一覧を取得
func (r *JobRepository) ListRecent(ctx context.Context, limit int) ([]models.ProcessingJob, error) {
	if limit == 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+jobColumns+` FROM processing_jobs
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJobs(rows)
}

// Delete はジョブを削除
func (r *JobRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM processing_jobs WHERE id = ?`, id)
	return err
}

// CleanupCompleted は完了済みジョブを削除（指定日数より古いもの）
func (r *JobRepository) CleanupCompleted(ctx context.Context, olderThanDays int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -olderThanDays)
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM processing_jobs
		WHERE status = ? AND completed_at < ?`, models.JobStatusCompleted, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// CountByStatus はステータスごとのジョブ数を取得
func (r *JobRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM processing_jobs GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func collectJobs(rows *sql.Rows) ([]models.ProcessingJob, error) {
	var jobs []models.ProcessingJob
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
