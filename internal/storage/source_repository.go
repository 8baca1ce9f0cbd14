package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"reciperoll/internal/models"
)

// SourceRepository はソースのデータアクセス層
type SourceRepository struct {
	db *DB
}

// NewSourceRepository は新しいSourceRepositoryを作成
func NewSourceRepository(db *DB) *SourceRepository {
	return &SourceRepository{db: db}
}

const sourceColumns = `id, type, COALESCE(original_url, ''),
	COALESCE(file_path, ''), COALESCE(metadata, ''), created_at, status`

func scanSource(row interface{ Scan(...interface{}) error }) (*models.Source, error) {
	var s models.Source
	err := row.Scan(&s.ID, &s.Type, &s.OriginalURL, &s.FilePath, &s.Metadata,
		&s.CreatedAt, &s.Status)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create は新しいソースを作成
func (r *SourceRepository) Create(ctx context.Context, source *models.Source) error {
	if source.ID == "" {
		source.ID = uuid.New().String()
	}
	source.CreatedAt = time.Now()
	if source.Status == "" {
		source.Status = models.SourceStatusPending
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sources (id, type, original_url, file_path, metadata, created_at, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		source.ID, source.Type, nullIfEmpty(source.OriginalURL),
		nullIfEmpty(source.FilePath), nullIfEmpty(source.Metadata),
		source.CreatedAt, source.Status,
	)
	return err
}

// GetByID はIDでソースを取得
func (r *SourceRepository) GetByID(ctx context.Context, id string) (*models.Source, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+sourceColumns+` FROM sources WHERE id = ?`, id)
	source, err := scanSource(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return source, err
}

// UpdateStatus はソースのステータスを更新
func (r *SourceRepository) UpdateStatus(ctx context.Context, id, status string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE sources SET status = ? WHERE id = ?`, status, id)
	return err
}

// Delete はソースを削除
func (r *SourceRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sources WHERE id = ?`, id)
	return err
}

// List はソース一覧を取得
func (r *SourceRepository) List(ctx context.Context, limit, offset int) ([]models.Source, error) {
	if limit == 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+sourceColumns+` FROM sources
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sources []models.Source
	for rows.Next() {
		s, err := scanSource(rows)
		if err != nil {
			return nil, err
		}
		sources = append(sources, *s)
	}
	return sources, rows.Err()
}
