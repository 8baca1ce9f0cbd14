package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"reciperoll/internal/models"
)

// ArtifactRepository はアーティファクトのデータアクセス層
type ArtifactRepository struct {
	db *DB
}

// NewArtifactRepository は新しいArtifactRepositoryを作成
func NewArtifactRepository(db *DB) *ArtifactRepository {
	return &ArtifactRepository{db: db}
}

const artifactColumns = `id, COALESCE(source_id, ''), type, COALESCE(content, ''),
	COALESCE(format, ''), COALESCE(file_path, ''), COALESCE(metadata, ''), created_at`

func scanArtifact(row interface{ Scan(...interface{}) error }) (*models.ProcessingArtifact, error) {
	var a models.ProcessingArtifact
	err := row.Scan(&a.ID, &a.SourceID, &a.Type, &a.Content, &a.Format,
		&a.FilePath, &a.Metadata, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create は新しいアーティファクトを作成
func (r *ArtifactRepository) Create(ctx context.Context, artifact *models.ProcessingArtifact) error {
	if artifact.ID == "" {
		artifact.ID = uuid.New().String()
	}
	artifact.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO processing_artifacts
			(id, source_id, type, content, format, file_path, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		artifact.ID, nullIfEmpty(artifact.SourceID), artifact.Type,
		nullIfEmpty(artifact.Content), nullIfEmpty(artifact.Format),
		nullIfEmpty(artifact.FilePath), nullIfEmpty(artifact.Metadata),
		artifact.CreatedAt,
	)
	return err
}

// GetByID はIDでアーティファクトを取得
func (r *ArtifactRepository) GetByID(ctx context.Context, id string) (*models.ProcessingArtifact, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+artifactColumns+` FROM processing_artifacts WHERE id = ?`, id)
	artifact, err := scanArtifact(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return artifact, err
}

// GetBySourceID はソースIDでアーティファクト一覧を取得
func (r *ArtifactRepository) GetBySourceID(ctx context.Context, sourceID string) ([]models.ProcessingArtifact, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+artifactColumns+` FROM processing_artifacts
		WHERE source_id = ?
		ORDER BY created_at ASC`, sourceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var artifacts []models.ProcessingArtifact
	for rows.Next() {
		a, err := scanArtifact(rows)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, *a)
	}
	return artifacts, rows.Err()
}

// Delete はアーティファクトを削除
func (r *ArtifactRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM processing_artifacts WHERE id = ?`, id)
	return err
}

// DeleteBySourceID はソースIDでアーティファクトを削除
func (r *ArtifactRepository) DeleteBySourceID(ctx context.Context, sourceID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM processing_artifacts WHERE source_id = ?`, sourceID)
	return err
}
