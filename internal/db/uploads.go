package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SaveUpload stores the metadata and extracted text of an imported CV.
func (db *DB) SaveUpload(ctx context.Context, userID uuid.UUID, filename, contentType string, sizeBytes int64, extractedText string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO uploads (user_id, filename, content_type, size_bytes, extracted_text)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		userID, filename, contentType, sizeBytes, extractedText,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save upload: %w", err)
	}
	return id, nil
}

// GetUpload retrieves an upload record by ID, scoped to its owner.
func (db *DB) GetUpload(ctx context.Context, id, userID uuid.UUID) (*Upload, error) {
	var u Upload
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, filename, content_type, size_bytes, COALESCE(extracted_text, ''), created_at
		 FROM uploads WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&u.ID, &u.UserID, &u.Filename, &u.ContentType, &u.SizeBytes, &u.ExtractedText, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get upload: %w", err)
	}
	return &u, nil
}
