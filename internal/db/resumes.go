package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yassine/cvbuilder/internal/resume"
)

// CreateResume stores a finished document and returns its ID.
func (db *DB) CreateResume(ctx context.Context, userID uuid.UUID, title, templateID string, content resume.Document) (uuid.UUID, error) {
	jsonBytes, err := json.Marshal(content)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal resume content: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO resumes (user_id, title, template_id, content)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		userID, title, templateID, jsonBytes,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return id, nil
}

// UpdateResume replaces the title, template and content of a saved resume.
func (db *DB) UpdateResume(ctx context.Context, id uuid.UUID, title, templateID string, content resume.Document) error {
	jsonBytes, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("failed to marshal resume content: %w", err)
	}

	result, err := db.pool.Exec(ctx,
		`UPDATE resumes SET title = $1, template_id = $2, content = $3, updated_at = NOW() WHERE id = $4`,
		title, templateID, jsonBytes, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update resume: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("resume not found: %s", id)
	}
	return nil
}

// GetResume retrieves a resume by ID. Returns nil when no such resume exists.
func (db *DB) GetResume(ctx context.Context, id uuid.UUID) (*Resume, error) {
	var r Resume
	var contentBytes []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, title, template_id, content, created_at, updated_at
		 FROM resumes WHERE id = $1`,
		id,
	).Scan(&r.ID, &r.UserID, &r.Title, &r.TemplateID, &contentBytes, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}

	if err := json.Unmarshal(contentBytes, &r.Content); err != nil {
		return nil, fmt.Errorf("failed to unmarshal resume content: %w", err)
	}
	return &r, nil
}

// ListResumesByUser retrieves a user's resumes, most recently updated first.
func (db *DB) ListResumesByUser(ctx context.Context, userID uuid.UUID) ([]Resume, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, title, template_id, content, created_at, updated_at
		 FROM resumes WHERE user_id = $1 ORDER BY updated_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	var resumes []Resume
	for rows.Next() {
		var r Resume
		var contentBytes []byte
		if err := rows.Scan(&r.ID, &r.UserID, &r.Title, &r.TemplateID, &contentBytes, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		if err := json.Unmarshal(contentBytes, &r.Content); err != nil {
			return nil, fmt.Errorf("failed to unmarshal resume content: %w", err)
		}
		resumes = append(resumes, r)
	}
	return resumes, nil
}

// DeleteResume removes a resume owned by the given user. Scoping the delete
// by user keeps one user from deleting another's resume by guessing IDs.
func (db *DB) DeleteResume(ctx context.Context, id, userID uuid.UUID) error {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM resumes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("resume not found: %s", id)
	}
	return nil
}
