package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// RecordAIGeneration logs one accounted model call for auditing and usage
// reporting. Quota enforcement lives in ConsumeAIGeneration, not here.
func (db *DB) RecordAIGeneration(ctx context.Context, userID uuid.UUID, contentType, language string, tokensUsed int) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO ai_generations (user_id, content_type, language, tokens_used)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		userID, contentType, language, tokensUsed,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to record ai generation: %w", err)
	}
	return id, nil
}

// ListAIGenerationsByUser retrieves a user's generation history, newest first.
func (db *DB) ListAIGenerationsByUser(ctx context.Context, userID uuid.UUID, limit int) ([]AIGeneration, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, content_type, language, tokens_used, created_at
		 FROM ai_generations WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list ai generations: %w", err)
	}
	defer rows.Close()

	var generations []AIGeneration
	for rows.Next() {
		var g AIGeneration
		if err := rows.Scan(&g.ID, &g.UserID, &g.ContentType, &g.Language, &g.TokensUsed, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ai generation: %w", err)
		}
		generations = append(generations, g)
	}
	return generations, nil
}
