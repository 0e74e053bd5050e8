package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yassine/cvbuilder/internal/resume"
)

// ErrQuotaExhausted is returned by ConsumeAIGeneration when the profile has
// no generations left. It is distinct from validation failures so the API can
// map it to a payment-required response.
var ErrQuotaExhausted = errors.New("ai generation quota exhausted")

// GetProfile retrieves a user's subscription profile, creating the default
// free-tier row on first access.
func (db *DB) GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	var p Profile
	err := db.pool.QueryRow(ctx,
		`INSERT INTO profiles (user_id, subscription_tier, ai_generations_remaining)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id) DO UPDATE SET updated_at = profiles.updated_at
		 RETURNING user_id, subscription_tier, ai_generations_remaining, created_at, updated_at`,
		userID, resume.TierFree, FreeTierAIQuota,
	).Scan(&p.UserID, &p.SubscriptionTier, &p.AIGenerationsRemaining, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}

// SetSubscriptionTier updates the tier and resets the AI quota to the new
// tier's allowance. Called when the billing integration reports a change.
func (db *DB) SetSubscriptionTier(ctx context.Context, userID uuid.UUID, tier string) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE profiles
		 SET subscription_tier = $1, ai_generations_remaining = $2, updated_at = NOW()
		 WHERE user_id = $3`,
		tier, QuotaForTier(tier), userID,
	)
	if err != nil {
		return fmt.Errorf("failed to set subscription tier: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("profile not found: %s", userID)
	}
	return nil
}

// ConsumeAIGeneration atomically decrements the remaining quota and returns
// the new balance. The WHERE clause makes concurrent consumers race safely:
// the last unit goes to exactly one of them.
func (db *DB) ConsumeAIGeneration(ctx context.Context, userID uuid.UUID) (int, error) {
	var remaining int
	err := db.pool.QueryRow(ctx,
		`UPDATE profiles
		 SET ai_generations_remaining = ai_generations_remaining - 1, updated_at = NOW()
		 WHERE user_id = $1 AND ai_generations_remaining > 0
		 RETURNING ai_generations_remaining`,
		userID,
	).Scan(&remaining)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrQuotaExhausted
		}
		return 0, fmt.Errorf("failed to consume ai generation: %w", err)
	}
	return remaining, nil
}

// RefundAIGeneration returns one unit to the quota, used when a generation
// fails after being accounted.
func (db *DB) RefundAIGeneration(ctx context.Context, userID uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE profiles
		 SET ai_generations_remaining = ai_generations_remaining + 1, updated_at = NOW()
		 WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to refund ai generation: %w", err)
	}
	return nil
}
