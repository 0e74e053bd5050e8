package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/yassine/cvbuilder/internal/resume"
)

// User represents an account
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never serialize to JSON
	PasswordSet  bool      `json:"password_set" db:"password_set"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile carries the subscription state of a user. Every user has exactly
// one profile row, created on first access.
type Profile struct {
	UserID                 uuid.UUID `json:"user_id"`
	SubscriptionTier       string    `json:"subscription_tier"`
	AIGenerationsRemaining int       `json:"ai_generations_remaining"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// Resume is a saved resume document with its chosen template.
type Resume struct {
	ID         uuid.UUID       `json:"id"`
	UserID     uuid.UUID       `json:"user_id"`
	Title      string          `json:"title"`
	TemplateID string          `json:"template_id"`
	Content    resume.Document `json:"content"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// AIGeneration is one accounted call to the generation model.
type AIGeneration struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	ContentType string    `json:"content_type"`
	Language    string    `json:"language"`
	TokensUsed  int       `json:"tokens_used"`
	CreatedAt   time.Time `json:"created_at"`
}

// Upload records an imported CV file. The extracted text is kept so a failed
// import can be retried without re-uploading.
type Upload struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	Filename      string    `json:"filename"`
	ContentType   string    `json:"content_type"`
	SizeBytes     int64     `json:"size_bytes"`
	ExtractedText string    `json:"extracted_text,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// AI quota granted per tier when a profile is created or the tier changes.
const (
	FreeTierAIQuota       = 3
	PremiumTierAIQuota    = 100
	EnterpriseTierAIQuota = 1000
)

// QuotaForTier returns the AI generation allowance for a subscription tier.
func QuotaForTier(tier string) int {
	switch tier {
	case resume.TierEnterprise:
		return EnterpriseTierAIQuota
	case resume.TierPremium:
		return PremiumTierAIQuota
	default:
		return FreeTierAIQuota
	}
}
