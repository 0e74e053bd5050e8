package server

import (
	"context"

	"github.com/google/uuid"

	"github.com/yassine/cvbuilder/internal/db"
	"github.com/yassine/cvbuilder/internal/resume"
)

// Store is the persistence surface the handlers depend on. *db.DB implements
// it; tests substitute an in-memory fake.
type Store interface {
	// Users
	CreateUser(ctx context.Context, name, email, phone string) (uuid.UUID, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error

	// Subscription profiles
	GetProfile(ctx context.Context, userID uuid.UUID) (*db.Profile, error)
	SetSubscriptionTier(ctx context.Context, userID uuid.UUID, tier string) error
	ConsumeAIGeneration(ctx context.Context, userID uuid.UUID) (int, error)
	RefundAIGeneration(ctx context.Context, userID uuid.UUID) error
	RecordAIGeneration(ctx context.Context, userID uuid.UUID, contentType, language string, tokensUsed int) (uuid.UUID, error)
	ListAIGenerationsByUser(ctx context.Context, userID uuid.UUID, limit int) ([]db.AIGeneration, error)

	// Resumes
	CreateResume(ctx context.Context, userID uuid.UUID, title, templateID string, content resume.Document) (uuid.UUID, error)
	UpdateResume(ctx context.Context, id uuid.UUID, title, templateID string, content resume.Document) error
	GetResume(ctx context.Context, id uuid.UUID) (*db.Resume, error)
	ListResumesByUser(ctx context.Context, userID uuid.UUID) ([]db.Resume, error)
	DeleteResume(ctx context.Context, id, userID uuid.UUID) error

	// Uploads
	SaveUpload(ctx context.Context, userID uuid.UUID, filename, contentType string, sizeBytes int64, extractedText string) (uuid.UUID, error)
	GetUpload(ctx context.Context, id, userID uuid.UUID) (*db.Upload, error)
}
