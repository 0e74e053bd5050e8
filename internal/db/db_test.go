package db

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yassine/cvbuilder/internal/resume"
)

func TestQuotaForTier(t *testing.T) {
	assert.Equal(t, FreeTierAIQuota, QuotaForTier(resume.TierFree))
	assert.Equal(t, PremiumTierAIQuota, QuotaForTier(resume.TierPremium))
	assert.Equal(t, EnterpriseTierAIQuota, QuotaForTier(resume.TierEnterprise))

	// Unknown tiers get the free allowance.
	assert.Equal(t, FreeTierAIQuota, QuotaForTier("trial"))
	assert.Equal(t, FreeTierAIQuota, QuotaForTier(""))
}

func TestResumeType(t *testing.T) {
	doc := resume.NewEmptyDocument()
	doc.Personal.FullName = "Amina El Fassi"

	r := Resume{
		Title:      "Amina El Fassi - Resume",
		TemplateID: "modern-professional",
		Content:    doc,
	}

	assert.Equal(t, "Amina El Fassi - Resume", r.Title)
	assert.Equal(t, "modern-professional", r.TemplateID)
	assert.Equal(t, "Amina El Fassi", r.Content.Personal.FullName)
}
