package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yassine/cvbuilder/internal/resume"
)

func TestNewRegistry_ParsesFullCatalog(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)
	assert.Len(t, r.ListAll(), 10)
}

func TestListAll_StableOrder(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	first := r.ListAll()
	second := r.ListAll()
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
	assert.Equal(t, "modern-professional", first[0].ID)
}

func TestByID_RoundTrip(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	for _, d := range r.ListAll() {
		got, err := r.ByID(d.ID)
		require.NoError(t, err)
		assert.Equal(t, d.ID, got.ID)
	}
}

func TestByID_NotFound(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	_, err = r.ByID("nonexistent-template")
	require.Error(t, err)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "nonexistent-template", notFound.ID)
}

func TestByCategory(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	tech := r.ByCategory("Technology")
	require.Len(t, tech, 1)
	assert.Equal(t, "modern-professional", tech[0].ID)

	assert.Empty(t, r.ByCategory("Nonexistent"))
}

func TestFreeAndPremiumFilters(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	free := r.FreeOnly()
	premium := r.PremiumOnly()
	assert.Len(t, free, 3)
	assert.Len(t, premium, 7)
	assert.Equal(t, len(r.ListAll()), len(free)+len(premium))

	for _, d := range free {
		assert.False(t, d.IsPremium)
	}
	for _, d := range premium {
		assert.True(t, d.IsPremium)
	}
}

func TestCanUse(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	freeTmpl, err := r.ByID("modern-professional")
	require.NoError(t, err)
	premiumTmpl, err := r.ByID("executive-elite")
	require.NoError(t, err)

	assert.True(t, CanUse(resume.TierFree, freeTmpl))
	assert.True(t, CanUse(resume.TierPremium, freeTmpl))

	assert.False(t, CanUse(resume.TierFree, premiumTmpl))
	assert.True(t, CanUse(resume.TierPremium, premiumTmpl))
	assert.True(t, CanUse(resume.TierEnterprise, premiumTmpl))

	// An unknown/empty tier is treated as free.
	assert.False(t, CanUse("", premiumTmpl))
}
