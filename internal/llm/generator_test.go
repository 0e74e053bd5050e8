package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockClient records the prompts it receives and returns canned responses.
type mockClient struct {
	lastPrompt  string
	lastTier    ModelTier
	textResp    string
	jsonResp    string
	generateErr error
}

func (m *mockClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	m.lastPrompt = prompt
	m.lastTier = tier
	return m.textResp, m.generateErr
}

func (m *mockClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	m.lastPrompt = prompt
	m.lastTier = tier
	return m.jsonResp, m.generateErr
}

func (m *mockClient) GetModel(tier ModelTier) string { return "mock-model" }
func (m *mockClient) Close() error                   { return nil }

func TestGenerate_ProfessionalSummary(t *testing.T) {
	client := &mockClient{textResp: "Experienced backend engineer based in Casablanca."}
	g := NewGenerator(client)

	result, err := g.Generate(context.Background(), ContentProfessionalSummary, LangEnglish, GenerationInput{
		FullName:   "Amina El Fassi",
		Title:      "Software Engineer",
		Experience: []string{"Backend Developer at OCP Group"},
		Skills:     []string{"Go", "PostgreSQL"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Experienced backend engineer based in Casablanca.", result.Text)
	assert.Equal(t, TierStandard, client.lastTier)
	assert.Contains(t, client.lastPrompt, "Amina El Fassi")
	assert.Contains(t, client.lastPrompt, "Backend Developer at OCP Group")
	assert.Contains(t, client.lastPrompt, "professional English")
}

func TestGenerate_JobDescriptionLanguages(t *testing.T) {
	cases := []struct {
		language string
		expect   string
	}{
		{LangEnglish, "professional English"},
		{LangFrench, "professional French"},
		{LangArabic, "Modern Standard Arabic"},
		{"de", "professional English"}, // unknown codes fall back to English
	}

	for _, tc := range cases {
		client := &mockClient{textResp: "Led the migration of payment APIs."}
		g := NewGenerator(client)

		_, err := g.Generate(context.Background(), ContentJobDescription, tc.language, GenerationInput{
			Position: "Backend Developer",
			Company:  "Attijariwafa Bank",
		})
		require.NoError(t, err)
		assert.Contains(t, client.lastPrompt, tc.expect, "language %s", tc.language)
		assert.Contains(t, client.lastPrompt, "Attijariwafa Bank")
	}
}

func TestGenerate_SkillsOptimizationParsesJSON(t *testing.T) {
	client := &mockClient{jsonResp: `["Go", "PostgreSQL", "Docker"]`}
	g := NewGenerator(client)

	result, err := g.Generate(context.Background(), ContentSkillsOptimization, LangEnglish, GenerationInput{
		Title:  "Backend Engineer",
		Skills: []string{"golang", "go", "postgres", "docker"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Go", "PostgreSQL", "Docker"}, result.Skills)
	assert.Equal(t, TierLite, client.lastTier)
}

func TestGenerate_SkillsOptimizationChattyResponse(t *testing.T) {
	client := &mockClient{jsonResp: "Here are the optimized skills:\n[\"Go\", \"Kubernetes\"]\nLet me know if you need anything else."}
	g := NewGenerator(client)

	result, err := g.Generate(context.Background(), ContentSkillsOptimization, LangEnglish, GenerationInput{
		Skills: []string{"go", "kubernetes"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Go", "Kubernetes"}, result.Skills)
	assert.Equal(t, `["Go", "Kubernetes"]`, result.Text)
}

func TestGenerate_SkillsOptimizationMalformedJSON(t *testing.T) {
	client := &mockClient{jsonResp: `here are your skills: Go, Docker`}
	g := NewGenerator(client)

	_, err := g.Generate(context.Background(), ContentSkillsOptimization, LangEnglish, GenerationInput{
		Skills: []string{"go", "docker"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed skill list")
}

func TestGenerate_UnsupportedContentType(t *testing.T) {
	client := &mockClient{}
	g := NewGenerator(client)

	_, err := g.Generate(context.Background(), ContentType("cover_letter"), LangEnglish, GenerationInput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported content type")
	assert.Empty(t, client.lastPrompt, "no model call for an unsupported type")
}

func TestGenerate_ClientErrorIsWrapped(t *testing.T) {
	client := &mockClient{generateErr: errors.New("quota exceeded upstream")}
	g := NewGenerator(client)

	_, err := g.Generate(context.Background(), ContentProfessionalSummary, LangEnglish, GenerationInput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded upstream")
}
