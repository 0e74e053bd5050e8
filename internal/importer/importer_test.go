package importer

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yassine/cvbuilder/internal/llm"
)

func TestValidateUpload(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		size        int64
		want        string
		wantErr     bool
	}{
		{"pdf", "cv.pdf", "application/pdf", 1024, mimePDF, false},
		{"docx", "cv.docx", mimeDOCX, 1024, mimeDOCX, false},
		{"legacy doc", "cv.doc", "application/msword", 1024, mimeDOC, false},
		{"octet-stream resolved by extension", "cv.pdf", "application/octet-stream", 1024, mimePDF, false},
		{"zip resolved by extension", "cv.docx", "application/zip", 1024, mimeDOCX, false},
		{"mime with charset", "cv.pdf", "application/pdf; charset=binary", 1024, mimePDF, false},
		{"image rejected", "photo.png", "image/png", 1024, "", true},
		{"text rejected", "cv.txt", "text/plain", 1024, "", true},
		{"oversized", "cv.pdf", "application/pdf", MaxUploadBytes + 1, "", true},
		{"at the limit", "cv.pdf", "application/pdf", MaxUploadBytes, mimePDF, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateUpload(tt.filename, tt.contentType, tt.size)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateUpload_ErrorTypes(t *testing.T) {
	_, err := ValidateUpload("cv.png", "image/png", 100)
	var unsupported *UnsupportedFileTypeError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "image/png", unsupported.ContentType)

	_, err = ValidateUpload("cv.pdf", "application/pdf", MaxUploadBytes+1)
	var tooLarge *FileTooLargeError
	require.ErrorAs(t, err, &tooLarge)
	assert.Equal(t, int64(MaxUploadBytes+1), tooLarge.SizeBytes)
}

// buildDocx assembles a minimal docx payload around the given document XML.
func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestExtractText_DOCX(t *testing.T) {
	data := buildDocx(t, `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Amina El Fassi</w:t></w:r></w:p>
    <w:p><w:r><w:t>Backend Developer at OCP Group</w:t></w:r></w:p>
  </w:body>
</w:document>`)

	text, err := ExtractText(data, mimeDOCX)
	require.NoError(t, err)
	assert.Contains(t, text, "Amina El Fassi")
	assert.Contains(t, text, "Backend Developer at OCP Group")
	// Paragraphs become separate lines.
	assert.NotContains(t, text, "Fassi Backend")
}

func TestExtractText_DOCXWithoutDocumentXML(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/other.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte("<x/>"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, err = ExtractText(buf.Bytes(), mimeDOCX)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "document.xml not found")
}

func TestExtractText_LegacyDOC(t *testing.T) {
	// Binary noise around printable runs, like a real .doc payload.
	data := append([]byte{0xd0, 0xcf, 0x11, 0xe0, 0x01, 0x02}, []byte("Amina El Fassi")...)
	data = append(data, 0x00, 0x05, 0x01)
	data = append(data, []byte("Software Engineer, Casablanca")...)
	data = append(data, 0x00, 0x00)

	text, err := ExtractText(data, mimeDOC)
	require.NoError(t, err)
	assert.Contains(t, text, "Amina El Fassi")
	assert.Contains(t, text, "Software Engineer, Casablanca")
}

func TestExtractText_UnknownType(t *testing.T) {
	_, err := ExtractText([]byte("hello"), "text/plain")
	require.Error(t, err)
}

// mockLLM returns a fixed JSON payload for any prompt.
type mockLLM struct {
	response string
	err      error
	prompt   string
}

func (m *mockLLM) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	m.prompt = prompt
	return m.response, m.err
}

func (m *mockLLM) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	m.prompt = prompt
	return m.response, m.err
}

func (m *mockLLM) GetModel(tier llm.ModelTier) string { return "mock" }
func (m *mockLLM) Close() error                       { return nil }

func TestSeedDocument(t *testing.T) {
	client := &mockLLM{response: `{
		"full_name": "Amina El Fassi",
		"email": "amina@example.com",
		"phone": "+212 6 12 34 56 78",
		"location": "Casablanca, Morocco",
		"title": "Software Engineer",
		"summary": "Backend engineer with five years of experience.",
		"experience": [
			{"company": "OCP Group", "position": "Backend Developer", "start_date": "2021-02", "end_date": "", "current": true, "description": "Built logistics APIs."}
		],
		"education": [
			{"institution": "Université Mohammed V", "degree": "Master", "field": "Computer Science", "start_date": "2016-09", "end_date": "2018-06"}
		],
		"technical_skills": ["Go", "PostgreSQL"],
		"soft_skills": ["Communication"],
		"languages": [{"name": "French", "level": "Fluent"}, {"name": "", "level": "ignored"}]
	}`}

	im := New(client)
	doc, err := im.SeedDocument(context.Background(), "Amina El Fassi\nSoftware Engineer\n...")
	require.NoError(t, err)

	assert.Equal(t, "Amina El Fassi", doc.Personal.FullName)
	assert.Equal(t, "amina@example.com", doc.Personal.Email)
	assert.Equal(t, "Backend engineer with five years of experience.", doc.Summary)

	require.Len(t, doc.Experience, 1)
	assert.Equal(t, "OCP Group", doc.Experience[0].Company)
	assert.True(t, doc.Experience[0].Current)
	assert.NotEmpty(t, doc.Experience[0].ID, "imported entries get fresh IDs")

	require.Len(t, doc.Education, 1)
	assert.Equal(t, "Université Mohammed V", doc.Education[0].Institution)

	assert.Equal(t, []string{"Go", "PostgreSQL"}, doc.Skills.Technical)
	require.Len(t, doc.Skills.Languages, 1, "nameless language entries are dropped")

	assert.Contains(t, client.prompt, "expert CV parser")
}

func TestSeedDocument_EmptyText(t *testing.T) {
	im := New(&mockLLM{})
	_, err := im.SeedDocument(context.Background(), "   \n ")
	require.Error(t, err)
}

func TestSeedDocument_MalformedModelOutput(t *testing.T) {
	im := New(&mockLLM{response: "not json at all"})
	_, err := im.SeedDocument(context.Background(), "some cv text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed cv structure")
}

func TestSeedDocument_StripsMarkdownFence(t *testing.T) {
	im := New(&mockLLM{response: "```json\n{\"full_name\": \"Youssef Benali\"}\n```"})
	doc, err := im.SeedDocument(context.Background(), "Youssef Benali ...")
	require.NoError(t, err)
	assert.Equal(t, "Youssef Benali", doc.Personal.FullName)
}
