package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yassine/cvbuilder/internal/llm"
	"github.com/yassine/cvbuilder/internal/resume"
)

// Importer structures extracted CV text into a resume document using the LLM.
type Importer struct {
	client llm.Client
}

// New creates an importer on top of an LLM client.
func New(client llm.Client) *Importer {
	return &Importer{client: client}
}

// extractedResume mirrors the JSON shape of ResumeExtractionSchema.
type extractedResume struct {
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Location   string `json:"location"`
	Title      string `json:"title"`
	Summary    string `json:"summary"`
	Experience []struct {
		Company     string `json:"company"`
		Position    string `json:"position"`
		StartDate   string `json:"start_date"`
		EndDate     string `json:"end_date"`
		Current     bool   `json:"current"`
		Description string `json:"description"`
	} `json:"experience"`
	Education []struct {
		Institution string `json:"institution"`
		Degree      string `json:"degree"`
		Field       string `json:"field"`
		StartDate   string `json:"start_date"`
		EndDate     string `json:"end_date"`
	} `json:"education"`
	TechnicalSkills []string `json:"technical_skills"`
	SoftSkills      []string `json:"soft_skills"`
	Languages       []struct {
		Name  string `json:"name"`
		Level string `json:"level"`
	} `json:"languages"`
}

// SeedDocument builds a wizard-ready document from extracted CV text. The
// result is a starting point for editing, not a finished resume; missing
// fields stay empty rather than failing the import.
func (im *Importer) SeedDocument(ctx context.Context, text string) (resume.Document, error) {
	doc := resume.NewEmptyDocument()

	text = strings.TrimSpace(text)
	if text == "" {
		return doc, fmt.Errorf("no text to import")
	}

	prompt := llm.BuildExtractionPrompt(llm.ResumeExtractionSchema(), text)
	raw, err := im.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return doc, fmt.Errorf("failed to structure cv text: %w", err)
	}

	var extracted extractedResume
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(raw)), &extracted); err != nil {
		return doc, fmt.Errorf("model returned malformed cv structure: %w", err)
	}

	doc.Personal = resume.PersonalInfo{
		FullName: strings.TrimSpace(extracted.FullName),
		Email:    strings.TrimSpace(extracted.Email),
		Phone:    strings.TrimSpace(extracted.Phone),
		Location: strings.TrimSpace(extracted.Location),
		Title:    strings.TrimSpace(extracted.Title),
	}
	doc.Summary = strings.TrimSpace(extracted.Summary)

	for _, e := range extracted.Experience {
		if e.Company == "" && e.Position == "" {
			continue
		}
		doc.Experience = append(doc.Experience, resume.Experience{
			ID:          uuid.NewString(),
			Company:     e.Company,
			Position:    e.Position,
			StartDate:   e.StartDate,
			EndDate:     e.EndDate,
			Current:     e.Current,
			Description: e.Description,
		})
	}

	for _, e := range extracted.Education {
		if e.Institution == "" && e.Degree == "" {
			continue
		}
		doc.Education = append(doc.Education, resume.Education{
			ID:          uuid.NewString(),
			Institution: e.Institution,
			Degree:      e.Degree,
			Field:       e.Field,
			StartDate:   e.StartDate,
			EndDate:     e.EndDate,
		})
	}

	doc.Skills.Technical = append(doc.Skills.Technical, extracted.TechnicalSkills...)
	doc.Skills.Soft = append(doc.Skills.Soft, extracted.SoftSkills...)
	for _, l := range extracted.Languages {
		if l.Name == "" {
			continue
		}
		doc.Skills.Languages = append(doc.Skills.Languages, resume.LanguageSkill{Name: l.Name, Level: l.Level})
	}

	return doc, nil
}
