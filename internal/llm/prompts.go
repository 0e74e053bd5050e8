package llm

import (
	"fmt"
	"strings"
)

// ContentType names one kind of AI-assisted resume content.
type ContentType string

const (
	ContentProfessionalSummary ContentType = "professional_summary"
	ContentJobDescription      ContentType = "job_description"
	ContentSkillsOptimization  ContentType = "skills_optimization"
)

// SupportedContentTypes lists the content types the generator accepts.
var SupportedContentTypes = []ContentType{
	ContentProfessionalSummary,
	ContentJobDescription,
	ContentSkillsOptimization,
}

// Languages the generator can write in.
const (
	LangEnglish = "en"
	LangFrench  = "fr"
	LangArabic  = "ar"
)

// languageInstruction tells the model which language to answer in. The
// default is English so an unknown code degrades gracefully.
func languageInstruction(language string) string {
	switch language {
	case LangFrench:
		return "Write the output in professional French."
	case LangArabic:
		return "Write the output in professional Modern Standard Arabic."
	default:
		return "Write the output in professional English."
	}
}

// GenerationInput carries the resume context a prompt is built from. Only the
// fields relevant to the requested content type are used.
type GenerationInput struct {
	FullName   string
	Title      string
	Company    string
	Position   string
	Experience []string
	Skills     []string
	Hints      string
}

// buildPrompt assembles the model prompt for a content type. It returns an
// error for unknown content types so the quota is never spent on a request
// the model cannot serve.
func buildPrompt(contentType ContentType, language string, input GenerationInput) (string, error) {
	var sb strings.Builder

	switch contentType {
	case ContentProfessionalSummary:
		sb.WriteString("You are a professional resume writer helping candidates on the Moroccan job market.\n")
		sb.WriteString("Write a concise professional summary of 2 to 3 sentences for a resume.\n")
		sb.WriteString("Do not invent employers, dates or credentials; only rephrase what is given.\n\n")
		if input.FullName != "" {
			fmt.Fprintf(&sb, "Candidate: %s\n", input.FullName)
		}
		if input.Title != "" {
			fmt.Fprintf(&sb, "Current title: %s\n", input.Title)
		}
		if len(input.Experience) > 0 {
			sb.WriteString("Experience highlights:\n")
			for _, e := range input.Experience {
				fmt.Fprintf(&sb, "- %s\n", e)
			}
		}
		if len(input.Skills) > 0 {
			fmt.Fprintf(&sb, "Key skills: %s\n", strings.Join(input.Skills, ", "))
		}

	case ContentJobDescription:
		sb.WriteString("You are a professional resume writer.\n")
		sb.WriteString("Write 2 to 4 resume bullet sentences describing the impact of this role.\n")
		sb.WriteString("Use action verbs. Do not invent metrics that were not provided.\n\n")
		if input.Position != "" {
			fmt.Fprintf(&sb, "Position: %s\n", input.Position)
		}
		if input.Company != "" {
			fmt.Fprintf(&sb, "Company: %s\n", input.Company)
		}
		if input.Hints != "" {
			fmt.Fprintf(&sb, "Notes from the candidate: %s\n", input.Hints)
		}

	case ContentSkillsOptimization:
		sb.WriteString("You are a professional resume writer.\n")
		sb.WriteString("Rewrite the following skill list for a resume: deduplicate, use standard industry names,\n")
		sb.WriteString("and order from strongest to weakest signal. Return a JSON array of strings and nothing else.\n\n")
		if input.Title != "" {
			fmt.Fprintf(&sb, "Target role: %s\n", input.Title)
		}
		fmt.Fprintf(&sb, "Skills: %s\n", strings.Join(input.Skills, ", "))

	default:
		return "", fmt.Errorf("unsupported content type: %s", contentType)
	}

	sb.WriteString("\n")
	sb.WriteString(languageInstruction(language))
	return sb.String(), nil
}
