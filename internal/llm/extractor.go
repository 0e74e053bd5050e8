// Package llm - extractor.go provides generic LLM-based structured extraction.
package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema defines the structure for LLM-based content extraction.
// It provides a reusable way to define what information to extract from text.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "JobRequirements", "BrandVoice")
	Description string        // System prompt preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint: "string", "[]string", "map[string]string"
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	// System description
	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	// Output schema
	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	// Instructions
	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Extract information directly from the text, do not invent or summarize.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	// Input text
	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}


// --- Predefined Schemas ---

// ResumeExtractionSchema returns the extraction schema for imported CV text.
// The importer maps the result onto a resume document that seeds the wizard.
func ResumeExtractionSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "ResumeExtraction",
		Description: `You are an expert CV parser. COPY TEXT VERBATIM - do not paraphrase, summarize, or reword.
Your task is to extract the candidate's information from raw CV text.
The CV may be written in English, French or Arabic; keep the original language.
EXCLUDE: page headers and footers, references sections, photo captions.`,
		Fields: []SchemaField{
			{
				Name:        "full_name",
				Type:        "\"string\"",
				Description: "Candidate full name",
				Required:    true,
			},
			{
				Name:        "email",
				Type:        "\"string\"",
				Description: "Contact email address",
				Required:    false,
			},
			{
				Name:        "phone",
				Type:        "\"string\"",
				Description: "Contact phone number",
				Required:    false,
			},
			{
				Name:        "location",
				Type:        "\"string\"",
				Description: "City and country",
				Required:    false,
			},
			{
				Name:        "title",
				Type:        "\"string\"",
				Description: "Current professional title or headline",
				Required:    false,
			},
			{
				Name:        "summary",
				Type:        "\"string\"",
				Description: "Professional summary or objective, copied verbatim",
				Required:    false,
			},
			{
				Name:        "experience",
				Type:        "[{\"company\": \"string\", \"position\": \"string\", \"start_date\": \"string\", \"end_date\": \"string\", \"current\": bool, \"description\": \"string\"}]",
				Description: "Work history entries in document order; dates as YYYY-MM when possible",
				Required:    false,
			},
			{
				Name:        "education",
				Type:        "[{\"institution\": \"string\", \"degree\": \"string\", \"field\": \"string\", \"start_date\": \"string\", \"end_date\": \"string\"}]",
				Description: "Education entries in document order",
				Required:    false,
			},
			{
				Name:        "technical_skills",
				Type:        "[\"string\"]",
				Description: "Technical skills and tools",
				Required:    false,
			},
			{
				Name:        "soft_skills",
				Type:        "[\"string\"]",
				Description: "Soft skills",
				Required:    false,
			},
			{
				Name:        "languages",
				Type:        "[{\"name\": \"string\", \"level\": \"string\"}]",
				Description: "Spoken languages with proficiency levels",
				Required:    false,
			},
		},
	}
}
