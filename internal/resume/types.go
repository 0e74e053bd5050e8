// Package resume defines the resume document model shared by the wizard,
// the template renderer, and the persistence layer.
package resume

// DefaultLanguage is the content language assigned to newly created documents.
// The builder UI may switch it to "fr" or "ar" at any point.
const DefaultLanguage = "en"

// Subscription tiers reported by the billing integration. They gate premium
// templates and AI generation quota.
const (
	TierFree       = "free"
	TierPremium    = "premium"
	TierEnterprise = "enterprise"
)

// PersonalInfo holds the identity section of a resume. FullName and Email are
// the only fields required for a document to be minimally valid.
type PersonalInfo struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Title    string `json:"title"`
	Website  string `json:"website,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

// Experience is a single work history entry. When Current is true the stored
// EndDate is ignored and renderers show a locale-appropriate "Present" token.
type Experience struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// Education is a single education entry, with the same Current/EndDate rule
// as Experience.
type Education struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description,omitempty"`
}

// LanguageSkill pairs a spoken language with a proficiency level.
type LanguageSkill struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

// Skills groups the three skill lists edited by the skills step.
type Skills struct {
	Technical []string        `json:"technical"`
	Soft      []string        `json:"soft"`
	Languages []LanguageSkill `json:"languages"`
}

// Document is the aggregate edited by the wizard. Experience and Education
// keep insertion order; the UI does not sort by date.
type Document struct {
	Personal   PersonalInfo `json:"personal"`
	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education"`
	Skills     Skills       `json:"skills"`
	Summary    string       `json:"summary"`
	Language   string       `json:"language"`
}

// NewEmptyDocument returns a document with non-nil slices and the default
// content language, ready for the wizard to fill in.
func NewEmptyDocument() Document {
	return Document{
		Experience: []Experience{},
		Education:  []Education{},
		Skills: Skills{
			Technical: []string{},
			Soft:      []string{},
			Languages: []LanguageSkill{},
		},
		Language: DefaultLanguage,
	}
}
