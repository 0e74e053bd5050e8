package server

import (
	"net/http"

	"golang.org/x/sync/singleflight"

	"github.com/yassine/cvbuilder/internal/resume"
	"github.com/yassine/cvbuilder/internal/templates"
)

// previewGroup collapses concurrent renders of the same template preview.
// The fixture never changes, so every caller can share one result.
var previewGroup singleflight.Group

// templateView is the gallery representation of a template.
type templateView struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	IsPremium    bool   `json:"is_premium"`
	PreviewImage string `json:"preview_image,omitempty"`
}

func newTemplateView(d *templates.Descriptor) templateView {
	return templateView{
		ID:           d.ID,
		Name:         d.Name,
		Description:  d.Description,
		Category:     d.Category,
		IsPremium:    d.IsPremium,
		PreviewImage: d.PreviewImage,
	}
}

// handleListTemplates returns the template catalog in gallery order.
// Optional filters: ?category=Technology, ?premium=true|false.
func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	var list []*templates.Descriptor
	switch {
	case r.URL.Query().Get("category") != "":
		list = s.registry.ByCategory(r.URL.Query().Get("category"))
	case r.URL.Query().Get("premium") == "true":
		list = s.registry.PremiumOnly()
	case r.URL.Query().Get("premium") == "false":
		list = s.registry.FreeOnly()
	default:
		list = s.registry.ListAll()
	}

	views := make([]templateView, len(list))
	for i, d := range list {
		views[i] = newTemplateView(d)
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"templates": views})
}

// handleGetTemplate returns one template descriptor.
func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	d, err := s.registry.ByID(r.PathValue("id"))
	if err != nil {
		s.handlerError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, newTemplateView(d))
}

// previewDocument is the fixture rendered by the gallery preview.
func previewDocument() resume.Document {
	doc := resume.NewEmptyDocument()
	doc.Personal = resume.PersonalInfo{
		FullName: "Amina El Fassi",
		Email:    "amina.elfassi@example.com",
		Phone:    "+212 6 12 34 56 78",
		Location: "Casablanca, Morocco",
		Title:    "Senior Software Engineer",
	}
	doc.Summary = "Software engineer with eight years of experience building payment and logistics platforms for companies across Morocco and Europe."
	doc.Experience = []resume.Experience{
		{
			ID:          "preview-exp-1",
			Company:     "Attijariwafa Bank",
			Position:    "Senior Software Engineer",
			StartDate:   "2021-03",
			Current:     true,
			Description: "Leading the payments API team. Migrated card processing to a new microservice platform.",
		},
		{
			ID:          "preview-exp-2",
			Company:     "OCP Group",
			Position:    "Backend Developer",
			StartDate:   "2017-09",
			EndDate:     "2021-02",
			Description: "Built internal logistics tracking services used across three ports.",
		},
	}
	doc.Education = []resume.Education{
		{
			ID:          "preview-edu-1",
			Institution: "Université Mohammed V",
			Degree:      "Master",
			Field:       "Computer Science",
			StartDate:   "2012-09",
			EndDate:     "2014-06",
		},
	}
	doc.Skills = resume.Skills{
		Technical: []string{"Go", "PostgreSQL", "Redis", "Docker"},
		Soft:      []string{"Leadership", "Communication"},
		Languages: []resume.LanguageSkill{
			{Name: "Arabic", Level: "Native"},
			{Name: "French", Level: "Fluent"},
			{Name: "English", Level: "Fluent"},
		},
	}
	return doc
}

// handleTemplatePreview renders the template with fixture content so the
// gallery can show real layouts instead of static screenshots.
func (s *Server) handleTemplatePreview(w http.ResponseWriter, r *http.Request) {
	d, err := s.registry.ByID(r.PathValue("id"))
	if err != nil {
		s.handlerError(w, err)
		return
	}

	html, err, _ := previewGroup.Do(d.ID, func() (any, error) {
		return d.Render(previewDocument())
	})
	if err != nil {
		s.handlerError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html.(string)))
}
