package templates

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yassine/cvbuilder/internal/resume"
)

func parseHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func sampleDocument() resume.Document {
	doc := resume.NewEmptyDocument()
	doc.Personal = resume.PersonalInfo{
		FullName: "Amina El Fassi",
		Email:    "amina@example.com",
		Phone:    "+212 6 12 34 56 78",
		Location: "Casablanca, Morocco",
		Title:    "Software Engineer",
	}
	doc.Experience = []resume.Experience{{
		ID:          "exp-1",
		Company:     "OCP Group",
		Position:    "Backend Developer",
		StartDate:   "2021-02",
		EndDate:     "2023-06",
		Description: "Built internal logistics APIs.",
	}}
	doc.Education = []resume.Education{{
		ID:          "edu-1",
		Institution: "Université Mohammed V",
		Degree:      "Master",
		Field:       "Computer Science",
		StartDate:   "2016-09",
		EndDate:     "2018-06",
	}}
	doc.Skills = resume.Skills{
		Technical: []string{"Go", "PostgreSQL"},
		Soft:      []string{"Communication"},
		Languages: []resume.LanguageSkill{{Name: "French", Level: "Fluent"}},
	}
	doc.Summary = "Engineer with five years of backend experience."
	return doc
}

func TestRender_EmptyDocumentOmitsSections(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	empty := resume.NewEmptyDocument()

	for _, d := range r.ListAll() {
		html, err := d.Render(empty)
		require.NoError(t, err, "template %s must render the empty document", d.ID)

		page := parseHTML(t, html)
		assert.Equal(t, 0, page.Find("section.summary").Length(), "%s: empty summary must be omitted", d.ID)
		assert.Equal(t, 0, page.Find("section.experience").Length(), "%s: empty experience must be omitted", d.ID)
		assert.Equal(t, 0, page.Find("section.education").Length(), "%s: empty education must be omitted", d.ID)
		assert.Equal(t, 0, page.Find("section.skills").Length(), "%s: empty skills must be omitted", d.ID)
		assert.Equal(t, 1, page.Find("h1").Length(), "%s: header is always present", d.ID)
	}
}

func TestRender_FullDocumentHasAllSections(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	doc := sampleDocument()

	for _, d := range r.ListAll() {
		html, err := d.Render(doc)
		require.NoError(t, err)

		page := parseHTML(t, html)
		assert.Equal(t, 1, page.Find("section.summary").Length(), d.ID)
		assert.Equal(t, 1, page.Find("section.experience").Length(), d.ID)
		assert.Equal(t, 1, page.Find("section.education").Length(), d.ID)
		assert.Equal(t, 1, page.Find("section.skills").Length(), d.ID)
		assert.Contains(t, page.Find("h1").Text(), "Amina El Fassi", d.ID)
	}
}

func TestRender_CurrentOverridesStaleEndDate(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	doc := sampleDocument()
	doc.Experience[0].Current = true
	doc.Experience[0].EndDate = "2020-01" // deliberately stale; must not appear

	d, err := r.ByID("modern-professional")
	require.NoError(t, err)

	html, err := d.Render(doc)
	require.NoError(t, err)

	dates := parseHTML(t, html).Find("section.experience .dates").First().Text()
	assert.Contains(t, dates, "Present")
	assert.NotContains(t, dates, "2020-01")
}

func TestRender_PresentTokenFollowsDocumentLanguage(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)
	d, err := r.ByID("classic-professional")
	require.NoError(t, err)

	cases := []struct {
		lang  string
		token string
	}{
		{"en", "Present"},
		{"fr", "Présent"},
		{"ar", "الحالي"},
	}

	for _, tc := range cases {
		doc := sampleDocument()
		doc.Language = tc.lang
		doc.Education[0].Current = true

		html, err := d.Render(doc)
		require.NoError(t, err)

		dates := parseHTML(t, html).Find("section.education .dates").First().Text()
		assert.Contains(t, dates, tc.token, "language %s", tc.lang)
	}
}

func TestRender_ArabicDocumentIsRTL(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)
	d, err := r.ByID("modern-professional")
	require.NoError(t, err)

	doc := sampleDocument()
	doc.Language = "ar"

	html, err := d.Render(doc)
	require.NoError(t, err)

	dirAttr, _ := parseHTML(t, html).Find("html").Attr("dir")
	assert.Equal(t, "rtl", dirAttr)
}

func TestDateRange(t *testing.T) {
	assert.Equal(t, "2021-02 - 2023-06", dateRange("2021-02", "2023-06", false, "en"))
	assert.Equal(t, "2021-02 - Present", dateRange("2021-02", "2023-06", true, "en"))
	assert.Equal(t, "2021-02 - Présent", dateRange("2021-02", "", true, "fr"))
	assert.Equal(t, "", dateRange("", "", false, "en"))
}
