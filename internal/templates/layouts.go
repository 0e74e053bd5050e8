package templates

// sharedSections holds the section markup common to every layout. Layouts
// compose these and only vary structure and styling, which is why the catalog
// below can stay declarative.
const sharedSections = `
{{define "contact"}}
<div class="contact">
  <span>{{.Personal.Email}}</span>
  {{if .Personal.Phone}}<span>{{.Personal.Phone}}</span>{{end}}
  {{if .Personal.Location}}<span>{{.Personal.Location}}</span>{{end}}
  {{if .Personal.Website}}<span>{{.Personal.Website}}</span>{{end}}
  {{if .Personal.LinkedIn}}<span>{{.Personal.LinkedIn}}</span>{{end}}
</div>
{{end}}

{{define "summarySection"}}
{{if .Summary}}
<section class="summary">
  <h2>Professional Summary</h2>
  <p>{{.Summary}}</p>
</section>
{{end}}
{{end}}

{{define "experienceSection"}}
{{if .Experience}}
<section class="experience">
  <h2>Experience</h2>
  {{range .Experience}}
  <div class="entry">
    <div class="entry-head">
      <h3>{{.Position}}</h3>
      <span class="dates">{{dateRange .StartDate .EndDate .Current $.Language}}</span>
    </div>
    <p class="org">{{.Company}}</p>
    {{if .Description}}<p class="desc">{{.Description}}</p>{{end}}
  </div>
  {{end}}
</section>
{{end}}
{{end}}

{{define "educationSection"}}
{{if .Education}}
<section class="education">
  <h2>Education</h2>
  {{range .Education}}
  <div class="entry">
    <div class="entry-head">
      <h3>{{.Degree}}</h3>
      <span class="dates">{{dateRange .StartDate .EndDate .Current $.Language}}</span>
    </div>
    <p class="org">{{.Institution}}</p>
    {{if .Field}}<p class="desc">{{.Field}}</p>{{end}}
    {{if .Description}}<p class="desc">{{.Description}}</p>{{end}}
  </div>
  {{end}}
</section>
{{end}}
{{end}}

{{define "skillsSection"}}
{{if hasSkills .Skills}}
<section class="skills">
  <h2>Skills</h2>
  <ul>
    {{range .Skills.Technical}}<li><span>{{.}}</span><em>Technical</em></li>{{end}}
    {{range .Skills.Soft}}<li><span>{{.}}</span><em>Soft Skill</em></li>{{end}}
    {{range .Skills.Languages}}<li><span>{{.Name}}</span><em>{{.Level}}</em></li>{{end}}
  </ul>
</section>
{{end}}
{{end}}

{{define "baseCSS"}}
.page { max-width: 210mm; min-height: 297mm; margin: 0 auto; background: #fff; color: #1a1a1a;
        padding: 2rem; font-size: 0.9rem; line-height: 1.5; font-family: {{.Style.FontFamily}}; }
h2 { color: {{.Style.Accent}}; text-transform: {{.Style.HeadingTx}}; border-bottom: 1px solid #d1d5db;
     padding-bottom: 0.2rem; margin: 1.2rem 0 0.6rem; font-size: 1.1rem; }
.entry { margin-bottom: 0.9rem; }
.entry-head { display: flex; justify-content: space-between; align-items: baseline; }
.entry-head h3 { margin: 0; font-size: 1rem; }
.dates { color: #6b7280; font-size: 0.8rem; }
.org { color: {{.Style.Accent}}; font-weight: 600; margin: 0.1rem 0; }
.desc { margin: 0.2rem 0; color: #374151; }
.contact span { margin-inline-end: 1rem; color: #4b5563; }
.skills ul { list-style: none; padding: 0; display: grid; grid-template-columns: 1fr 1fr; gap: 0.3rem 1.5rem; }
.skills li { display: flex; justify-content: space-between; }
.skills em { color: {{.Style.Accent}}; font-style: normal; font-weight: 600; }
{{end}}
`

// structureClassic is a single-column layout with an accent-ruled header.
const structureClassic = `
{{define "resume"}}<!DOCTYPE html>
<html lang="{{.Language}}" dir="{{dir .Language}}">
<head><meta charset="utf-8"><title>{{.Personal.FullName}}</title>
<style>{{template "baseCSS" .}}
header { border-bottom: 4px solid {{.Style.Accent}}; padding-bottom: 1rem; margin-bottom: 1rem; }
header h1 { margin: 0 0 0.3rem; font-size: 1.9rem; }
.title { color: #4b5563; margin: 0 0 0.4rem; }
</style></head>
<body><div class="page">
<header>
  <h1>{{.Personal.FullName}}</h1>
  {{if .Personal.Title}}<p class="title">{{.Personal.Title}}</p>{{end}}
  {{template "contact" .}}
</header>
{{template "summarySection" .}}
{{template "experienceSection" .}}
{{template "educationSection" .}}
{{template "skillsSection" .}}
</div></body></html>{{end}}
`

// structureBanner puts the header on a full-width accent banner.
const structureBanner = `
{{define "resume"}}<!DOCTYPE html>
<html lang="{{.Language}}" dir="{{dir .Language}}">
<head><meta charset="utf-8"><title>{{.Personal.FullName}}</title>
<style>{{template "baseCSS" .}}
.page { padding: 0; }
header { background: {{.Style.Accent}}; color: #fff; padding: 2rem; }
header h1 { margin: 0 0 0.3rem; font-size: 2rem; }
header .title { color: rgba(255,255,255,0.85); margin: 0 0 0.4rem; }
header .contact span { color: rgba(255,255,255,0.85); }
main { padding: 1rem 2rem 2rem; }
</style></head>
<body><div class="page">
<header>
  <h1>{{.Personal.FullName}}</h1>
  {{if .Personal.Title}}<p class="title">{{.Personal.Title}}</p>{{end}}
  {{template "contact" .}}
</header>
<main>
{{template "summarySection" .}}
{{template "experienceSection" .}}
{{template "educationSection" .}}
{{template "skillsSection" .}}
</main>
</div></body></html>{{end}}
`

// structureSidebar places contact and skills in a narrow side column.
const structureSidebar = `
{{define "resume"}}<!DOCTYPE html>
<html lang="{{.Language}}" dir="{{dir .Language}}">
<head><meta charset="utf-8"><title>{{.Personal.FullName}}</title>
<style>{{template "baseCSS" .}}
.page { display: grid; grid-template-columns: 1fr 2.6fr; gap: 1.5rem; }
aside { border-inline-end: 2px solid {{.Style.Accent}}; padding-inline-end: 1rem; }
aside h1 { margin: 0 0 0.3rem; font-size: 1.5rem; }
aside .contact span { display: block; margin: 0 0 0.3rem; }
.skills ul { grid-template-columns: 1fr; }
</style></head>
<body><div class="page">
<aside>
  <h1>{{.Personal.FullName}}</h1>
  {{if .Personal.Title}}<p class="title">{{.Personal.Title}}</p>{{end}}
  {{template "contact" .}}
  {{template "skillsSection" .}}
</aside>
<main>
{{template "summarySection" .}}
{{template "experienceSection" .}}
{{template "educationSection" .}}
</main>
</div></body></html>{{end}}
`

// structureMinimal is a centered, rule-light layout for conservative fields.
const structureMinimal = `
{{define "resume"}}<!DOCTYPE html>
<html lang="{{.Language}}" dir="{{dir .Language}}">
<head><meta charset="utf-8"><title>{{.Personal.FullName}}</title>
<style>{{template "baseCSS" .}}
header { text-align: center; margin-bottom: 1.2rem; }
header h1 { margin: 0 0 0.3rem; font-size: 1.7rem; letter-spacing: 0.06em; }
header .contact span { margin: 0 0.5rem; }
h2 { border-bottom: none; letter-spacing: 0.08em; }
</style></head>
<body><div class="page">
<header>
  <h1>{{.Personal.FullName}}</h1>
  {{if .Personal.Title}}<p class="title">{{.Personal.Title}}</p>{{end}}
  {{template "contact" .}}
</header>
{{template "summarySection" .}}
{{template "experienceSection" .}}
{{template "educationSection" .}}
{{template "skillsSection" .}}
</div></body></html>{{end}}
`

var structures = map[string]string{
	"classic": structureClassic,
	"banner":  structureBanner,
	"sidebar": structureSidebar,
	"minimal": structureMinimal,
}

type catalogDef struct {
	ID          string
	Name        string
	Description string
	Category    string
	IsPremium   bool
	structure   string
	style       layoutStyle
}

// catalog is the canonical template list. Ordering here is the gallery order.
var catalog = []catalogDef{
	{
		ID:          "modern-professional",
		Name:        "Modern Professional",
		Description: "Clean and contemporary design perfect for tech roles",
		Category:    "Technology",
		structure:   "classic",
		style:       layoutStyle{Accent: "#2563eb", FontFamily: "'Helvetica Neue', Arial, sans-serif", HeadingTx: "none"},
	},
	{
		ID:          "executive-elite",
		Name:        "Executive Elite",
		Description: "Sophisticated layout for senior management positions",
		Category:    "Executive",
		IsPremium:   true,
		structure:   "banner",
		style:       layoutStyle{Accent: "#1f2937", FontFamily: "Georgia, 'Times New Roman', serif", HeadingTx: "uppercase"},
	},
	{
		ID:          "creative-portfolio",
		Name:        "Creative Portfolio",
		Description: "Vibrant design for creative and marketing professionals",
		Category:    "Creative",
		IsPremium:   true,
		structure:   "sidebar",
		style:       layoutStyle{Accent: "#db2777", FontFamily: "'Helvetica Neue', Arial, sans-serif", HeadingTx: "none"},
	},
	{
		ID:          "academic-scholar",
		Name:        "Academic Scholar",
		Description: "Traditional format ideal for academic positions",
		Category:    "Academic",
		structure:   "minimal",
		style:       layoutStyle{Accent: "#7c2d12", FontFamily: "Georgia, 'Times New Roman', serif", HeadingTx: "uppercase"},
	},
	{
		ID:          "startup-innovator",
		Name:        "Startup Innovator",
		Description: "Dynamic layout for entrepreneurs and startup professionals",
		Category:    "Startup",
		IsPremium:   true,
		structure:   "banner",
		style:       layoutStyle{Accent: "#059669", FontFamily: "'Helvetica Neue', Arial, sans-serif", HeadingTx: "none"},
	},
	{
		ID:          "classic-professional",
		Name:        "Classic Professional",
		Description: "Timeless design suitable for all industries",
		Category:    "General",
		structure:   "minimal",
		style:       layoutStyle{Accent: "#111827", FontFamily: "Georgia, 'Times New Roman', serif", HeadingTx: "none"},
	},
	{
		ID:          "medical-professional",
		Name:        "Medical Professional",
		Description: "Healthcare-focused layout for medical professionals",
		Category:    "Healthcare",
		IsPremium:   true,
		structure:   "classic",
		style:       layoutStyle{Accent: "#0d9488", FontFamily: "'Helvetica Neue', Arial, sans-serif", HeadingTx: "none"},
	},
	{
		ID:          "finance-expert",
		Name:        "Finance Expert",
		Description: "Sophisticated design for financial industry professionals",
		Category:    "Finance",
		IsPremium:   true,
		structure:   "minimal",
		style:       layoutStyle{Accent: "#064e3b", FontFamily: "Georgia, 'Times New Roman', serif", HeadingTx: "uppercase"},
	},
	{
		ID:          "engineering-professional",
		Name:        "Engineering Professional",
		Description: "Technical layout for engineering professionals",
		Category:    "Engineering",
		IsPremium:   true,
		structure:   "sidebar",
		style:       layoutStyle{Accent: "#475569", FontFamily: "'Helvetica Neue', Arial, sans-serif", HeadingTx: "uppercase"},
	},
	{
		ID:          "sales-executive",
		Name:        "Sales Executive",
		Description: "Dynamic design for sales and business development",
		Category:    "Sales",
		IsPremium:   true,
		structure:   "banner",
		style:       layoutStyle{Accent: "#dc2626", FontFamily: "'Helvetica Neue', Arial, sans-serif", HeadingTx: "none"},
	},
}
