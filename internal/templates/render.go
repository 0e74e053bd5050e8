package templates

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yassine/cvbuilder/internal/resume"
)

// layoutStyle carries the per-template presentation knobs. The ten layouts
// share their section markup and differ in structure, accent color, and type.
// The values are trusted catalog constants, hence template.CSS.
type layoutStyle struct {
	Accent     template.CSS // color for headings and rules
	FontFamily template.CSS
	HeadingTx  template.CSS // text-transform for section headings
}

// renderData is what the layout templates execute against.
type renderData struct {
	resume.Document
	Style layoutStyle
}

// presentToken returns the locale-appropriate word for an ongoing date range.
func presentToken(lang string) string {
	switch lang {
	case "ar":
		return "الحالي"
	case "fr":
		return "Présent"
	default:
		return "Present"
	}
}

// dateRange formats "start - end", substituting the present token whenever
// current is true, no matter what end date is stored.
func dateRange(start, end string, current bool, lang string) string {
	if current {
		end = presentToken(lang)
	}
	if start == "" && end == "" {
		return ""
	}
	return fmt.Sprintf("%s - %s", start, end)
}

// hasSkills reports whether any of the three skill lists has content, so the
// skills section can be omitted as a whole when all are empty.
func hasSkills(s resume.Skills) bool {
	return len(s.Technical) > 0 || len(s.Soft) > 0 || len(s.Languages) > 0
}

// dir returns the text direction for the document language, so Arabic
// documents render right-to-left.
func dir(lang string) string {
	if lang == "ar" {
		return "rtl"
	}
	return "ltr"
}

var renderFuncs = template.FuncMap{
	"dateRange": dateRange,
	"hasSkills": hasSkills,
	"dir":       dir,
}

// Render produces the complete HTML page for a document. It never fails on a
// well-formed document: sections backed by empty data are omitted entirely
// rather than rendered as empty containers.
func (d *Descriptor) Render(doc resume.Document) (string, error) {
	var buf bytes.Buffer
	data := renderData{Document: doc, Style: d.style}
	if err := d.tmpl.ExecuteTemplate(&buf, "resume", data); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", d.ID, err)
	}
	return buf.String(), nil
}
