// Package templates owns the static catalog of resume templates and renders
// a resume document through any of them.
package templates

import (
	"fmt"
	"html/template"

	"github.com/yassine/cvbuilder/internal/resume"
)

// Descriptor is one catalog entry. The catalog is fixed at startup and shared
// read-only by every session.
type Descriptor struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	IsPremium    bool   `json:"is_premium"`
	PreviewImage string `json:"preview_image"`

	style layoutStyle
	tmpl  *template.Template
}

// NotFoundError indicates a template id that does not exist in the catalog.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("template not found: %s", e.ID)
}

// Registry holds the parsed catalog. Construct it once with NewRegistry and
// inject the handle wherever templates are listed, selected, or rendered.
type Registry struct {
	list []*Descriptor
	byID map[string]*Descriptor
}

// NewRegistry parses every layout in the catalog. Declaration order of the
// catalog is the order ListAll returns.
func NewRegistry() (*Registry, error) {
	r := &Registry{byID: make(map[string]*Descriptor, len(catalog))}

	for _, def := range catalog {
		if _, dup := r.byID[def.ID]; dup {
			return nil, fmt.Errorf("duplicate template id in catalog: %s", def.ID)
		}

		structure, ok := structures[def.structure]
		if !ok {
			return nil, fmt.Errorf("template %s references unknown structure %q", def.ID, def.structure)
		}

		tmpl, err := template.New(def.ID).Funcs(renderFuncs).Parse(sharedSections)
		if err != nil {
			return nil, fmt.Errorf("failed to parse shared sections for %s: %w", def.ID, err)
		}
		if tmpl, err = tmpl.Parse(structure); err != nil {
			return nil, fmt.Errorf("failed to parse layout for %s: %w", def.ID, err)
		}

		d := &Descriptor{
			ID:           def.ID,
			Name:         def.Name,
			Description:  def.Description,
			Category:     def.Category,
			IsPremium:    def.IsPremium,
			PreviewImage: "/assets/templates/" + def.ID + ".jpg",
			style:        def.style,
			tmpl:         tmpl,
		}
		r.list = append(r.list, d)
		r.byID[d.ID] = d
	}

	return r, nil
}

// ListAll returns the full catalog in declaration order. The returned slice
// is a copy; the descriptors themselves are shared and must not be mutated.
func (r *Registry) ListAll() []*Descriptor {
	out := make([]*Descriptor, len(r.list))
	copy(out, r.list)
	return out
}

// ByID returns the descriptor for id, or a NotFoundError.
func (r *Registry) ByID(id string) (*Descriptor, error) {
	d, ok := r.byID[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return d, nil
}

// ByCategory returns the descriptors in the given category, catalog order.
func (r *Registry) ByCategory(category string) []*Descriptor {
	var out []*Descriptor
	for _, d := range r.list {
		if d.Category == category {
			out = append(out, d)
		}
	}
	return out
}

// FreeOnly returns the non-premium descriptors, catalog order.
func (r *Registry) FreeOnly() []*Descriptor {
	var out []*Descriptor
	for _, d := range r.list {
		if !d.IsPremium {
			out = append(out, d)
		}
	}
	return out
}

// PremiumOnly returns the premium descriptors, catalog order.
func (r *Registry) PremiumOnly() []*Descriptor {
	var out []*Descriptor
	for _, d := range r.list {
		if d.IsPremium {
			out = append(out, d)
		}
	}
	return out
}

// CanUse is the single premium-gating predicate. Every call site that lets a
// user pick a template (wizard step, gallery, preview) must consult it at the
// point of use; the registry itself never blocks a render.
func CanUse(subscriptionTier string, d *Descriptor) bool {
	if !d.IsPremium {
		return true
	}
	return subscriptionTier != "" && subscriptionTier != resume.TierFree
}
