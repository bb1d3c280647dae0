// Package catalog maps classifier labels to product descriptions: a fixed
// table of hand-written templates, a generic template for anything else, and
// a fixed fallback product for when classification fails.
package catalog

import (
	"strings"

	"github.com/google/uuid"

	"snapfind/internal/domain"
)

// FallbackWarning is attached to every degraded result.
const FallbackWarning = "Using demo data. The image analysis API encountered an error."

type Synthesizer struct {
	newID func() string
}

func NewSynthesizer() *Synthesizer { return &Synthesizer{newID: uuid.NewString} }

// MainObject is the part of a label before the first comma, trimmed.
func MainObject(label string) string {
	if i := strings.IndexByte(label, ','); i >= 0 {
		label = label[:i]
	}
	return strings.TrimSpace(label)
}

// Match returns the table key the label resolves to, or "" for the generic path.
func Match(label string) string {
	e, ok := lookup(MainObject(label))
	if !ok {
		return ""
	}
	return e.key
}

func lookup(main string) (entry, bool) {
	lower := strings.ToLower(main)
	for _, e := range table {
		if strings.Contains(lower, e.key) {
			return e, true
		}
	}
	return entry{}, false
}

// Synthesize never fails. Every call gets a fresh id, table hits included.
func (s *Synthesizer) Synthesize(label string) domain.Product {
	main := MainObject(label)
	if e, ok := lookup(main); ok {
		p := e.template.Clone()
		p.ID = s.newID()
		return p
	}
	return s.generic(main)
}

func (s *Synthesizer) generic(main string) domain.Product {
	title := TitleCase(main)
	return domain.Product{
		ID:          s.newID(),
		Title:       title,
		Description: "High-quality " + strings.ToLower(main) + " with premium materials and excellent craftsmanship. Perfect for both casual and formal occasions.",
		Categories:  []string{"Fashion", "Accessories", "Apparel"},
		Pros:        []string{"Premium quality materials", "Stylish design", "Comfortable fit", "Durable construction"},
		Cons:        []string{"Premium price point", "Limited color options", "May require special care"},
		Specifications: domain.Specs{
			{Name: "Material", Value: "Premium fabrics and materials"},
			{Name: "Style", Value: "Contemporary"},
			{Name: "Care", Value: "Hand wash or dry clean recommended"},
			{Name: "Origin", Value: "Imported"},
			{Name: "Warranty", Value: "1 year manufacturer warranty"},
		},
		RelatedItems: []domain.RelatedProduct{
			related("1", "Deluxe "+title, "A premium version with enhanced features.", "$129.99"),
			related("2", title+" Essentials", "A more affordable version with core features.", "$59.99"),
			related("3", title+" Care Kit", "Everything you need for proper maintenance.", "$24.99"),
			related("4", title+" Accessories", "Enhance your experience with these matching accessories.", "$39.99"),
		},
	}
}

// Fallback is the fixed product served when classification fails.
func (s *Synthesizer) Fallback() domain.Product {
	return domain.Product{
		ID:          s.newID(),
		Title:       "Smart Device",
		Description: "A versatile smart device with excellent features and design. Perfect for everyday use and built to last.",
		Categories:  []string{"Electronics", "Gadgets", "Technology"},
		Pros:        []string{"High quality materials", "Excellent durability", "Great value for money", "Stylish design"},
		Cons:        []string{"May be more expensive than alternatives", "Limited color options", "Requires occasional maintenance"},
		Specifications: domain.Specs{
			{Name: "Brand", Value: "Premium Brand"},
			{Name: "Material", Value: "High-grade materials"},
			{Name: "Dimensions", Value: "10 x 15 x 5 inches"},
			{Name: "Weight", Value: "1.2 lbs"},
			{Name: "Warranty", Value: "2 years"},
		},
		RelatedItems: []domain.RelatedProduct{
			related("1", "Premium Smart Device", "A higher-end version with additional features.", "$129.99"),
			related("2", "Smart Device Lite", "A more affordable version.", "$79.99"),
			related("3", "Smart Device Pro", "Professional-grade for serious users.", "$199.99"),
			related("4", "Smart Device Accessories", "Essential accessories.", "$49.99"),
		},
		Warning: FallbackWarning,
	}
}

// TitleCase upper-cases the first character of every run of ASCII word
// characters ([A-Za-z0-9_]); everything else is left as is.
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevWord := false
	for _, r := range s {
		word := r == '_' || ('0' <= r && r <= '9') || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
		if word && !prevWord && 'a' <= r && r <= 'z' {
			r -= 'a' - 'A'
		}
		b.WriteRune(r)
		prevWord = word
	}
	return b.String()
}
