package domain

type Product struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	Categories     []string         `json:"categories"`
	Pros           []string         `json:"pros"`
	Cons           []string         `json:"cons"`
	Specifications Specs            `json:"specifications"`
	RelatedItems   []RelatedProduct `json:"relatedItems"`
	ImageURL       string           `json:"imageUrl,omitempty"`
	Warning        string           `json:"warning,omitempty"`
}

type RelatedProduct struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"` // display string, e.g. "$129.99"
	ImageURL    string `json:"imageUrl,omitempty"`
}

// Clone returns a deep copy; templates are never handed out directly.
func (p Product) Clone() Product {
	out := p
	out.Categories = append([]string(nil), p.Categories...)
	out.Pros = append([]string(nil), p.Pros...)
	out.Cons = append([]string(nil), p.Cons...)
	out.Specifications = append(Specs(nil), p.Specifications...)
	out.RelatedItems = append([]RelatedProduct(nil), p.RelatedItems...)
	return out
}

// Label is one classification returned by the image classifier.
type Label struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// AnalysisResult is what the analyze endpoint returns. Not persisted.
type AnalysisResult struct {
	Product        Product `json:"product"`
	DetectedObject string  `json:"detectedObject,omitempty"`
	Warning        string  `json:"warning,omitempty"`
}
