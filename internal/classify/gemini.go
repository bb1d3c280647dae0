package classify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"google.golang.org/genai"

	"snapfind/internal/domain"
)

const DefaultGeminiModel = "gemini-2.5-flash"

const geminiPrompt = `Classify the main object in this image.

Respond with a JSON array of up to 5 objects with these fields, ordered by descending score:
- label: a short ImageNet-style label, comma separated synonyms allowed (e.g. "cowboy hat, ten-gallon hat")
- score: confidence between 0 and 1

Example response:
[{"label": "microphone, mike", "score": 0.91}, {"label": "stage", "score": 0.04}]

Respond ONLY with the JSON array, no markdown or other text.`

// Gemini asks a multimodal model for classifier-shaped labels. The client is
// created on first use so a missing key surfaces as a ConfigurationError.
type Gemini struct {
	apiKey string
	model  string

	once    sync.Once
	client  *genai.Client
	initErr error
}

func NewGemini(apiKey, model string) *Gemini {
	if model == "" {
		model = DefaultGeminiModel
	}
	return &Gemini{apiKey: apiKey, model: model}
}

func (g *Gemini) Resolve(ctx context.Context, image []byte) ([]domain.Label, error) {
	if len(image) == 0 {
		return nil, ErrEmptyImage
	}
	if g.apiKey == "" {
		return nil, &ConfigurationError{Msg: "Gemini API key is not configured"}
	}
	g.once.Do(func() {
		g.client, g.initErr = genai.NewClient(ctx, &genai.ClientConfig{APIKey: g.apiKey})
	})
	if g.initErr != nil {
		return nil, &ConfigurationError{Msg: g.initErr.Error()}
	}

	parts := []*genai.Part{
		genai.NewPartFromText(geminiPrompt),
		{InlineData: &genai.Blob{Data: image, MIMEType: http.DetectContentType(image)}},
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return nil, &ServiceError{Status: apiErr.Code, Body: apiErr.Message}
		}
		return nil, &NetworkError{Err: err}
	}
	if len(result.Candidates) == 0 {
		return nil, &ServiceError{Status: http.StatusOK, Body: "no candidates"}
	}
	labels, err := parseLabels(result.Text())
	if err != nil {
		return nil, &ServiceError{Status: http.StatusOK, Body: err.Error()}
	}
	return sortByScore(labels), nil
}

func parseLabels(text string) ([]domain.Label, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var labels []domain.Label
	if err := json.Unmarshal([]byte(text), &labels); err != nil {
		return nil, fmt.Errorf("failed to parse labels: %w (response: %s)", err, truncate(text, 200))
	}
	return labels, nil
}
