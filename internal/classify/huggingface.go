package classify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-resty/resty/v2"

	"snapfind/internal/domain"
)

const DefaultHuggingFaceURL = "https://api-inference.huggingface.co/models/google/vit-base-patch16-224"

type HuggingFaceOpts struct {
	URL     string
	Token   string
	Timeout time.Duration
}

// HuggingFace posts raw image bytes to a hosted inference endpoint and
// decodes the [{label, score}] answer.
type HuggingFace struct {
	httpClient *resty.Client
	url        string
	token      string
}

func NewHuggingFace(opts HuggingFaceOpts) *HuggingFace {
	h := HuggingFace{url: DefaultHuggingFaceURL, token: opts.Token}
	if opts.URL != "" {
		h.url = opts.URL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	h.httpClient = resty.New().
		SetTimeout(timeout).
		SetHeaders(map[string]string{
			"Accept":     "application/json",
			"User-Agent": "snapfind/1.0",
		})
	return &h
}

func (h *HuggingFace) Resolve(ctx context.Context, image []byte) ([]domain.Label, error) {
	if len(image) == 0 {
		return nil, ErrEmptyImage
	}
	if h.token == "" {
		return nil, &ConfigurationError{Msg: "Hugging Face token is not configured"}
	}

	resp, err := h.httpClient.R().
		SetContext(ctx).
		SetAuthToken(h.token).
		SetHeader("Content-Type", "application/octet-stream").
		SetBody(image).
		Post(h.url)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	if !resp.IsSuccess() {
		return nil, &ServiceError{Status: resp.StatusCode(), Body: resp.String()}
	}

	var labels []domain.Label
	if err := json.Unmarshal(resp.Body(), &labels); err != nil {
		return nil, &ServiceError{Status: resp.StatusCode(), Body: resp.String()}
	}
	return sortByScore(labels), nil
}
