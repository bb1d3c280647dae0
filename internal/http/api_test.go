package handlers_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snapfind/internal/catalog"
	"snapfind/internal/classify"
	"snapfind/internal/domain"
)

func analyzeReq(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/analyze-image", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func imageBody(t *testing.T, img []byte) string {
	t.Helper()
	b, err := json.Marshal(map[string]string{"image": base64.StdEncoding.EncodeToString(img)})
	require.NoError(t, err)
	return string(b)
}

func decodeError(t *testing.T, resp *http.Response) string {
	t.Helper()
	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out["error"]
}

func TestAnalyzeImage_MissingImage(t *testing.T) {
	app, _ := newTestApp(t, labels("cowboy hat"), nil)

	for _, body := range []string{``, `{}`, `{"image":""}`, `{"image":"data:image/png;base64,"}`} {
		resp, err := app.Test(analyzeReq(body))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "body %q", body)
		assert.Equal(t, "No image data provided", decodeError(t, resp), "body %q", body)
	}
}

func TestAnalyzeImage_InvalidImage(t *testing.T) {
	app, _ := newTestApp(t, labels("cowboy hat"), nil)

	resp, err := app.Test(analyzeReq(`{"image":"!!not base64!!"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid image data", decodeError(t, resp))

	big := bytes.Repeat([]byte{1}, (1<<20)+1)
	resp, err = app.Test(analyzeReq(imageBody(t, big)), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid image data", decodeError(t, resp))
}

func TestAnalyzeImage_TableHit(t *testing.T) {
	var got []byte
	app, _ := newTestApp(t, func(_ context.Context, img []byte) ([]domain.Label, error) {
		got = img
		return []domain.Label{{Label: "sombrero", Score: 0.8}, {Label: "cowboy hat", Score: 0.1}}, nil
	}, nil)

	resp, err := app.Test(analyzeReq(imageBody(t, tinyPNG)))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, tinyPNG, got)

	var res domain.AnalysisResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, "sombrero", res.DetectedObject)
	assert.Empty(t, res.Warning)
	assert.Equal(t, "Authentic Mexican Sombrero", res.Product.Title)
	assert.NotEmpty(t, res.Product.ID)
}

func TestAnalyzeImage_DataURLPrefixAccepted(t *testing.T) {
	app, _ := newTestApp(t, labels("microphone"), nil)

	body, _ := json.Marshal(map[string]string{"image": "data:image/png;base64," + base64.StdEncoding.EncodeToString(tinyPNG)})
	resp, err := app.Test(analyzeReq(string(body)))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAnalyzeImage_DegradesWithWarning(t *testing.T) {
	app, _ := newTestApp(t, func(context.Context, []byte) ([]domain.Label, error) {
		return nil, &classify.ServiceError{Status: 503, Body: "model loading"}
	}, nil)

	resp, err := app.Test(analyzeReq(imageBody(t, tinyPNG)))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, _ := io.ReadAll(resp.Body)
	var res domain.AnalysisResult
	require.NoError(t, json.Unmarshal(raw, &res))
	assert.Equal(t, catalog.FallbackWarning, res.Warning)
	assert.Equal(t, "Smart Device", res.Product.Title)
	assert.NotContains(t, string(raw), "detectedObject")
	assert.NotContains(t, string(raw), "model loading")
}

func TestAnalyzeImage_SpecificationOrderOnTheWire(t *testing.T) {
	app, _ := newTestApp(t, labels("cowboy hat"), nil)

	resp, err := app.Test(analyzeReq(imageBody(t, tinyPNG)))
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)

	s := string(raw)
	material := bytes.Index(raw, []byte(`"Material"`))
	brim := bytes.Index(raw, []byte(`"Brim Width"`))
	require.True(t, material > 0 && brim > 0, s)
	assert.Less(t, material, brim)
}

func TestHistoryAPI_PerSession(t *testing.T) {
	app, _ := newTestApp(t, labels("stage"), nil)
	alice := newBrowser(t, app)
	bob := newBrowser(t, app)

	post := func(b *browser, p domain.Product) domain.Product {
		body, _ := json.Marshal(p)
		req := httptest.NewRequest(http.MethodPost, "/api/history", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp := b.do(req)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var saved domain.Product
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&saved))
		return saved
	}
	list := func(b *browser) []domain.Product {
		resp := b.do(httptest.NewRequest(http.MethodGet, "/api/history", nil))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var out struct {
			Products []domain.Product `json:"products"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		return out.Products
	}

	assert.Empty(t, list(alice))

	first := post(alice, domain.Product{Title: "Lamp"})
	assert.NotEmpty(t, first.ID, "id assigned when missing")
	post(alice, domain.Product{ID: "keep-me", Title: "Chair"})

	got := list(alice)
	require.Len(t, got, 2)
	assert.Equal(t, "keep-me", got[0].ID, "newest first")
	assert.Equal(t, first.ID, got[1].ID)
	assert.Empty(t, list(bob), "sessions are isolated")

	resp := alice.do(httptest.NewRequest(http.MethodDelete, "/api/history/keep-me", nil))
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	got = list(alice)
	require.Len(t, got, 1)
	assert.Equal(t, first.ID, got[0].ID)

	// absent id is a no-op
	resp = alice.do(httptest.NewRequest(http.MethodDelete, "/api/history/nope", nil))
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Len(t, list(alice), 1)
}

func TestHistoryAPI_BadInput(t *testing.T) {
	app, _ := newTestApp(t, labels("stage"), nil)
	b := newBrowser(t, app)

	req := httptest.NewRequest(http.MethodPost, "/api/history", bytes.NewBufferString(`{"title":`))
	req.Header.Set("Content-Type", "application/json")
	assert.Equal(t, http.StatusBadRequest, b.do(req).StatusCode)

	resp := b.do(httptest.NewRequest(http.MethodDelete, "/api/history/bad%20id", nil))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHistoryAPI_RejectsUndeletableIDs(t *testing.T) {
	app, _ := newTestApp(t, labels("stage"), nil)
	b := newBrowser(t, app)

	for _, id := range []string{"has space", "a/b", " pad", strings.Repeat("x", 65)} {
		body, _ := json.Marshal(domain.Product{ID: id, Title: "Lamp"})
		req := httptest.NewRequest(http.MethodPost, "/api/history", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		assert.Equal(t, http.StatusBadRequest, b.do(req).StatusCode, "id %q", id)
	}

	resp := b.do(httptest.NewRequest(http.MethodGet, "/api/history", nil))
	var out struct {
		Products []domain.Product `json:"products"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Empty(t, out.Products)
}

func TestUnknownAPIRouteIsJSON404(t *testing.T) {
	app, _ := newTestApp(t, labels("stage"), nil)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "not found", decodeError(t, resp))
}

func TestHealthz(t *testing.T) {
	app, _ := newTestApp(t, labels("stage"), nil)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
