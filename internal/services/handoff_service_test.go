package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snapfind/internal/domain"
	"snapfind/internal/kv"
	"snapfind/internal/services"
)

func TestHandoff_Captured(t *testing.T) {
	h := services.NewHandoffService(kv.NewMemory())

	_, ok := h.Captured("sid")
	assert.False(t, ok)

	require.NoError(t, h.SetCaptured("sid", "data:image/png;base64,AAAA"))
	v, ok := h.Captured("sid")
	assert.True(t, ok)
	assert.Equal(t, "data:image/png;base64,AAAA", v)

	require.NoError(t, h.ClearCaptured("sid"))
	_, ok = h.Captured("sid")
	assert.False(t, ok)
}

func TestHandoff_TakeSelectedClearsSlot(t *testing.T) {
	h := services.NewHandoffService(kv.NewMemory())

	p := domain.Product{ID: "p1", Title: "Hat", Specifications: domain.Specs{{Name: "Size", Value: "L"}}}
	require.NoError(t, h.Select("sid", p))

	got, ok := h.TakeSelected("sid")
	require.True(t, ok)
	assert.Equal(t, p, got)

	_, ok = h.TakeSelected("sid")
	assert.False(t, ok)
}
