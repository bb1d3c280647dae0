package kv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snapfind/internal/kv"
)

func TestMemoryStore(t *testing.T) {
	m := kv.NewMemory()

	_, ok, err := m.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set("a", "1"))
	require.NoError(t, m.Set("a", "2"))
	v, ok, err := m.Get("a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2", v)

	require.NoError(t, m.Delete("a"))
	_, ok, _ = m.Get("a")
	assert.False(t, ok)

	// deleting an absent key is fine
	assert.NoError(t, m.Delete("a"))
}

func TestStoresImplementInterface(t *testing.T) {
	var _ kv.Store = (*kv.Redis)(nil)
	var _ kv.Store = (*kv.Memory)(nil)
}
