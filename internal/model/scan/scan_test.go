package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore(Seed())
	require.Len(t, store.List(), 5)

	got, ok := store.FindByID("4")
	require.True(t, ok)
	assert.Equal(t, "Soybean", got.PlantName)
	assert.Equal(t, Critical, got.HealthStatus)

	_, ok = store.FindByID("42")
	assert.False(t, ok)
}
