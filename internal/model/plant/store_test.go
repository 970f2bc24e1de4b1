package plant

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreLookups(t *testing.T) {
	store := NewMemoryStore(Seed())

	items := store.List()
	require.Len(t, items, 5)
	assert.Equal(t, "tomato-plant", items[0].ID)

	got, ok := store.FindByID("corn")
	require.True(t, ok)
	assert.Equal(t, "Corn", got.Name)

	got, ok = store.FindByName("  tomato plant ")
	require.True(t, ok)
	assert.Equal(t, "tomato-plant", got.ID)
	assert.Len(t, got.Issues, 3)

	_, ok = store.FindByID("cassava")
	assert.False(t, ok)
}

func TestMemoryStoreListIsCopy(t *testing.T) {
	store := NewMemoryStore(Seed())

	items := store.List()
	items[0].Name = "changed"

	got, _ := store.FindByID("tomato-plant")
	assert.Equal(t, "Tomato Plant", got.Name)
}

func TestParseCatalog(t *testing.T) {
	data := []byte(`
plants:
  - id: cassava
    name: " Cassava "
    growingConditions:
      light: Full sun
    commonIssues:
      - name: Mosaic Virus
        severity: high
        description: Mottled leaves
        solution: Remove infected plants
  - id: beans
    name: Beans
    healthStatus: poor
`)

	plants, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, plants, 2)

	assert.Equal(t, "Cassava", plants[0].Name)
	assert.Equal(t, Healthy, plants[0].HealthStatus)
	assert.Equal(t, "Full sun", plants[0].Growing.Light)
	assert.Equal(t, SeverityHigh, plants[0].Issues[0].Severity)
	assert.Equal(t, Poor, plants[1].HealthStatus)
}

func TestParseCatalogErrors(t *testing.T) {
	cases := map[string]string{
		"empty":      "plants: []",
		"missing id": "plants:\n  - name: Beans\n",
		"duplicate":  "plants:\n  - {id: a, name: A}\n  - {id: a, name: B}\n",
		"health":     "plants:\n  - {id: a, name: A, healthStatus: dying}\n",
		"severity":   "plants:\n  - id: a\n    name: A\n    commonIssues:\n      - {name: X, severity: extreme}\n",
		"syntax":     "plants: [",
	}

	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("plants:\n  - {id: okra, name: Okra}\n"), 0o600))

	plants, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "okra", plants[0].ID)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestCatalogFallsBackToSeed(t *testing.T) {
	plants, err := Catalog("")
	require.NoError(t, err)
	assert.Equal(t, Seed(), plants)
}
