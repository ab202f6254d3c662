package carbon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRecommender_EmptyPathUsesDefaults(t *testing.T) {
	rec, err := LoadRecommender("")
	require.NoError(t, err)

	assert.Equal(t, DefaultCatalog(), rec.Catalog())
	assert.Equal(t, DefaultMix(), rec.Mix())
}

func TestLoadRecommender_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "species.yaml")
	content := `
species:
  - id: teak
    name: Teak
    sequestration_kg_per_year: 40
    type: Timber
    note: Slow but steady.
  - id: jamun
    name: Jamun
    sequestration_kg_per_year: 20
mix:
  - category: timber
    species_ids: [teak]
    share: 0.5
    rationale: Long-lived storage.
  - category: fruit
    species_ids: [jamun]
    share: 0.5
    rationale: Feeds wildlife.
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	rec, err := LoadRecommender(path)
	require.NoError(t, err)

	recs := rec.Recommend(1)
	require.Len(t, recs, 2)
	assert.Equal(t, "teak", recs[0].ID)
	assert.Equal(t, 13, recs[0].Count) // 500 / 40
	assert.Equal(t, "Feeds wildlife.", recs[1].Rationale)
	assert.Equal(t, 25, recs[1].Count) // 500 / 20
}

func TestParseRecommender_MixOnlyKeepsDefaultCatalog(t *testing.T) {
	rec, err := ParseRecommender([]byte(`
mix:
  - category: all
    species_ids: [neem, peepal]
    share: 1
`))
	require.NoError(t, err)

	assert.Equal(t, DefaultCatalog(), rec.Catalog())
	assert.Len(t, rec.Recommend(0), 2)
}

func TestParseRecommender_RejectsInvalidMix(t *testing.T) {
	_, err := ParseRecommender([]byte(`
mix:
  - category: all
    species_ids: [neem]
    share: 0.9
`))
	assert.ErrorIs(t, err, ErrInvalidMix)
}

func TestLoadRecommender_MissingFile(t *testing.T) {
	_, err := LoadRecommender(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseRecommender_MalformedYAML(t *testing.T) {
	_, err := ParseRecommender([]byte("species: [unterminated"))
	assert.Error(t, err)
}
