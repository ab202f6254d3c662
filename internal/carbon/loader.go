package carbon

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// offsetFile is the on-disk layout of a species configuration file.
type offsetFile struct {
	Species Catalog `yaml:"species"`
	Mix     Mix     `yaml:"mix"`
}

// LoadRecommender builds a Recommender from a YAML file.
// An empty path yields the built-in catalog and mix. A file may override either
// section; the missing one keeps its default.
func LoadRecommender(path string) (*Recommender, error) {
	if path == "" {
		return NewRecommender(DefaultCatalog(), DefaultMix())
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read species config %s: %w", path, err)
	}

	return ParseRecommender(raw)
}

// ParseRecommender builds a Recommender from YAML bytes.
func ParseRecommender(raw []byte) (*Recommender, error) {
	var file offsetFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode species config: %w", err)
	}

	catalog := file.Species
	if len(catalog) == 0 {
		catalog = DefaultCatalog()
	}
	mix := file.Mix
	if len(mix) == 0 {
		mix = DefaultMix()
	}

	return NewRecommender(catalog, mix)
}
