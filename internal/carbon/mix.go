package carbon

import (
	"fmt"
	"math"
)

// shareTolerance bounds the rounding slack allowed when mix shares are summed.
const shareTolerance = 1e-9

// MixEntry allocates a share of the total offset mass to a set of species.
type MixEntry struct {
	Category   string   `json:"category" yaml:"category"`
	SpeciesIDs []string `json:"species_ids" yaml:"species_ids"`
	Share      float64  `json:"share" yaml:"share"`
	Rationale  string   `json:"rationale" yaml:"rationale"`
}

// Mix is the ordered allocation of offset mass across categories.
type Mix []MixEntry

// DefaultMix splits the offset evenly over the four default species.
func DefaultMix() Mix {
	return Mix{
		{
			Category:   "air_quality",
			SpeciesIDs: []string{"neem"},
			Share:      0.25,
			Rationale:  "Improves local air quality and tolerates dry summers.",
		},
		{
			Category:   "biodiversity",
			SpeciesIDs: []string{"peepal"},
			Share:      0.25,
			Rationale:  "Large native canopy that shelters birds and pollinators.",
		},
		{
			Category:   "community",
			SpeciesIDs: []string{"mango"},
			Share:      0.25,
			Rationale:  "Gives shade and fruit back to the people who plant it.",
		},
		{
			Category:   "fast_sequestration",
			SpeciesIDs: []string{"bamboo"},
			Share:      0.25,
			Rationale:  "Captures carbon quickly while slower trees mature.",
		},
	}
}

// Validate checks the mix against a catalog: every entry needs species that
// exist in the catalog and a positive share, and shares must sum to 1.
func (m Mix) Validate(c Catalog) error {
	if len(m) == 0 {
		return fmt.Errorf("%w: no categories", ErrInvalidMix)
	}

	var sum float64
	for _, entry := range m {
		if len(entry.SpeciesIDs) == 0 {
			return fmt.Errorf("%w: category %q has no species", ErrInvalidMix, entry.Category)
		}
		if math.IsNaN(entry.Share) || math.IsInf(entry.Share, 0) || entry.Share <= 0 {
			return fmt.Errorf("%w: category %q share must be positive", ErrInvalidMix, entry.Category)
		}
		for _, id := range entry.SpeciesIDs {
			if _, ok := c.Lookup(id); !ok {
				return fmt.Errorf("%w: %q in category %q", ErrUnknownSpecies, id, entry.Category)
			}
		}
		sum += entry.Share
	}

	if math.Abs(sum-1) > shareTolerance {
		return fmt.Errorf("%w: shares sum to %g, want 1", ErrInvalidMix, sum)
	}
	return nil
}
