package carbon

import (
	"fmt"
	"math"
)

// SpeciesProfile describes a tree species used for offset sizing.
type SpeciesProfile struct {
	ID                     string  `json:"id" bson:"id" yaml:"id"`
	Name                   string  `json:"name" bson:"name" yaml:"name"`
	SequestrationKgPerYear float64 `json:"sequestration_kg_per_year" bson:"sequestration_kg_per_year" yaml:"sequestration_kg_per_year"`
	Type                   string  `json:"type" bson:"type" yaml:"type"`
	Note                   string  `json:"note" bson:"note" yaml:"note"`
}

// Catalog is an ordered set of species profiles.
type Catalog []SpeciesProfile

// DefaultCatalog returns the built-in four-species catalog.
func DefaultCatalog() Catalog {
	return Catalog{
		{
			ID:                     "neem",
			Name:                   "Neem",
			SequestrationKgPerYear: 25,
			Type:                   "Native hardwood",
			Note:                   "Drought tolerant, filters dust and improves urban air.",
		},
		{
			ID:                     "peepal",
			Name:                   "Peepal",
			SequestrationKgPerYear: 30,
			Type:                   "Native fig",
			Note:                   "Long-lived canopy tree that supports birds and insects.",
		},
		{
			ID:                     "mango",
			Name:                   "Mango",
			SequestrationKgPerYear: 20,
			Type:                   "Fruit tree",
			Note:                   "Provides shade and fruit for the planting community.",
		},
		{
			ID:                     "bamboo",
			Name:                   "Bamboo",
			SequestrationKgPerYear: 35,
			Type:                   "Fast-growing grass",
			Note:                   "Establishes quickly and binds soil on degraded land.",
		},
	}
}

// Lookup finds a species by id.
func (c Catalog) Lookup(id string) (SpeciesProfile, bool) {
	for _, s := range c {
		if s.ID == id {
			return s, true
		}
	}
	return SpeciesProfile{}, false
}

// Validate checks that ids are unique and yields are usable.
func (c Catalog) Validate() error {
	seen := make(map[string]struct{}, len(c))
	for i, s := range c {
		if s.ID == "" {
			return fmt.Errorf("%w: entry %d has no id", ErrInvalidSpecies, i)
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("%w: duplicate id %q", ErrInvalidSpecies, s.ID)
		}
		seen[s.ID] = struct{}{}

		y := s.SequestrationKgPerYear
		if math.IsNaN(y) || math.IsInf(y, 0) || y <= 0 {
			return fmt.Errorf("%w: %q sequestration must be positive", ErrInvalidSpecies, s.ID)
		}
	}
	return nil
}
