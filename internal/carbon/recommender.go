package carbon

import "math"

// Recommendation is one species line of an offset plan.
type Recommendation struct {
	SpeciesProfile `bson:",inline"`
	Count          int    `json:"count" bson:"count"`
	Rationale      string `json:"rationale" bson:"rationale"`
}

// Recommender sizes tree plantings against a validated catalog and mix.
type Recommender struct {
	catalog Catalog
	mix     Mix
}

// NewRecommender validates the catalog and mix once and returns a Recommender.
func NewRecommender(catalog Catalog, mix Mix) (*Recommender, error) {
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	if err := mix.Validate(catalog); err != nil {
		return nil, err
	}

	return &Recommender{
		catalog: append(Catalog(nil), catalog...),
		mix:     append(Mix(nil), mix...),
	}, nil
}

// Catalog returns a copy of the species catalog.
func (r *Recommender) Catalog() Catalog {
	return append(Catalog(nil), r.catalog...)
}

// Mix returns a copy of the allocation mix.
func (r *Recommender) Mix() Mix {
	return append(Mix(nil), r.mix...)
}

// Recommend converts a footprint in tonnes into a planting plan.
//
// Each mix category receives share × total kg, split evenly across its species.
// A species needs ceil(allocated kg / yearly sequestration) trees, and never
// fewer than one: even a zero footprint yields one tree per species. A line
// never exceeds MaxTreesPerSpecies.
// Negative or non-finite totals are treated as zero.
func (r *Recommender) Recommend(totalTonnes float64) []Recommendation {
	if math.IsNaN(totalTonnes) || math.IsInf(totalTonnes, 0) || totalTonnes < 0 {
		totalTonnes = 0
	}
	totalKg := totalTonnes * KgPerTonne

	var out []Recommendation
	for _, entry := range r.mix {
		perSpeciesKg := entry.Share * totalKg / float64(len(entry.SpeciesIDs))

		for _, id := range entry.SpeciesIDs {
			species, ok := r.catalog.Lookup(id)
			if !ok {
				continue
			}
			out = append(out, Recommendation{
				SpeciesProfile: species,
				Count:          treeCount(perSpeciesKg, species.SequestrationKgPerYear),
				Rationale:      entry.Rationale,
			})
		}
	}

	return out
}

// TotalTrees sums the counts of a plan, saturating at math.MaxInt.
func TotalTrees(recs []Recommendation) int {
	var n int
	for _, r := range recs {
		if r.Count <= 0 {
			continue
		}
		if n > math.MaxInt-r.Count {
			return math.MaxInt
		}
		n += r.Count
	}
	return n
}

// treeCount stays in float space until the result is known to fit.
func treeCount(allocatedKg, yieldKg float64) int {
	count := math.Ceil(allocatedKg / yieldKg)
	switch {
	case math.IsNaN(count) || count < 1:
		return 1
	case count >= MaxTreesPerSpecies:
		return MaxTreesPerSpecies
	default:
		return int(count)
	}
}
