package crawler

import (
	"context"

	"github.com/antzucaro/matchr"
)

const regionSimilarityThreshold = 0.9

type RegionPair struct {
	Left       string  `json:"left"`
	Right      string  `json:"right"`
	Similarity float64 `json:"similarity"`
}

// SimilarRegionPairs flags region values that are suspiciously close to
// each other. unknown raw locations fall through normalization
// unchanged, so near-duplicate spellings accumulate as separate regions
// over time; this surfaces them for a manual alias table update, it
// never merges anything on its own.
func SimilarRegionPairs(regions []string, threshold float64) []RegionPair {
	var pairs []RegionPair
	for i := 0; i < len(regions); i++ {
		for j := i + 1; j < len(regions); j++ {
			similarity := matchr.JaroWinkler(regions[i], regions[j], false)
			if similarity >= threshold {
				pairs = append(pairs, RegionPair{
					Left:       regions[i],
					Right:      regions[j],
					Similarity: similarity,
				})
			}
		}
	}
	return pairs
}

func (s Service) SimilarRegions(ctx context.Context) ([]RegionPair, error) {
	ctx, span := tracer.Start(ctx, "SimilarRegions")
	defer span.End()

	regions, err := s.store.ListRegions(ctx)
	if err != nil {
		return nil, err
	}
	return SimilarRegionPairs(regions, regionSimilarityThreshold), nil
}
