package algorithms

import (
	"gonum.org/v1/gonum/stat"

	"github.com/mihai-snyk/genetic-search/pkg/evolution/framework"
)

// GenerationStats summarizes the fitness of one generation.
type GenerationStats struct {
	Generation int     `json:"generation"`
	Best       float64 `json:"best"`
	Mean       float64 `json:"mean"`
	StdDev     float64 `json:"stdDev"`
}

// NewGenerationStats scores every member of pop.
func NewGenerationStats(generation int, pop *framework.Population) (GenerationStats, error) {
	best, err := pop.FittestIndex()
	if err != nil {
		return GenerationStats{}, err
	}
	scores := pop.Scores()
	mean, std := stat.MeanStdDev(scores, nil)
	return GenerationStats{
		Generation: generation,
		Best:       scores[best],
		Mean:       mean,
		StdDev:     std,
	}, nil
}
