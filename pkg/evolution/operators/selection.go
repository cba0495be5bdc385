package operators

import (
	"fmt"
	"math/rand/v2"

	"github.com/mihai-snyk/genetic-search/pkg/evolution/framework"
)

// Tournament draws Size members with replacement and keeps the fittest.
// Small sizes favour exploration, large sizes exploitation; a size at or
// above the population size approaches full-population fittest selection.
type Tournament struct {
	Size int
}

func (Tournament) Name() string {
	return "tournament"
}

// Select returns the winning member. The genome is shared with pop.
func (t Tournament) Select(rng *rand.Rand, pop *framework.Population) (framework.Genome, error) {
	i, err := t.SelectIndex(rng, pop)
	if err != nil {
		return nil, err
	}
	return pop.At(i), nil
}

// SelectIndex is Select returning the winner's index in pop.
func (t Tournament) SelectIndex(rng *rand.Rand, pop *framework.Population) (int, error) {
	if t.Size < 1 {
		return -1, fmt.Errorf("invalid tournament size: %d", t.Size)
	}
	best, err := pop.RandomIndex(rng)
	if err != nil {
		return -1, err
	}

	for i := 1; i < t.Size; i++ {
		contestant, _ := pop.RandomIndex(rng)
		if pop.Score(contestant) > pop.Score(best) {
			best = contestant
		}
	}
	return best, nil
}
