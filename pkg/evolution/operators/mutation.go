package operators

import (
	"fmt"
	"math/rand/v2"

	"github.com/mihai-snyk/genetic-search/pkg/evolution/framework"
)

// Mutation perturbs a genome in place. Rate 0 never changes a genome and
// rate 1 always triggers.
type Mutation struct {
	Rate float64
}

// Mutate applies the representation-specific mutation to g.
func (m Mutation) Mutate(rng *rand.Rand, g framework.Genome) error {
	switch genome := g.(type) {
	case *framework.BitGenome:
		return BitFlip(rng, genome, m.Rate)
	case *framework.PermutationGenome:
		_, err := SwapMutation(rng, genome, m.Rate)
		return err
	default:
		return fmt.Errorf("unsupported genome type %T", g)
	}
}

// BitFlip replaces every locus, with probability rate, by a fresh random bit.
// The new bit may coincide with the old one.
func BitFlip(rng *rand.Rand, g *framework.BitGenome, rate float64) error {
	for i := 0; i < g.Len(); i++ {
		if rng.Float64() < rate {
			if err := g.Set(i, rng.IntN(2)); err != nil {
				return err
			}
		}
	}
	return nil
}

// SwapMutation swaps two distinct loci with probability rate, evaluated once
// per genome. Genomes shorter than two loci are left untouched. It reports
// whether a swap happened.
func SwapMutation(rng *rand.Rand, g *framework.PermutationGenome, rate float64) (bool, error) {
	if rng.Float64() >= rate || g.Len() < 2 {
		return false, nil
	}
	i := rng.IntN(g.Len())
	j := rng.IntN(g.Len())
	for i == j {
		j = rng.IntN(g.Len())
	}
	if err := g.Swap(i, j); err != nil {
		return false, err
	}
	return true, nil
}
