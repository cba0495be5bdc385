package benchmarks

import (
	"fmt"
	"math/rand/v2"

	"github.com/mihai-snyk/genetic-search/pkg/evolution/framework"
)

const (
	RoyalRoadName = "RoyalRoad"

	// DefaultGenomeLength is the bit string length used when none is configured.
	DefaultGenomeLength = 64
)

// RoyalRoad rewards bit strings for agreeing with a hidden target, one point
// per matching locus. The optimum equals the genome length.
type RoyalRoad struct {
	target *framework.BitGenome
}

var (
	_ framework.Problem         = &RoyalRoad{}
	_ framework.FitnessFunction = &RoyalRoad{}
)

// NewRoyalRoad scores against a copy of target.
func NewRoyalRoad(target *framework.BitGenome) *RoyalRoad {
	return &RoyalRoad{
		target: target.Clone().(*framework.BitGenome),
	}
}

// RandomRoyalRoad draws a random target of the given length.
func RandomRoyalRoad(rng *rand.Rand, length int) *RoyalRoad {
	return &RoyalRoad{
		target: framework.RandomBitGenome(rng, length),
	}
}

func (p *RoyalRoad) Name() string {
	return RoyalRoadName
}

func (p *RoyalRoad) Fitness() framework.FitnessFunction {
	return p
}

// Target returns a copy of the hidden target.
func (p *RoyalRoad) Target() *framework.BitGenome {
	return p.target.Clone().(*framework.BitGenome)
}

// NewGenome returns a random bit string of the target's length.
func (p *RoyalRoad) NewGenome(rng *rand.Rand) framework.Genome {
	return framework.RandomBitGenome(rng, p.target.Len())
}

// Score counts the loci equal to the target. Scoring a genome of another
// kind or length is a programming error and panics.
func (p *RoyalRoad) Score(g framework.Genome) float64 {
	bits, ok := g.(*framework.BitGenome)
	if !ok {
		panic(fmt.Sprintf("%s: cannot score %s genome", RoyalRoadName, g.Kind()))
	}
	if bits.Len() != p.target.Len() {
		panic(fmt.Sprintf("%s: genome length %d, want %d", RoyalRoadName, bits.Len(), p.target.Len()))
	}

	score := 0
	for i := 0; i < bits.Len(); i++ {
		a, _ := bits.Get(i)
		b, _ := p.target.Get(i)
		if a == b {
			score++
		}
	}
	return float64(score)
}

func (p *RoyalRoad) MaxFitness() (float64, bool) {
	return float64(p.target.Len()), true
}
