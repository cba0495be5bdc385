package operators

import (
	"fmt"
	"math/rand/v2"

	"github.com/mihai-snyk/genetic-search/pkg/evolution/framework"
)

// SegmentPolicy decides how the two cut points of the ordered-segment
// crossover are turned into a slice of the first parent.
type SegmentPolicy string

const (
	// SegmentSorted draws both cut points in [0, L] and orders them, so any
	// contiguous segment, including the empty and the full one, can be taken.
	SegmentSorted SegmentPolicy = "Sorted"
	// SegmentUnsorted draws both cut points in [0, L) and uses them as drawn.
	// When the first exceeds the second the segment is empty and the child is
	// a copy of the second parent.
	SegmentUnsorted SegmentPolicy = "Unsorted"
)

// Crossover recombines two parents of the same representation into one child.
type Crossover struct {
	// UniformRate is the per-locus probability of inheriting from the first
	// parent in uniform crossover.
	UniformRate float64
	// Segment selects the cut point policy of ordered-segment crossover.
	Segment SegmentPolicy
}

// Cross produces a new child owned by the caller. Parents are not modified.
func (c Crossover) Cross(rng *rand.Rand, parent1, parent2 framework.Genome) (framework.Genome, error) {
	if parent1.Kind() != parent2.Kind() {
		return nil, fmt.Errorf("%w: %s and %s", framework.ErrKindMismatch, parent1.Kind(), parent2.Kind())
	}
	if parent1.Len() != parent2.Len() {
		return nil, fmt.Errorf("%w: %d and %d", framework.ErrLengthMismatch, parent1.Len(), parent2.Len())
	}

	switch p1 := parent1.(type) {
	case *framework.BitGenome:
		return UniformCrossover(rng, p1, parent2.(*framework.BitGenome), c.UniformRate), nil
	case *framework.PermutationGenome:
		child, err := OrderedCrossover(rng, p1, parent2.(*framework.PermutationGenome), c.Segment)
		if err != nil {
			return nil, err
		}
		return child, nil
	default:
		return nil, fmt.Errorf("unsupported genome type %T", parent1)
	}
}

// UniformCrossover takes each locus from p1 with probability rate and from
// p2 otherwise. Both parents must have the same length.
func UniformCrossover(rng *rand.Rand, p1, p2 *framework.BitGenome, rate float64) *framework.BitGenome {
	a, b := p1.Bits(), p2.Bits()
	for i := range a {
		if rng.Float64() >= rate {
			a[i] = b[i]
		}
	}
	child, _ := framework.NewBitGenome(a)
	return child
}

// OrderedCrossover copies the segment p1[i1:i2] and appends the remaining
// elements in the order they appear in p2. The child is a permutation
// whenever both parents are; a parent broken through Set yields an error.
func OrderedCrossover(rng *rand.Rand, p1, p2 *framework.PermutationGenome, policy SegmentPolicy) (*framework.PermutationGenome, error) {
	if p1.Len() != p2.Len() {
		return nil, fmt.Errorf("%w: %d and %d", framework.ErrLengthMismatch, p1.Len(), p2.Len())
	}
	i1, i2 := cutPoints(rng, p1.Len(), policy)

	first, second := p1.Order(), p2.Order()
	order := make([]int, 0, len(first))
	present := make([]bool, len(first))
	if i1 < i2 {
		for _, v := range first[i1:i2] {
			order = append(order, v)
			present[v] = true
		}
	}
	for _, v := range second {
		if v < 0 || v >= len(present) {
			return nil, fmt.Errorf("%w: element %d in second parent", framework.ErrNotPermutation, v)
		}
		if !present[v] {
			order = append(order, v)
			present[v] = true
		}
	}

	child, err := framework.NewPermutationGenome(order)
	if err != nil {
		return nil, fmt.Errorf("ordered crossover: %w", err)
	}
	return child, nil
}

func cutPoints(rng *rand.Rand, n int, policy SegmentPolicy) (int, int) {
	if n == 0 {
		return 0, 0
	}
	if policy == SegmentUnsorted {
		return rng.IntN(n), rng.IntN(n)
	}
	i1, i2 := rng.IntN(n+1), rng.IntN(n+1)
	if i1 > i2 {
		i1, i2 = i2, i1
	}
	return i1, i2
}
