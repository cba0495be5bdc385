/*
Copyright 2024 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package v1alpha1

import (
	"bytes"
	"encoding/json"
	"errors"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

// GroupName is the group name used in this package
const GroupName = "evolution.config.x-k8s.io"

// SchemeGroupVersion is group version used to register these objects
var SchemeGroupVersion = schema.GroupVersion{Group: GroupName, Version: "v1alpha1"}

const (
	// Kind is the kind of an EvolutionArgs document.
	Kind = "EvolutionArgs"
)

// EvolutionArgs holds the parameters of one evolutionary search run.
type EvolutionArgs struct {
	metav1.TypeMeta `json:",inline"`

	// PopulationSize is the number of individuals in every generation.
	PopulationSize *int32 `json:"populationSize,omitempty"`

	// MutationRate is the per-locus (bit genomes) or per-individual
	// (permutation genomes) mutation probability, in [0, 1].
	MutationRate *float64 `json:"mutationRate,omitempty"`

	// UniformRate is the probability that a child inherits a locus from the
	// first parent in uniform crossover, in [0, 1].
	UniformRate *float64 `json:"uniformRate,omitempty"`

	// Elitism carries the fittest individual into the next generation unchanged.
	Elitism *bool `json:"elitism,omitempty"`

	// TournamentSize is the number of draws per tournament selection.
	TournamentSize *int32 `json:"tournamentSize,omitempty"`

	// SegmentPolicy decides how ordered-segment crossover cut points are used.
	// +kubebuilder:validation:Enum=Sorted;Unsorted
	SegmentPolicy *SegmentPolicy `json:"segmentPolicy,omitempty"`

	// Workers is the number of goroutines producing children. 1 is sequential.
	Workers *int32 `json:"workers,omitempty"`

	// Seed makes runs reproducible. When unset a time based seed is used.
	Seed *uint64 `json:"seed,omitempty"`

	// Timeout bounds the wall time of a run. Zero means no bound.
	Timeout *metav1.Duration `json:"timeout,omitempty"`

	// FitnessCacheTTL enables fitness memoization when positive.
	FitnessCacheTTL *metav1.Duration `json:"fitnessCacheTTL,omitempty"`

	RoyalRoad         RoyalRoadArgs         `json:"royalRoad,omitempty"`
	TravelingSalesman TravelingSalesmanArgs `json:"travelingSalesman,omitempty"`
}

// SegmentPolicy mirrors operators.SegmentPolicy.
type SegmentPolicy string

const (
	SegmentPolicySorted   SegmentPolicy = "Sorted"
	SegmentPolicyUnsorted SegmentPolicy = "Unsorted"
)

// RoyalRoadArgs configures the bit string matching problem.
type RoyalRoadArgs struct {
	// GenomeLength is the number of bits. Ignored when Target is set.
	GenomeLength *int32 `json:"genomeLength,omitempty"`

	// Target is an explicit string of '0' and '1'. A random target of
	// GenomeLength bits is drawn when empty.
	Target string `json:"target,omitempty"`

	// MaxGenerations is the generation budget of a run.
	MaxGenerations *int32 `json:"maxGenerations,omitempty"`
}

// TravelingSalesmanArgs configures the tour problem.
type TravelingSalesmanArgs struct {
	// CityCount is the number of random cities. Ignored when Cities is set.
	CityCount *int32 `json:"cityCount,omitempty"`

	// Extent is the upper bound of random city coordinates.
	Extent *int32 `json:"extent,omitempty"`

	// Cities is an explicit city list.
	Cities []City `json:"cities,omitempty"`

	// MaxGenerations is the generation budget of a run.
	MaxGenerations *int32 `json:"maxGenerations,omitempty"`
}

// City is a named point on the plane.
type City struct {
	Name string  `json:"name,omitempty"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// UnmarshalJSON decodes a City strictly. YAML 1.1 reads a bare y key as the
// boolean true, so after YAML to JSON conversion the y coordinate may arrive
// under the key "true"; both spellings are accepted.
func (c *City) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name string   `json:"name,omitempty"`
		X    float64  `json:"x"`
		Y    *float64 `json:"y"`
		Yes  *float64 `json:"true"`
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	if raw.Y != nil && raw.Yes != nil {
		return errors.New("city sets the y coordinate twice")
	}
	*c = City{Name: raw.Name, X: raw.X}
	switch {
	case raw.Y != nil:
		c.Y = *raw.Y
	case raw.Yes != nil:
		c.Y = *raw.Yes
	}
	return nil
}
