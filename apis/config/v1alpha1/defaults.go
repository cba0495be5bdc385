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
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"
)

var (
	DefaultPopulationSize int32   = 20
	DefaultMutationRate   float64 = 0.015
	DefaultUniformRate    float64 = 0.5
	DefaultElitism                = true
	DefaultTournamentSize int32   = 5
	DefaultSegmentPolicy          = SegmentPolicySorted
	DefaultWorkers        int32   = 1

	DefaultGenomeLength             int32 = 64
	DefaultRoyalRoadMaxGenerations  int32 = 1000
	DefaultCityCount                int32 = 20
	DefaultExtent                   int32 = 500
	DefaultTravelingSalesmanMaxGens int32 = 249
)

// SetDefaults_EvolutionArgs sets the default parameters for a run.
func SetDefaults_EvolutionArgs(obj *EvolutionArgs) {
	if obj.APIVersion == "" {
		obj.APIVersion = SchemeGroupVersion.String()
	}
	if obj.Kind == "" {
		obj.Kind = Kind
	}
	if obj.PopulationSize == nil {
		obj.PopulationSize = ptr.To(DefaultPopulationSize)
	}
	if obj.MutationRate == nil {
		obj.MutationRate = ptr.To(DefaultMutationRate)
	}
	if obj.UniformRate == nil {
		obj.UniformRate = ptr.To(DefaultUniformRate)
	}
	if obj.Elitism == nil {
		obj.Elitism = ptr.To(DefaultElitism)
	}
	if obj.TournamentSize == nil {
		obj.TournamentSize = ptr.To(DefaultTournamentSize)
	}
	if obj.SegmentPolicy == nil {
		obj.SegmentPolicy = ptr.To(DefaultSegmentPolicy)
	}
	if obj.Workers == nil {
		obj.Workers = ptr.To(DefaultWorkers)
	}
	if obj.Timeout == nil {
		obj.Timeout = &metav1.Duration{}
	}
	if obj.FitnessCacheTTL == nil {
		obj.FitnessCacheTTL = &metav1.Duration{}
	}

	rr := &obj.RoyalRoad
	if rr.GenomeLength == nil {
		rr.GenomeLength = ptr.To(DefaultGenomeLength)
	}
	if rr.MaxGenerations == nil {
		rr.MaxGenerations = ptr.To(DefaultRoyalRoadMaxGenerations)
	}

	tsp := &obj.TravelingSalesman
	if tsp.CityCount == nil {
		tsp.CityCount = ptr.To(DefaultCityCount)
	}
	if tsp.Extent == nil {
		tsp.Extent = ptr.To(DefaultExtent)
	}
	if tsp.MaxGenerations == nil {
		tsp.MaxGenerations = ptr.To(DefaultTravelingSalesmanMaxGens)
	}
}
