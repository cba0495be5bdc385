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

package validation

import (
	"fmt"
	"strings"

	"k8s.io/apimachinery/pkg/util/validation/field"

	"github.com/mihai-snyk/genetic-search/apis/config/v1alpha1"
)

// ValidateEvolutionArgs validates defaulted EvolutionArgs. All problems are
// reported at once, each with its field path.
func ValidateEvolutionArgs(path *field.Path, args *v1alpha1.EvolutionArgs) error {
	var allErrs field.ErrorList

	if args.APIVersion != "" && args.APIVersion != v1alpha1.SchemeGroupVersion.String() {
		allErrs = append(allErrs, field.NotSupported(path.Child("apiVersion"), args.APIVersion, []string{v1alpha1.SchemeGroupVersion.String()}))
	}
	if args.Kind != "" && args.Kind != v1alpha1.Kind {
		allErrs = append(allErrs, field.NotSupported(path.Child("kind"), args.Kind, []string{v1alpha1.Kind}))
	}

	allErrs = append(allErrs, validateAtLeast(path.Child("populationSize"), args.PopulationSize, 1)...)
	allErrs = append(allErrs, validateRate(path.Child("mutationRate"), args.MutationRate)...)
	allErrs = append(allErrs, validateRate(path.Child("uniformRate"), args.UniformRate)...)
	allErrs = append(allErrs, validateAtLeast(path.Child("tournamentSize"), args.TournamentSize, 1)...)
	allErrs = append(allErrs, validateAtLeast(path.Child("workers"), args.Workers, 1)...)

	if args.SegmentPolicy == nil {
		allErrs = append(allErrs, field.Required(path.Child("segmentPolicy"), ""))
	} else if p := *args.SegmentPolicy; p != v1alpha1.SegmentPolicySorted && p != v1alpha1.SegmentPolicyUnsorted {
		allErrs = append(allErrs, field.NotSupported(path.Child("segmentPolicy"), p,
			[]string{string(v1alpha1.SegmentPolicySorted), string(v1alpha1.SegmentPolicyUnsorted)}))
	}

	if args.Timeout != nil && args.Timeout.Duration < 0 {
		allErrs = append(allErrs, field.Invalid(path.Child("timeout"), args.Timeout.Duration.String(), "must not be negative"))
	}
	if args.FitnessCacheTTL != nil && args.FitnessCacheTTL.Duration < 0 {
		allErrs = append(allErrs, field.Invalid(path.Child("fitnessCacheTTL"), args.FitnessCacheTTL.Duration.String(), "must not be negative"))
	}

	allErrs = append(allErrs, validateRoyalRoad(path.Child("royalRoad"), &args.RoyalRoad)...)
	allErrs = append(allErrs, validateTravelingSalesman(path.Child("travelingSalesman"), &args.TravelingSalesman)...)

	return allErrs.ToAggregate()
}

func validateRoyalRoad(path *field.Path, args *v1alpha1.RoyalRoadArgs) field.ErrorList {
	var allErrs field.ErrorList
	if args.Target == "" {
		allErrs = append(allErrs, validateAtLeast(path.Child("genomeLength"), args.GenomeLength, 1)...)
	} else if i := strings.IndexFunc(args.Target, func(r rune) bool { return r != '0' && r != '1' }); i >= 0 {
		allErrs = append(allErrs, field.Invalid(path.Child("target"), args.Target, fmt.Sprintf("character %d is not 0 or 1", i)))
	}
	allErrs = append(allErrs, validateAtLeast(path.Child("maxGenerations"), args.MaxGenerations, 1)...)
	return allErrs
}

func validateTravelingSalesman(path *field.Path, args *v1alpha1.TravelingSalesmanArgs) field.ErrorList {
	var allErrs field.ErrorList
	if len(args.Cities) == 0 {
		allErrs = append(allErrs, validateAtLeast(path.Child("cityCount"), args.CityCount, 1)...)
		allErrs = append(allErrs, validateAtLeast(path.Child("extent"), args.Extent, 1)...)
	}
	allErrs = append(allErrs, validateAtLeast(path.Child("maxGenerations"), args.MaxGenerations, 1)...)
	return allErrs
}

func validateAtLeast(path *field.Path, v *int32, lower int32) field.ErrorList {
	if v == nil {
		return field.ErrorList{field.Required(path, "")}
	}
	if *v < lower {
		return field.ErrorList{field.Invalid(path, *v, fmt.Sprintf("must be at least %d", lower))}
	}
	return nil
}

func validateRate(path *field.Path, v *float64) field.ErrorList {
	if v == nil {
		return field.ErrorList{field.Required(path, "")}
	}
	if !(*v >= 0 && *v <= 1) {
		return field.ErrorList{field.Invalid(path, *v, "must be in [0, 1]")}
	}
	return nil
}
