package options

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/validation/field"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/yaml"

	"github.com/mihai-snyk/genetic-search/apis/config/v1alpha1"
	"github.com/mihai-snyk/genetic-search/apis/config/validation"
)

// Options has all the params needed to run an evolutionary search. Flag
// values take precedence over the config file, which takes precedence over
// the defaults.
type Options struct {
	ConfigFile  string
	PlotDir     string
	MetricsFile string

	populationSize  int32
	maxGenerations  int32
	mutationRate    float64
	uniformRate     float64
	elitism         bool
	tournamentSize  int32
	segmentPolicy   string
	workers         int32
	seed            uint64
	timeout         time.Duration
	fitnessCacheTTL time.Duration

	genomeLength int32
	target       string
	cityCount    int32
	extent       int32
}

// NewOptions returns options populated with the API defaults, used as flag defaults.
func NewOptions() *Options {
	return &Options{
		populationSize: v1alpha1.DefaultPopulationSize,
		mutationRate:   v1alpha1.DefaultMutationRate,
		uniformRate:    v1alpha1.DefaultUniformRate,
		elitism:        v1alpha1.DefaultElitism,
		tournamentSize: v1alpha1.DefaultTournamentSize,
		segmentPolicy:  string(v1alpha1.DefaultSegmentPolicy),
		workers:        v1alpha1.DefaultWorkers,
		genomeLength:   v1alpha1.DefaultGenomeLength,
		cityCount:      v1alpha1.DefaultCityCount,
		extent:         v1alpha1.DefaultExtent,
	}
}

// AddFlags adds flags for the options to the specified FlagSet.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.ConfigFile, "config", o.ConfigFile, "Path to an EvolutionArgs YAML file.")
	fs.StringVar(&o.PlotDir, "plot-dir", o.PlotDir, "Directory to write HTML charts to. Empty disables plotting.")
	fs.StringVar(&o.MetricsFile, "metrics-file", o.MetricsFile, "File to write Prometheus metrics to after the run. Empty disables metrics.")

	fs.Int32Var(&o.populationSize, "population-size", o.populationSize, "Number of individuals per generation.")
	fs.Int32Var(&o.maxGenerations, "max-generations", o.maxGenerations, "Generation budget. Defaults depend on the problem.")
	fs.Float64Var(&o.mutationRate, "mutation-rate", o.mutationRate, "Mutation probability in [0, 1].")
	fs.Float64Var(&o.uniformRate, "uniform-rate", o.uniformRate, "Probability of inheriting a bit from the first parent in [0, 1].")
	fs.BoolVar(&o.elitism, "elitism", o.elitism, "Carry the fittest individual into the next generation unchanged.")
	fs.Int32Var(&o.tournamentSize, "tournament-size", o.tournamentSize, "Number of draws per tournament.")
	fs.StringVar(&o.segmentPolicy, "segment-policy", o.segmentPolicy, "Ordered crossover cut point policy: Sorted or Unsorted.")
	fs.Int32Var(&o.workers, "workers", o.workers, "Goroutines producing children. 1 runs sequentially.")
	fs.Uint64Var(&o.seed, "seed", o.seed, "Random seed. A time based seed is used when unset.")
	fs.DurationVar(&o.timeout, "timeout", o.timeout, "Wall time budget of the run. 0 means none.")
	fs.DurationVar(&o.fitnessCacheTTL, "fitness-cache-ttl", o.fitnessCacheTTL, "Memoize fitness scores for this long. 0 disables the cache.")

	fs.Int32Var(&o.genomeLength, "genome-length", o.genomeLength, "Royal Road bit string length.")
	fs.StringVar(&o.target, "target", o.target, "Royal Road target bit string. Random when empty.")
	fs.Int32Var(&o.cityCount, "cities", o.cityCount, "Number of random cities.")
	fs.Int32Var(&o.extent, "extent", o.extent, "Upper bound of random city coordinates.")
}

// Config builds the run configuration: the config file if any, then every
// flag that was explicitly set in fs, then defaults. The result is validated.
func (o *Options) Config(fs *pflag.FlagSet) (*v1alpha1.EvolutionArgs, error) {
	args := &v1alpha1.EvolutionArgs{}
	if o.ConfigFile != "" {
		loaded, err := LoadConfigFile(o.ConfigFile)
		if err != nil {
			return nil, err
		}
		args = loaded
	}

	changed := func(name string) bool {
		f := fs.Lookup(name)
		return f != nil && f.Changed
	}
	if changed("population-size") {
		args.PopulationSize = ptr.To(o.populationSize)
	}
	if changed("max-generations") {
		args.RoyalRoad.MaxGenerations = ptr.To(o.maxGenerations)
		args.TravelingSalesman.MaxGenerations = ptr.To(o.maxGenerations)
	}
	if changed("mutation-rate") {
		args.MutationRate = ptr.To(o.mutationRate)
	}
	if changed("uniform-rate") {
		args.UniformRate = ptr.To(o.uniformRate)
	}
	if changed("elitism") {
		args.Elitism = ptr.To(o.elitism)
	}
	if changed("tournament-size") {
		args.TournamentSize = ptr.To(o.tournamentSize)
	}
	if changed("segment-policy") {
		args.SegmentPolicy = ptr.To(v1alpha1.SegmentPolicy(o.segmentPolicy))
	}
	if changed("workers") {
		args.Workers = ptr.To(o.workers)
	}
	if changed("seed") {
		args.Seed = ptr.To(o.seed)
	}
	if changed("timeout") {
		args.Timeout = &metav1.Duration{Duration: o.timeout}
	}
	if changed("fitness-cache-ttl") {
		args.FitnessCacheTTL = &metav1.Duration{Duration: o.fitnessCacheTTL}
	}
	if changed("genome-length") {
		args.RoyalRoad.GenomeLength = ptr.To(o.genomeLength)
	}
	if changed("target") {
		args.RoyalRoad.Target = o.target
	}
	if changed("cities") {
		args.TravelingSalesman.CityCount = ptr.To(o.cityCount)
	}
	if changed("extent") {
		args.TravelingSalesman.Extent = ptr.To(o.extent)
	}

	v1alpha1.SetDefaults_EvolutionArgs(args)
	if err := validation.ValidateEvolutionArgs(field.NewPath("evolutionArgs"), args); err != nil {
		return nil, err
	}
	return args, nil
}

// LoadConfigFile reads an EvolutionArgs YAML document. Unknown fields are an error.
func LoadConfigFile(path string) (*v1alpha1.EvolutionArgs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	args := &v1alpha1.EvolutionArgs{}
	if err := yaml.UnmarshalStrict(data, args); err != nil {
		return nil, fmt.Errorf("decoding config file %s: %w", path, err)
	}
	return args, nil
}
