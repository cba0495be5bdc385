package app

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"k8s.io/klog/v2"

	"github.com/mihai-snyk/genetic-search/apis/config/v1alpha1"
	"github.com/mihai-snyk/genetic-search/cmd/evolve/app/options"
	"github.com/mihai-snyk/genetic-search/pkg/evolution/algorithms"
	"github.com/mihai-snyk/genetic-search/pkg/evolution/benchmarks"
	"github.com/mihai-snyk/genetic-search/pkg/evolution/framework"
	"github.com/mihai-snyk/genetic-search/pkg/evolution/metrics"
	"github.com/mihai-snyk/genetic-search/pkg/evolution/operators"
	"github.com/mihai-snyk/genetic-search/pkg/evolution/util"
)

// run holds what both problems share: seeding, metrics and the engine.
type run struct {
	setupRNG *rand.Rand
	registry *prometheus.Registry
	config   algorithms.Config
}

func newRun(args *v1alpha1.EvolutionArgs, maxGenerations int32, opts *options.Options) (*run, error) {
	seed := uint64(time.Now().UnixNano())
	if args.Seed != nil {
		seed = *args.Seed
	}
	setupRNG := framework.NewRand(seed)

	r := &run{
		setupRNG: setupRNG,
		config: algorithms.Config{
			PopSize:        int(*args.PopulationSize),
			MaxGenerations: int(maxGenerations),
			MutationRate:   *args.MutationRate,
			UniformRate:    *args.UniformRate,
			Elitism:        *args.Elitism,
			TournamentSize: int(*args.TournamentSize),
			Segment:        operators.SegmentPolicy(*args.SegmentPolicy),
			Workers:        int(*args.Workers),
			Seed:           setupRNG.Uint64(),
		},
	}
	if opts.MetricsFile != "" {
		r.registry = prometheus.NewRegistry()
		m, err := metrics.New(r.registry)
		if err != nil {
			return nil, err
		}
		r.config.Metrics = m
	}
	return r, nil
}

func (r *run) execute(ctx context.Context, problem framework.Problem, args *v1alpha1.EvolutionArgs, opts *options.Options) (*algorithms.Result, error) {
	logger := klog.FromContext(ctx)

	if ttl := args.FitnessCacheTTL.Duration; ttl > 0 {
		r.config.Fitness = framework.NewCachedFitness(problem.Fitness(), ttl)
	}
	ga, err := algorithms.NewGeneticAlgorithm(problem, r.config)
	if err != nil {
		return nil, err
	}

	if timeout := args.Timeout.Duration; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	logger.V(1).Info("starting run", "populationSize", r.config.PopSize, "maxGenerations", r.config.MaxGenerations,
		"mutationRate", r.config.MutationRate, "tournamentSize", r.config.TournamentSize, "workers", r.config.Workers)
	res, err := ga.Run(ctx, nil)
	if err != nil {
		return nil, err
	}

	if r.registry != nil {
		if err := prometheus.WriteToTextfile(opts.MetricsFile, r.registry); err != nil {
			return nil, fmt.Errorf("writing metrics: %w", err)
		}
	}
	if opts.PlotDir != "" {
		err := writePlot(opts.PlotDir, problem.Name()+"_convergence.html", func(w io.Writer) error {
			return util.PlotConvergence(w, problem.Name()+" Convergence", res.History)
		})
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// RunRoyalRoad evolves bit strings until they match the target or the
// budget runs out, and reports the result to out.
func RunRoyalRoad(ctx context.Context, out io.Writer, opts *options.Options, args *v1alpha1.EvolutionArgs) error {
	r, err := newRun(args, *args.RoyalRoad.MaxGenerations, opts)
	if err != nil {
		return err
	}

	var problem *benchmarks.RoyalRoad
	if args.RoyalRoad.Target != "" {
		target, err := framework.ParseBitGenome(args.RoyalRoad.Target)
		if err != nil {
			return err
		}
		problem = benchmarks.NewRoyalRoad(target)
	} else {
		problem = benchmarks.RandomRoyalRoad(r.setupRNG, int(*args.RoyalRoad.GenomeLength))
	}

	res, err := r.execute(ctx, problem, args, opts)
	if err != nil {
		return err
	}

	maxFitness, _ := problem.MaxFitness()
	if res.Converged() {
		fmt.Fprintf(out, "answer found in generation %s\n", humanize.Comma(int64(res.Generations)))
	} else {
		fmt.Fprintf(out, "no answer after %s generations (%s), best fitness %v of %v\n",
			humanize.Comma(int64(res.Generations)), res.Outcome, res.Fitness, maxFitness)
	}
	fmt.Fprintf(out, "target:  %s\n", problem.Target())
	fmt.Fprintf(out, "fittest: %s\n", res.Fittest)
	return nil
}

// RunTravelingSalesman evolves tours for the generation budget and reports
// the initial and final tour lengths to out.
func RunTravelingSalesman(ctx context.Context, out io.Writer, opts *options.Options, args *v1alpha1.EvolutionArgs) error {
	r, err := newRun(args, *args.TravelingSalesman.MaxGenerations, opts)
	if err != nil {
		return err
	}

	var problem *benchmarks.TravelingSalesman
	if cities := args.TravelingSalesman.Cities; len(cities) > 0 {
		list := make([]benchmarks.City, len(cities))
		for i, c := range cities {
			list[i] = benchmarks.City{Name: c.Name, X: c.X, Y: c.Y}
		}
		problem = benchmarks.NewTravelingSalesman(list)
	} else {
		problem = benchmarks.RandomTravelingSalesman(r.setupRNG, int(*args.TravelingSalesman.CityCount), int(*args.TravelingSalesman.Extent))
	}

	initial := problem.IdentityTour()
	initialDistance := problem.TotalDistance(initial)
	if opts.PlotDir != "" {
		err := writePlot(opts.PlotDir, problem.Name()+"_initial_route.html", func(w io.Writer) error {
			return util.PlotTour(w, "Initial Route", problem.Route(initial))
		})
		if err != nil {
			return err
		}
	}

	res, err := r.execute(ctx, problem, args, opts)
	if err != nil {
		return err
	}

	final := res.Fittest.(*framework.PermutationGenome)
	finalDistance := problem.TotalDistance(final)
	if opts.PlotDir != "" {
		err := writePlot(opts.PlotDir, problem.Name()+"_final_route.html", func(w io.Writer) error {
			return util.PlotTour(w, "Final Route", problem.Route(final))
		})
		if err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "Generations: %s (%s)\n", humanize.Comma(int64(res.Generations)), res.Outcome)
	fmt.Fprintf(out, "Initial distance: %s\n", humanize.FtoaWithDigits(initialDistance, 2))
	fmt.Fprintf(out, "Final distance: %s\n", humanize.FtoaWithDigits(finalDistance, 2))
	if initialDistance > 0 {
		fmt.Fprintf(out, "Improvement: %s\n", humanize.FtoaWithDigits(finalDistance/initialDistance, 4))
	}
	fmt.Fprintf(out, "Tour: %s\n", final)
	return nil
}

func writePlot(dir, name string, render func(io.Writer) error) (err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return render(f)
}
