package app

import (
	"flag"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/mihai-snyk/genetic-search/cmd/evolve/app/options"
)

// NewEvolveCommand creates the root command with one subcommand per problem.
func NewEvolveCommand() *cobra.Command {
	opts := options.NewOptions()

	cmd := &cobra.Command{
		Use:   "evolve",
		Short: "Evolve solutions to benchmark problems with a genetic algorithm",
		Long: `evolve runs a generational genetic algorithm with tournament selection,
elitism and representation-specific crossover and mutation against one of the
built-in problems.`,
		SilenceUsage: true,
	}

	fs := cmd.PersistentFlags()
	opts.AddFlags(fs)
	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)
	fs.AddGoFlagSet(klogFlags)

	cmd.AddCommand(
		newRoyalRoadCommand(opts),
		newTravelingSalesmanCommand(opts),
	)
	return cmd
}

func newRoyalRoadCommand(opts *options.Options) *cobra.Command {
	return &cobra.Command{
		Use:     "royalroad",
		Aliases: []string{"rr"},
		Short:   "Evolve bit strings towards a hidden target",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			args, err := opts.Config(cmd.Flags())
			if err != nil {
				return err
			}
			ctx := klog.NewContext(cmd.Context(), logger().WithValues("problem", "royalroad"))
			return RunRoyalRoad(ctx, cmd.OutOrStdout(), opts, args)
		},
	}
}

func newTravelingSalesmanCommand(opts *options.Options) *cobra.Command {
	return &cobra.Command{
		Use:     "tsp",
		Aliases: []string{"travelingsalesman"},
		Short:   "Evolve short closed tours over a set of cities",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			args, err := opts.Config(cmd.Flags())
			if err != nil {
				return err
			}
			ctx := klog.NewContext(cmd.Context(), logger().WithValues("problem", "tsp"))
			return RunTravelingSalesman(ctx, cmd.OutOrStdout(), opts, args)
		},
	}
}

func logger() logr.Logger {
	return klog.Background().WithName("evolve")
}
