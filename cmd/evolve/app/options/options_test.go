package options

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mihai-snyk/genetic-search/apis/config/v1alpha1"
)

const configYAML = `apiVersion: evolution.config.x-k8s.io/v1alpha1
kind: EvolutionArgs
populationSize: 40
mutationRate: 0.05
segmentPolicy: Unsorted
seed: 99
timeout: 30s
royalRoad:
  target: "01100110"
travelingSalesman:
  maxGenerations: 10
  cities:
  - name: a
    x: 1
    y: 2
  - name: b
    x: 3
    y: 4
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func parse(t *testing.T, argv ...string) (*Options, *pflag.FlagSet) {
	t.Helper()
	o := NewOptions()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	o.AddFlags(fs)
	require.NoError(t, fs.Parse(argv))
	return o, fs
}

func TestConfigDefaults(t *testing.T) {
	o, fs := parse(t)
	args, err := o.Config(fs)
	require.NoError(t, err)

	assert.Equal(t, v1alpha1.DefaultPopulationSize, *args.PopulationSize)
	assert.Equal(t, v1alpha1.DefaultMutationRate, *args.MutationRate)
	assert.Equal(t, v1alpha1.SegmentPolicySorted, *args.SegmentPolicy)
	assert.Nil(t, args.Seed)
	assert.Equal(t, v1alpha1.DefaultRoyalRoadMaxGenerations, *args.RoyalRoad.MaxGenerations)
	assert.Equal(t, v1alpha1.DefaultTravelingSalesmanMaxGens, *args.TravelingSalesman.MaxGenerations)
}

func TestConfigFileAndFlags(t *testing.T) {
	path := writeConfig(t, configYAML)
	o, fs := parse(t, "--config", path, "--population-size", "12", "--workers", "3")
	args, err := o.Config(fs)
	require.NoError(t, err)

	// Flags win over the file, the file wins over defaults.
	assert.Equal(t, int32(12), *args.PopulationSize)
	assert.Equal(t, int32(3), *args.Workers)
	assert.Equal(t, 0.05, *args.MutationRate)
	assert.Equal(t, v1alpha1.SegmentPolicyUnsorted, *args.SegmentPolicy)
	assert.Equal(t, uint64(99), *args.Seed)
	assert.Equal(t, 30*time.Second, args.Timeout.Duration)
	assert.Equal(t, "01100110", args.RoyalRoad.Target)
	assert.Equal(t, int32(10), *args.TravelingSalesman.MaxGenerations)
	assert.Equal(t, []v1alpha1.City{{Name: "a", X: 1, Y: 2}, {Name: "b", X: 3, Y: 4}}, args.TravelingSalesman.Cities)
	assert.Equal(t, v1alpha1.DefaultUniformRate, *args.UniformRate)
}

func TestConfigMaxGenerationsFlag(t *testing.T) {
	o, fs := parse(t, "--max-generations", "7", "--seed", "0")
	args, err := o.Config(fs)
	require.NoError(t, err)
	assert.Equal(t, int32(7), *args.RoyalRoad.MaxGenerations)
	assert.Equal(t, int32(7), *args.TravelingSalesman.MaxGenerations)
	require.NotNil(t, args.Seed)
	assert.Equal(t, uint64(0), *args.Seed)
}

func TestConfigInvalid(t *testing.T) {
	o, fs := parse(t, "--mutation-rate", "2", "--segment-policy", "Shuffled", "--target", "012")
	_, err := o.Config(fs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "evolutionArgs.mutationRate")
	assert.Contains(t, err.Error(), "evolutionArgs.segmentPolicy")
	assert.Contains(t, err.Error(), "evolutionArgs.royalRoad.target")
}

func TestLoadConfigFile(t *testing.T) {
	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadConfigFile(writeConfig(t, "populationSize: 10\npopulationSise: 10\n"))
	assert.Error(t, err, "unknown fields are rejected")

	args, err := LoadConfigFile(writeConfig(t, "elitism: false\n"))
	require.NoError(t, err)
	require.NotNil(t, args.Elitism)
	assert.False(t, *args.Elitism)
}
