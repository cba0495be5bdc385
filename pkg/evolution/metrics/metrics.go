package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "evolution"

// Metrics holds the collectors of one run, labelled by problem name.
type Metrics struct {
	Generations        *prometheus.CounterVec
	BestFitness        *prometheus.GaugeVec
	MeanFitness        *prometheus.GaugeVec
	GenerationDuration *prometheus.HistogramVec
	Outcomes           *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Number of generations evolved.",
		}, []string{"problem"}),
		BestFitness: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "best_fitness",
			Help:      "Fitness of the fittest individual in the latest generation.",
		}, []string{"problem"}),
		MeanFitness: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "mean_fitness",
			Help:      "Mean fitness of the latest generation.",
		}, []string{"problem"}),
		GenerationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Wall time spent producing one generation.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"problem"}),
		Outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Finished runs by outcome.",
		}, []string{"problem", "outcome"}),
	}

	for _, c := range []prometheus.Collector{m.Generations, m.BestFitness, m.MeanFitness, m.GenerationDuration, m.Outcomes} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveGeneration records one evolve step.
func (m *Metrics) ObserveGeneration(problem string, best, mean float64, took time.Duration) {
	if m == nil {
		return
	}
	m.Generations.WithLabelValues(problem).Inc()
	m.BestFitness.WithLabelValues(problem).Set(best)
	m.MeanFitness.WithLabelValues(problem).Set(mean)
	m.GenerationDuration.WithLabelValues(problem).Observe(took.Seconds())
}

// ObserveOutcome records how a run ended.
func (m *Metrics) ObserveOutcome(problem, outcome string) {
	if m == nil {
		return
	}
	m.Outcomes.WithLabelValues(problem, outcome).Inc()
}
