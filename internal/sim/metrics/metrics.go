// Package metrics exports world instrumentation to prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"hillsim.ai/internal/sim/world"
	"hillsim.ai/internal/sim/world/terrain"
)

const namespace = "hillsim"

// Prometheus implements world.Observer.
type Prometheus struct {
	caveIns     *prometheus.CounterVec
	searches    *prometheus.CounterVec
	expanded    prometheus.Histogram
	deaths      prometheus.Counter
	ticks       prometheus.Counter
	tickSeconds prometheus.Histogram
	units       prometheus.Gauge
}

var _ world.Observer = (*Prometheus)(nil)

// NewPrometheus creates the collectors and registers them with reg. A nil
// reg uses the default registerer.
func NewPrometheus(reg prometheus.Registerer) (*Prometheus, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	p := &Prometheus{
		caveIns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cave_ins_total",
			Help:      "Solid cubes that collapsed, by former terrain type.",
		}, []string{"type"}),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "path_searches_total",
			Help:      "Route searches, by result.",
		}, []string{"result"}),
		expanded: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "path_expanded_nodes",
			Help:      "Cubes expanded per route search.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		deaths: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unit_deaths_total",
			Help:      "Units that died.",
		}),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "World ticks advanced.",
		}),
		tickSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Wall time spent in one world tick.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		units: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "units",
			Help:      "Units in the world after the last tick.",
		}),
	}
	for _, c := range []prometheus.Collector{p.caveIns, p.searches, p.expanded, p.deaths, p.ticks, p.tickSeconds, p.units} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Prometheus) CaveIn(_ terrain.Pos, prev terrain.Type) {
	p.caveIns.WithLabelValues(prev.String()).Inc()
}

func (p *Prometheus) PathSearch(found bool, expanded int) {
	result := "no_path"
	if found {
		result = "found"
	}
	p.searches.WithLabelValues(result).Inc()
	p.expanded.Observe(float64(expanded))
}

func (p *Prometheus) UnitDied(string) { p.deaths.Inc() }

func (p *Prometheus) Tick(elapsed time.Duration, units int) {
	p.ticks.Inc()
	p.tickSeconds.Observe(elapsed.Seconds())
	p.units.Set(float64(units))
}
