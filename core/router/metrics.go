package router

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds Prometheus collectors for a router. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	lookups          *prometheus.CounterVec
	staticHits       prometheus.Counter
	routes           prometheus.Gauge
	regexCacheHits   prometheus.Counter
	regexCacheMisses prometheus.Counter
}

// NewMetrics creates router collectors under namespace and registers them
// with reg. Collectors already registered by another router on the same
// registry are shared.
func NewMetrics(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	if namespace == "" {
		namespace = "pathrouter"
	}

	m := &Metrics{
		lookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "router",
				Name:      "lookups_total",
				Help:      "Total number of route lookups by outcome",
			},
			[]string{"outcome"},
		),
		staticHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "router",
				Name:      "static_hits_total",
				Help:      "Total number of lookups served by the static route table",
			},
		),
		routes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "router",
				Name:      "routes",
				Help:      "Current number of registered method and pattern pairs",
			},
		),
		regexCacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "router",
				Name:      "regex_cache_hits_total",
				Help:      "Total number of param regexps reused from the cache",
			},
		),
		regexCacheMisses: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "router",
				Name:      "regex_cache_misses_total",
				Help:      "Total number of param regexps compiled",
			},
		),
	}

	if reg == nil {
		return m, nil
	}

	var err error
	if m.lookups, err = register(reg, m.lookups); err != nil {
		return nil, err
	}
	if m.staticHits, err = register(reg, m.staticHits); err != nil {
		return nil, err
	}
	if m.routes, err = register(reg, m.routes); err != nil {
		return nil, err
	}
	if m.regexCacheHits, err = register(reg, m.regexCacheHits); err != nil {
		return nil, err
	}
	if m.regexCacheMisses, err = register(reg, m.regexCacheMisses); err != nil {
		return nil, err
	}
	return m, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (m *Metrics) observeLookup(o Outcome) {
	if m == nil {
		return
	}
	m.lookups.WithLabelValues(o.String()).Inc()
}

func (m *Metrics) observeStaticHit() {
	if m == nil {
		return
	}
	m.staticHits.Inc()
	m.lookups.WithLabelValues(OutcomeFound.String()).Inc()
}

func (m *Metrics) setRoutes(n int) {
	if m == nil {
		return
	}
	m.routes.Set(float64(n))
}

func (m *Metrics) observeRegexCache(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.regexCacheHits.Inc()
		return
	}
	m.regexCacheMisses.Inc()
}
