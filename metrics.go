package gotrans

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus collectors for lookups. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	lookups        *prometheus.CounterVec
	cacheReads     *prometheus.CounterVec
	cacheWrites    *prometheus.CounterVec
	engineAttempts *prometheus.CounterVec
}

// NewMetrics creates the lookup collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		lookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gotrans_lookups_total",
				Help: "Lookups by result (cached, translated, absent)",
			},
			[]string{"result"},
		),
		cacheReads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gotrans_cache_reads_total",
				Help: "Cache reads by outcome (hit, miss, error)",
			},
			[]string{"outcome"},
		),
		cacheWrites: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gotrans_cache_writes_total",
				Help: "Cache writes by outcome (ok, error)",
			},
			[]string{"outcome"},
		),
		engineAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gotrans_engine_attempts_total",
				Help: "Engine invocations by engine and outcome (ok, error)",
			},
			[]string{"engine", "outcome"},
		),
	}

	if reg != nil {
		reg.MustRegister(m.lookups, m.cacheReads, m.cacheWrites, m.engineAttempts)
	}
	return m
}

func (m *Metrics) lookup(result string) {
	if m == nil {
		return
	}
	m.lookups.WithLabelValues(result).Inc()
}

func (m *Metrics) cacheRead(outcome CacheOutcome) {
	if m == nil {
		return
	}
	m.cacheReads.WithLabelValues(outcome.String()).Inc()
}

func (m *Metrics) cacheWrite(err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.cacheWrites.WithLabelValues(outcome).Inc()
}

func (m *Metrics) engineAttempt(engine EngineID, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.engineAttempts.WithLabelValues(string(engine), outcome).Inc()
}
