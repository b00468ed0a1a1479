package motion

import "github.com/prometheus/client_golang/prometheus"

// Metrics exports scheduler activity to Prometheus. Wire it in with
// WithHooks(m.Hooks()).
type Metrics struct {
	started   *prometheus.CounterVec
	completed *prometheus.CounterVec
	cancelled *prometheus.CounterVec
	failed    *prometheus.CounterVec
	active    prometheus.Gauge
	tick      prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// skips registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		started: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "motion_tasks_started_total",
			Help: "Animation tasks started, by property and timing.",
		}, []string{"property", "timing"}),
		completed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "motion_tasks_completed_total",
			Help: "Animation tasks that reached their target.",
		}, []string{"property", "timing"}),
		cancelled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "motion_tasks_cancelled_total",
			Help: "Animation tasks stopped or replaced before completing.",
		}, []string{"property", "timing"}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "motion_tasks_failed_total",
			Help: "Animation tasks cancelled because a step failed.",
		}, []string{"property", "timing"}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "motion_tasks_active",
			Help: "Tasks pending, delaying or running after the latest tick.",
		}),
		tick: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "motion_tick_duration_seconds",
			Help:    "Wall time spent advancing tasks per tick.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
	}
	if reg != nil {
		reg.MustRegister(m.started, m.completed, m.cancelled, m.failed, m.active, m.tick)
	}
	return m
}

// Hooks returns scheduler hooks that record into m.
func (m *Metrics) Hooks() Hooks {
	return Hooks{
		OnStart: func(e *TaskEvent) {
			m.started.WithLabelValues(e.Property, timing(e)).Inc()
		},
		OnComplete: func(e *TaskEvent) {
			m.completed.WithLabelValues(e.Property, timing(e)).Inc()
		},
		OnCancel: func(e *TaskEvent) {
			m.cancelled.WithLabelValues(e.Property, timing(e)).Inc()
		},
		OnError: func(e *TaskEvent, _ error) {
			m.failed.WithLabelValues(e.Property, timing(e)).Inc()
		},
		OnTick: func(e *TickEvent) {
			m.active.Set(float64(e.Active))
			m.tick.Observe(e.Elapsed.Seconds())
		},
	}
}

// Collectors returns every collector, for callers that register them
// elsewhere.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.started, m.completed, m.cancelled, m.failed, m.active, m.tick}
}

func timing(e *TaskEvent) string {
	if e.Spring {
		return "spring"
	}
	return "tween"
}
