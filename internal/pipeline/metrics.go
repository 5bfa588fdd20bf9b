package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics метрики генерации.
//
// * levelgen_runs_total{type,status} - counter
// * levelgen_runs_inflight - gauge
// * levelgen_step_duration_seconds{step} - histogram
// * levelgen_step_units_total{step} - counter (тики, клетки, сектора)
// * levelgen_rooms_per_level - histogram
// * levelgen_doors_per_level - histogram
type Metrics struct {
	runs         *prometheus.CounterVec
	inflight     prometheus.Gauge
	stepDuration *prometheus.HistogramVec
	stepUnits    *prometheus.CounterVec
	rooms        prometheus.Histogram
	doors        prometheus.Histogram
}

// NewMetrics создаёт метрики и регистрирует их в reg (nil - без регистрации)
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "levelgen",
			Name:      "runs_total",
			Help:      "Число прогонов генерации.",
		}, []string{"type", "status"}),
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "levelgen",
			Name:      "runs_inflight",
			Help:      "Прогоны генерации в процессе.",
		}),
		stepDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "levelgen",
			Name:      "step_duration_seconds",
			Help:      "Длительность шагов генерации.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"step"}),
		stepUnits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "levelgen",
			Name:      "step_units_total",
			Help:      "Единицы работы, выполненные шагами.",
		}, []string{"step"}),
		rooms: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "levelgen",
			Name:      "rooms_per_level",
			Help:      "Комнат на уровень.",
			Buckets:   prometheus.LinearBuckets(0, 5, 10),
		}),
		doors: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "levelgen",
			Name:      "doors_per_level",
			Help:      "Дверных коннекторов на уровень.",
			Buckets:   prometheus.LinearBuckets(0, 5, 10),
		}),
	}

	if reg != nil {
		reg.MustRegister(m.runs, m.inflight, m.stepDuration, m.stepUnits, m.rooms, m.doors)
	}
	return m
}

func (m *Metrics) observeStep(step string, seconds float64, units int) {
	if m == nil {
		return
	}
	m.stepDuration.WithLabelValues(step).Observe(seconds)
	m.stepUnits.WithLabelValues(step).Add(float64(units))
}

func (m *Metrics) runStarted() {
	if m == nil {
		return
	}
	m.inflight.Inc()
}

func (m *Metrics) runFinished(t LevelType, status string, s *Summary) {
	if m == nil {
		return
	}
	m.inflight.Dec()
	m.runs.WithLabelValues(string(t), status).Inc()
	if s != nil {
		m.rooms.Observe(float64(s.Rooms))
		m.doors.Observe(float64(s.Doors))
	}
}
