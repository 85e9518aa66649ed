// Package metrics exposes Prometheus collectors for game sessions and the HTTP API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tetris"

// Metrics holds the collectors. A nil *Metrics is valid and records nothing,
// so callers without a registry can pass it around freely.
type Metrics struct {
	gatherer prometheus.Gatherer

	sessions      prometheus.Gauge
	gamesStarted  *prometheus.CounterVec
	gamesFinished *prometheus.CounterVec
	linesCleared  *prometheus.CounterVec
	finalScore    *prometheus.HistogramVec
	reqDuration   *prometheus.HistogramVec
}

// New creates the collectors and registers them on reg.
// gatherer serves the /metrics endpoint; it is usually the same registry.
func New(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	m := &Metrics{
		gatherer: gatherer,
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Number of connected play sessions.",
		}),
		gamesStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_started_total",
			Help:      "Games started, including restarts.",
		}, []string{"game"}),
		gamesFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_finished_total",
			Help:      "Games that reached game over.",
		}, []string{"game"}),
		linesCleared: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lines_cleared_total",
			Help:      "Rows cleared across all games.",
		}, []string{"game"}),
		finalScore: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "final_score",
			Help:      "Score at game over.",
			Buckets:   []float64{0, 100, 500, 1000, 2500, 5000, 10000, 25000, 50000},
		}, []string{"game"}),
		reqDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP API requests.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"method", "path", "status"}),
	}

	reg.MustRegister(
		m.sessions,
		m.gamesStarted,
		m.gamesFinished,
		m.linesCleared,
		m.finalScore,
		m.reqDuration,
	)
	return m
}

// SessionStarted increments the active session gauge.
func (m *Metrics) SessionStarted() {
	if m == nil {
		return
	}
	m.sessions.Inc()
}

// SessionEnded decrements the active session gauge.
func (m *Metrics) SessionEnded() {
	if m == nil {
		return
	}
	m.sessions.Dec()
}

// GameStarted counts a new or restarted run.
func (m *Metrics) GameStarted(gameID string) {
	if m == nil {
		return
	}
	m.gamesStarted.WithLabelValues(gameID).Inc()
}

// GameFinished records a game over and its final score.
func (m *Metrics) GameFinished(gameID string, score int) {
	if m == nil {
		return
	}
	m.gamesFinished.WithLabelValues(gameID).Inc()
	m.finalScore.WithLabelValues(gameID).Observe(float64(score))
}

// LinesCleared adds n cleared rows to the running total.
func (m *Metrics) LinesCleared(gameID string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.linesCleared.WithLabelValues(gameID).Add(float64(n))
}

// Middleware records request durations by route template.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.reqDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil || m.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
