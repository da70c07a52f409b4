// Package metrics exposes match activity as Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/lox/matchsim/tennis"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns a registry and the match metrics registered on it. It is a
// tennis.Observer and is safe for concurrent use.
type Manager struct {
	namespace string
	registry  *prometheus.Registry

	matches    *prometheus.CounterVec
	sets       prometheus.Counter
	games      *prometheus.CounterVec
	points     *prometheus.CounterVec
	rally      prometheus.Histogram
	matchSize  prometheus.Histogram
	stamina    *prometheus.GaugeVec
	spectators prometheus.Gauge
}

// Option configures a Manager.
type Option func(*Manager)

// WithNamespace overrides the metric namespace.
func WithNamespace(ns string) Option {
	return func(m *Manager) { m.namespace = ns }
}

// WithRegistry registers metrics on an existing registry.
func WithRegistry(r *prometheus.Registry) Option {
	return func(m *Manager) { m.registry = r }
}

// NewManager creates a manager with its own registry unless one is given.
func NewManager(opts ...Option) *Manager {
	m := &Manager{namespace: "matchsim"}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	auto := promauto.With(m.registry)
	m.matches = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "matches_total",
		Help:      "Completed matches by winning player",
	}, []string{"winner"})
	m.sets = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "sets_total",
		Help:      "Completed sets",
	})
	m.games = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "games_total",
		Help:      "Completed games by outcome (hold or break of serve)",
	}, []string{"outcome"})
	m.points = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "points_total",
		Help:      "Resolved points by how they ended",
	}, []string{"ending"})
	m.rally = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "rally_exchanges",
		Help:      "Rally exchanges per point",
		Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21},
	})
	m.matchSize = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "match_points",
		Help:      "Points played per completed match",
		Buckets:   prometheus.LinearBuckets(60, 30, 10),
	})
	m.stamina = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "player_stamina",
		Help:      "Current stamina of each player",
	}, []string{"player"})
	m.spectators = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "spectators",
		Help:      "Connected websocket spectators",
	})
	return m
}

// Registry returns the underlying registry.
func (m *Manager) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// SpectatorConnected and SpectatorDisconnected track the websocket audience.
func (m *Manager) SpectatorConnected()    { m.spectators.Inc() }
func (m *Manager) SpectatorDisconnected() { m.spectators.Dec() }

// OnEvent implements tennis.Observer.
func (m *Manager) OnEvent(e tennis.Event) {
	switch ev := e.(type) {
	case tennis.PointEvent:
		m.points.WithLabelValues(ev.Point.Ending.String()).Inc()
		m.rally.Observe(float64(ev.Point.Exchanges))
	case tennis.GameEvent:
		outcome := "hold"
		if ev.Record.Winner != ev.Record.Server {
			outcome = "break"
		}
		m.games.WithLabelValues(outcome).Inc()
	case tennis.SetEvent:
		m.sets.Inc()
		for _, p := range ev.Snapshot.Players {
			m.stamina.WithLabelValues(p.Name).Set(p.Stamina)
		}
	case tennis.MatchEvent:
		m.matches.WithLabelValues(ev.Snapshot.Players[ev.Winner].Name).Inc()
		m.matchSize.Observe(float64(ev.Snapshot.PointsPlayed))
	}
}
