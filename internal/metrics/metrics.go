// Package metrics collects run statistics for gosearch and writes them in
// the Prometheus text format.
package metrics

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "gosearch"

// Metrics holds the counters of one gosearch run in a private registry.
type Metrics struct {
	registry *prometheus.Registry

	// SearchExpanded counts states expanded by graph search.
	// Labels: strategy (dfs, bfs, ucs, astar)
	SearchExpanded *prometheus.CounterVec
	// SearchPathCost is the cost of the last path found.
	// Labels: strategy
	SearchPathCost *prometheus.GaugeVec
	// GameNodes counts game states expanded or evaluated by adversarial
	// agents.
	// Labels: agent (minimax, alphabeta, expectimax, reflex), kind (expanded, evaluated)
	GameNodes *prometheus.CounterVec
	// GamesPlayed counts simulated games by outcome.
	// Labels: agent, outcome (win, lose, unfinished)
	GamesPlayed *prometheus.CounterVec
	// MDPIterations counts solver updates.
	// Labels: solver (value, sweeping)
	MDPIterations *prometheus.CounterVec
}

// New returns a new Metrics with its own registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		SearchExpanded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "search",
				Name:      "expanded_total",
				Help:      "Number of states expanded by graph search.",
			},
			[]string{"strategy"},
		),
		SearchPathCost: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "search",
				Name:      "path_cost",
				Help:      "Cost of the path found by graph search.",
			},
			[]string{"strategy"},
		),
		GameNodes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "game",
				Name:      "nodes_total",
				Help:      "Number of game states visited by adversarial agents.",
			},
			[]string{"agent", "kind"},
		),
		GamesPlayed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "game",
				Name:      "played_total",
				Help:      "Number of simulated games by outcome.",
			},
			[]string{"agent", "outcome"},
		),
		MDPIterations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "mdp",
				Name:      "iterations_total",
				Help:      "Number of value updates performed by MDP solvers.",
			},
			[]string{"solver"},
		),
	}

	m.registry.MustRegister(
		m.SearchExpanded,
		m.SearchPathCost,
		m.GameNodes,
		m.GamesPlayed,
		m.MDPIterations,
	)

	return m
}

// RecordSearch records the result of one graph search.
func (m *Metrics) RecordSearch(strategy string, expanded int, cost float64, found bool) {
	m.SearchExpanded.WithLabelValues(strategy).Add(float64(expanded))
	if found {
		m.SearchPathCost.WithLabelValues(strategy).Set(cost)
	}
}

// RecordGame records the outcome of one simulated game.
func (m *Metrics) RecordGame(agent string, expanded, evaluated int, win, lose bool) {
	m.GameNodes.WithLabelValues(agent, "expanded").Add(float64(expanded))
	m.GameNodes.WithLabelValues(agent, "evaluated").Add(float64(evaluated))

	outcome := "unfinished"
	if win {
		outcome = "win"
	} else if lose {
		outcome = "lose"
	}
	m.GamesPlayed.WithLabelValues(agent, outcome).Inc()
}

// RecordSolve records the number of updates made by an MDP solver.
func (m *Metrics) RecordSolve(solver string, iterations int) {
	m.MDPIterations.WithLabelValues(solver).Add(float64(iterations))
}

// Registry returns the registry holding m's collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteFile writes the current values of all metrics to path.
func (m *Metrics) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return errors.Wrapf(err, "error writing metrics to %s", path)
	}

	return nil
}
