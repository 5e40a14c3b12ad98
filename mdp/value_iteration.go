package mdp

import (
	"fmt"
	"math"

	"github.com/golang/glog"
)

// ValueIteration is a batch value iteration solver. Each round computes a
// new value table entirely from the previous round's table.
type ValueIteration[S comparable, A comparable] struct {
	mdp        MDP[S, A]
	discount   float64
	values     map[S]float64
	iterations int
}

var _ Solver[int, int] = &ValueIteration[int, int]{}

// NewValueIteration runs exactly iterations rounds of value iteration on m,
// starting from an all-zero value table.
func NewValueIteration[S comparable, A comparable](m MDP[S, A], discount float64, iterations int) *ValueIteration[S, A] {
	mustValidate(discount, iterations)
	vi := &ValueIteration[S, A]{
		mdp:      m,
		discount: discount,
		values:   make(map[S]float64),
	}

	vi.run(iterations)
	return vi
}

func (vi *ValueIteration[S, A]) run(iterations int) {
	states := vi.mdp.States()
	for _, s := range states {
		vi.values[s] = 0
	}

	for i := 0; i < iterations; i++ {
		next := make(map[S]float64, len(states))
		delta := 0.0
		for _, s := range states {
			next[s] = bellman(vi.mdp, vi.values, vi.discount, s)
			delta = math.Max(delta, math.Abs(next[s]-vi.values[s]))
		}

		vi.values = next
		vi.iterations++
		glog.V(2).Infof("value iteration: round %d, max change %v", i+1, delta)
	}

	glog.V(1).Infof("value iteration: %d rounds over %d states", iterations, len(states))
}

// Value implements Solver.
func (vi *ValueIteration[S, A]) Value(state S) float64 {
	return vi.values[state]
}

// QValue implements Solver.
func (vi *ValueIteration[S, A]) QValue(state S, action A) float64 {
	return qValue(vi.mdp, vi.values, vi.discount, state, action)
}

// Policy implements Solver.
func (vi *ValueIteration[S, A]) Policy(state S) (A, bool) {
	return greedyAction(vi.mdp, vi.values, vi.discount, state)
}

// Values implements Solver.
func (vi *ValueIteration[S, A]) Values() map[S]float64 {
	return copyValues(vi.values)
}

// Iterations implements Solver.
func (vi *ValueIteration[S, A]) Iterations() int {
	return vi.iterations
}

func mustValidate(discount float64, iterations int) {
	if iterations < 0 {
		panic(fmt.Errorf("number of iterations must be non-negative, got %d", iterations))
	}

	if discount < 0 || discount > 1 || math.IsNaN(discount) {
		panic(fmt.Errorf("discount must be in [0, 1], got %v", discount))
	}
}

func qValue[S comparable, A comparable](m MDP[S, A], values map[S]float64, discount float64, state S, action A) float64 {
	total := 0.0
	for _, t := range m.Transitions(state, action) {
		total += t.Prob * (m.Reward(state, action, t.State) + discount*values[t.State])
	}

	return total
}

// bellman returns the greatest Q-value of state, or 0 if state has no
// possible actions.
func bellman[S comparable, A comparable](m MDP[S, A], values map[S]float64, discount float64, state S) float64 {
	actions := m.PossibleActions(state)
	if len(actions) == 0 {
		return 0
	}

	best := math.Inf(-1)
	for _, a := range actions {
		best = math.Max(best, qValue(m, values, discount, state, a))
	}

	return best
}

func greedyAction[S comparable, A comparable](m MDP[S, A], values map[S]float64, discount float64, state S) (best A, ok bool) {
	bestQ := math.Inf(-1)
	for _, a := range m.PossibleActions(state) {
		q := qValue(m, values, discount, state, a)
		if !ok || q > bestQ {
			best, bestQ, ok = a, q, true
		}
	}

	return best, ok
}

func copyValues[S comparable](values map[S]float64) map[S]float64 {
	result := make(map[S]float64, len(values))
	for s, v := range values {
		result[s] = v
	}

	return result
}
