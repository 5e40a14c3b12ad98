package mdp

import (
	"math"

	"github.com/golang/glog"

	search "github.com/timpalpant/go-search"
)

// PrioritizedSweeping is asynchronous value iteration that updates states
// in order of decreasing Bellman residual. Each update is applied in place,
// and after updating a state the residuals of its predecessors are
// recomputed.
type PrioritizedSweeping[S comparable, A comparable] struct {
	mdp        MDP[S, A]
	discount   float64
	theta      float64
	values     map[S]float64
	iterations int
}

var _ Solver[int, int] = &PrioritizedSweeping[int, int]{}

// NewPrioritizedSweeping runs up to iterations updates of prioritized
// sweeping on m. Predecessors are only queued if their residual exceeds
// theta, and the sweep stops early once no state is queued.
func NewPrioritizedSweeping[S comparable, A comparable](m MDP[S, A], discount float64, iterations int, theta float64) *PrioritizedSweeping[S, A] {
	mustValidate(discount, iterations)
	ps := &PrioritizedSweeping[S, A]{
		mdp:      m,
		discount: discount,
		theta:    theta,
		values:   make(map[S]float64),
	}

	ps.run(iterations)
	return ps
}

func (ps *PrioritizedSweeping[S, A]) run(iterations int) {
	states := ps.mdp.States()
	for _, s := range states {
		ps.values[s] = 0
	}

	predecessors := ps.predecessors(states)
	queue := search.NewPriorityFrontier[S, struct{}]()
	for _, s := range states {
		if ps.mdp.IsTerminal(s) {
			continue
		}

		queue.Update(s, struct{}{}, -ps.residual(s))
	}

	for ps.iterations < iterations && !queue.Empty() {
		s, _, _, _ := queue.Pop()
		if !ps.mdp.IsTerminal(s) {
			ps.values[s] = bellman(ps.mdp, ps.values, ps.discount, s)
		}

		ps.iterations++
		for _, p := range predecessors[s] {
			if diff := ps.residual(p); diff > ps.theta {
				queue.Update(p, struct{}{}, -diff)
			}
		}

		glog.V(2).Infof("prioritized sweeping: updated %v to %v, %d queued",
			s, ps.values[s], queue.Len())
	}

	glog.V(1).Infof("prioritized sweeping: %d of %d updates over %d states",
		ps.iterations, iterations, len(states))
}

// predecessors returns, for each state, the non-terminal states with an
// action that reaches it with nonzero probability. Predecessors are listed
// in the order of states.
func (ps *PrioritizedSweeping[S, A]) predecessors(states []S) map[S][]S {
	result := make(map[S][]S)
	seen := make(map[[2]S]struct{})
	for _, s := range states {
		if ps.mdp.IsTerminal(s) {
			continue
		}

		for _, a := range ps.mdp.PossibleActions(s) {
			for _, t := range ps.mdp.Transitions(s, a) {
				if t.Prob == 0 {
					continue
				}

				edge := [2]S{t.State, s}
				if _, ok := seen[edge]; ok {
					continue
				}

				seen[edge] = struct{}{}
				result[t.State] = append(result[t.State], s)
			}
		}
	}

	return result
}

func (ps *PrioritizedSweeping[S, A]) residual(state S) float64 {
	return math.Abs(ps.values[state] - bellman(ps.mdp, ps.values, ps.discount, state))
}

// Value implements Solver.
func (ps *PrioritizedSweeping[S, A]) Value(state S) float64 {
	return ps.values[state]
}

// QValue implements Solver.
func (ps *PrioritizedSweeping[S, A]) QValue(state S, action A) float64 {
	return qValue(ps.mdp, ps.values, ps.discount, state, action)
}

// Policy implements Solver.
func (ps *PrioritizedSweeping[S, A]) Policy(state S) (A, bool) {
	return greedyAction(ps.mdp, ps.values, ps.discount, state)
}

// Values implements Solver.
func (ps *PrioritizedSweeping[S, A]) Values() map[S]float64 {
	return copyValues(ps.values)
}

// Iterations implements Solver.
func (ps *PrioritizedSweeping[S, A]) Iterations() int {
	return ps.iterations
}
