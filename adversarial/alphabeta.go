package adversarial

import (
	"math"

	"github.com/golang/glog"
)

// AlphaBeta is minimax search with alpha-beta pruning. It always chooses
// the same action as Minimax, but may evaluate far fewer states.
//
// Pruning is fail-soft: at a cutoff the value of the child that crossed
// the bound is returned, not the bound itself. Cutoffs compare each child's
// value with the bound passed in to the node, and only fire on strict
// inequality, so ties with the bound are still explored.
type AlphaBeta[A any] struct {
	params Params[A]
	stats  Stats
}

var _ Agent[int] = &AlphaBeta[int]{}

// NewAlphaBeta returns a new alpha-beta agent.
func NewAlphaBeta[A any](params Params[A]) *AlphaBeta[A] {
	params.mustValidate()
	return &AlphaBeta[A]{params: params}
}

// GetAction implements Agent.
func (ab *AlphaBeta[A]) GetAction(state GameState[A]) (A, bool) {
	action, _, ok := ab.search(state)
	return action, ok
}

// Value returns the minimax value of state for agent 0.
func (ab *AlphaBeta[A]) Value(state GameState[A]) float64 {
	_, v, _ := ab.search(state)
	return v
}

// Stats implements Agent.
func (ab *AlphaBeta[A]) Stats() Stats {
	return ab.stats
}

func (ab *AlphaBeta[A]) search(state GameState[A]) (best A, bestValue float64, ok bool) {
	ab.stats = Stats{}
	actions := state.LegalActions(0)
	if len(actions) == 0 {
		ab.stats.Evaluated++
		return best, ab.params.Evaluation(state), false
	}

	ab.stats.Expanded++
	nextAgent, nextDepth := NextTurn(0, ab.params.Depth, state.NumAgents())
	alpha, beta := math.Inf(-1), math.Inf(1)
	bestValue = math.Inf(-1)
	for _, action := range actions {
		child := state.GenerateSuccessor(0, action)
		v := ab.value(child, nextAgent, nextDepth, alpha, beta)
		if !ok || v > bestValue {
			best, bestValue, ok = action, v, true
			alpha = math.Max(alpha, v)
		}
	}

	glog.V(1).Infof("alphabeta: value %v, expanded %d, evaluated %d",
		bestValue, ab.stats.Expanded, ab.stats.Evaluated)
	return best, bestValue, ok
}

func (ab *AlphaBeta[A]) value(state GameState[A], agent, depth int, alpha, beta float64) float64 {
	if IsTerminal(state, depth) {
		ab.stats.Evaluated++
		return ab.params.Evaluation(state)
	}

	ab.stats.Expanded++
	if agent == 0 {
		return ab.handleMaxNode(state, depth, alpha, beta)
	}

	return ab.handleMinNode(state, agent, depth, alpha, beta)
}

func (ab *AlphaBeta[A]) handleMaxNode(state GameState[A], depth int, alpha, beta float64) float64 {
	nextAgent, nextDepth := NextTurn(0, depth, state.NumAgents())
	v := math.Inf(-1)
	for _, action := range state.LegalActions(0) {
		child := state.GenerateSuccessor(0, action)
		childValue := ab.value(child, nextAgent, nextDepth, alpha, beta)
		v = math.Max(v, childValue)
		if childValue > beta {
			return childValue
		}
		alpha = math.Max(alpha, childValue)
	}

	return v
}

func (ab *AlphaBeta[A]) handleMinNode(state GameState[A], agent, depth int, alpha, beta float64) float64 {
	nextAgent, nextDepth := NextTurn(agent, depth, state.NumAgents())
	v := math.Inf(1)
	for _, action := range state.LegalActions(agent) {
		child := state.GenerateSuccessor(agent, action)
		childValue := ab.value(child, nextAgent, nextDepth, alpha, beta)
		v = math.Min(v, childValue)
		if childValue < alpha {
			return childValue
		}
		beta = math.Min(beta, childValue)
	}

	return v
}
