package adversarial

import (
	"math"

	"github.com/golang/glog"

	"github.com/timpalpant/go-search/internal/f64"
)

// Expectimax models every adversary as choosing uniformly at random among
// its legal actions: the value of an adversary's turn is the mean of the
// values of its successors.
type Expectimax[A any] struct {
	params Params[A]
	stats  Stats

	// Child values of the chance nodes on the current path. Each chance node
	// appends its children's values and truncates them again once averaged.
	values []float64
}

var _ Agent[int] = &Expectimax[int]{}

// NewExpectimax returns a new expectimax agent.
func NewExpectimax[A any](params Params[A]) *Expectimax[A] {
	params.mustValidate()
	return &Expectimax[A]{params: params}
}

// GetAction implements Agent.
func (e *Expectimax[A]) GetAction(state GameState[A]) (A, bool) {
	action, _, ok := e.search(state)
	return action, ok
}

// Value returns the expectimax value of state for agent 0.
func (e *Expectimax[A]) Value(state GameState[A]) float64 {
	_, v, _ := e.search(state)
	return v
}

// Stats implements Agent.
func (e *Expectimax[A]) Stats() Stats {
	return e.stats
}

func (e *Expectimax[A]) search(state GameState[A]) (A, float64, bool) {
	e.stats = Stats{}
	e.values = e.values[:0]
	action, v, ok := chooseAction(state, e.params, e.value, &e.stats)
	glog.V(1).Infof("expectimax: value %v, expanded %d, evaluated %d",
		v, e.stats.Expanded, e.stats.Evaluated)
	return action, v, ok
}

func (e *Expectimax[A]) value(state GameState[A], agent, depth int) float64 {
	if IsTerminal(state, depth) {
		e.stats.Evaluated++
		return e.params.Evaluation(state)
	}

	e.stats.Expanded++
	if agent == 0 {
		return e.handleMaxNode(state, depth)
	}

	return e.handleChanceNode(state, agent, depth)
}

func (e *Expectimax[A]) handleMaxNode(state GameState[A], depth int) float64 {
	nextAgent, nextDepth := NextTurn(0, depth, state.NumAgents())
	v := math.Inf(-1)
	for _, action := range state.LegalActions(0) {
		child := state.GenerateSuccessor(0, action)
		v = math.Max(v, e.value(child, nextAgent, nextDepth))
	}

	return v
}

func (e *Expectimax[A]) handleChanceNode(state GameState[A], agent, depth int) float64 {
	nextAgent, nextDepth := NextTurn(agent, depth, state.NumAgents())
	start := len(e.values)
	for _, action := range state.LegalActions(agent) {
		child := state.GenerateSuccessor(agent, action)
		v := e.value(child, nextAgent, nextDepth)
		e.values = append(e.values, v)
	}

	ev := f64.Mean(e.values[start:])
	e.values = e.values[:start]
	return ev
}
