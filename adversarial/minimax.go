package adversarial

import (
	"math"

	"github.com/golang/glog"
)

// Minimax chooses actions by exhaustive depth-limited minimax search:
// agent 0 maximizes and every other agent minimizes.
type Minimax[A any] struct {
	params Params[A]
	stats  Stats
}

var _ Agent[int] = &Minimax[int]{}

// NewMinimax returns a new minimax agent.
func NewMinimax[A any](params Params[A]) *Minimax[A] {
	params.mustValidate()
	return &Minimax[A]{params: params}
}

// GetAction implements Agent.
func (m *Minimax[A]) GetAction(state GameState[A]) (A, bool) {
	action, _, ok := m.search(state)
	return action, ok
}

// Value returns the minimax value of state for agent 0.
func (m *Minimax[A]) Value(state GameState[A]) float64 {
	_, v, _ := m.search(state)
	return v
}

// Stats implements Agent.
func (m *Minimax[A]) Stats() Stats {
	return m.stats
}

func (m *Minimax[A]) search(state GameState[A]) (A, float64, bool) {
	m.stats = Stats{}
	action, v, ok := chooseAction(state, m.params, m.value, &m.stats)
	glog.V(1).Infof("minimax: value %v, expanded %d, evaluated %d",
		v, m.stats.Expanded, m.stats.Evaluated)
	return action, v, ok
}

func (m *Minimax[A]) value(state GameState[A], agent, depth int) float64 {
	if IsTerminal(state, depth) {
		m.stats.Evaluated++
		return m.params.Evaluation(state)
	}

	m.stats.Expanded++
	if agent == 0 {
		return m.handleMaxNode(state, depth)
	}

	return m.handleMinNode(state, agent, depth)
}

func (m *Minimax[A]) handleMaxNode(state GameState[A], depth int) float64 {
	nextAgent, nextDepth := NextTurn(0, depth, state.NumAgents())
	v := math.Inf(-1)
	for _, action := range state.LegalActions(0) {
		child := state.GenerateSuccessor(0, action)
		v = math.Max(v, m.value(child, nextAgent, nextDepth))
	}

	return v
}

func (m *Minimax[A]) handleMinNode(state GameState[A], agent, depth int) float64 {
	nextAgent, nextDepth := NextTurn(agent, depth, state.NumAgents())
	v := math.Inf(1)
	for _, action := range state.LegalActions(agent) {
		child := state.GenerateSuccessor(agent, action)
		v = math.Min(v, m.value(child, nextAgent, nextDepth))
	}

	return v
}

// chooseAction evaluates each of agent 0's actions in state and returns the
// first one with the greatest value. If agent 0 has no legal actions, the
// value is the evaluation of state itself and ok is false.
func chooseAction[A any](state GameState[A], params Params[A],
	value func(GameState[A], int, int) float64, stats *Stats) (best A, bestValue float64, ok bool) {
	actions := state.LegalActions(0)
	if len(actions) == 0 {
		stats.Evaluated++
		return best, params.Evaluation(state), false
	}

	stats.Expanded++
	nextAgent, nextDepth := NextTurn(0, params.Depth, state.NumAgents())
	bestValue = math.Inf(-1)
	for _, action := range actions {
		child := state.GenerateSuccessor(0, action)
		v := value(child, nextAgent, nextDepth)
		if !ok || v > bestValue {
			best, bestValue, ok = action, v, true
		}
	}

	return best, bestValue, ok
}
