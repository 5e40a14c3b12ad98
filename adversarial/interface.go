// Package adversarial implements depth-limited game-tree search
// (minimax, alpha-beta pruning and expectimax) for games in which agent 0
// plays against any number of adversaries that move in round-robin order.
package adversarial

// GameState is the interface for a state of a turn-based multi-agent game.
//
// Agent 0 is the maximizing agent. Agents 1..NumAgents()-1 are adversaries
// that move in index order after agent 0; one ply is a full round of moves.
type GameState[A any] interface {
	// LegalActions returns the actions available to the given agent.
	// It must be non-empty for every state that is neither won nor lost.
	LegalActions(agent int) []A
	// GenerateSuccessor returns the state after the given agent takes action.
	GenerateSuccessor(agent int, action A) GameState[A]
	// NumAgents returns the number of agents, at least 1.
	NumAgents() int
	// IsWin returns true if agent 0 has won.
	IsWin() bool
	// IsLose returns true if agent 0 has lost.
	IsLose() bool
}

// EvaluationFunc returns the utility of a state for agent 0. It is applied
// to terminal states and to states at the depth limit.
type EvaluationFunc[A any] func(state GameState[A]) float64

// Agent selects the action for agent 0 in a given state.
type Agent[A any] interface {
	// GetAction returns the action chosen for agent 0. ok is false
	// if agent 0 has no legal actions.
	GetAction(state GameState[A]) (action A, ok bool)
	// Stats returns the counters of the most recent call to GetAction.
	Stats() Stats
}

// Stats are the counters of a single decision.
type Stats struct {
	// Expanded is the number of non-terminal states whose successors were generated.
	Expanded int
	// Evaluated is the number of calls to the evaluation function.
	Evaluated int
}
