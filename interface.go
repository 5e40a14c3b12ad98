// Package search implements uninformed and informed graph search
// (depth-first, breadth-first, uniform-cost and A*) over an externally
// supplied Problem.
package search

// Successor is one outgoing edge of a search state.
type Successor[S comparable, A any] struct {
	State  S
	Action A
	Cost   float64
}

// Problem is the interface for a search problem.
//
// States must be comparable: they are used as keys of the visited set
// and of the priority frontier. Two states are the same state iff they
// compare equal.
type Problem[S comparable, A any] interface {
	// StartState returns the state the search begins from.
	StartState() S
	// IsGoal returns true if and only if the state is a goal state.
	IsGoal(state S) bool
	// Successors returns the (state, action, stepCost) triples reachable
	// from state in one step. Step costs must be non-negative for
	// UniformCost and AStar to return a minimum-cost path.
	Successors(state S) []Successor[S, A]
	// CostOfActions returns the total cost of a sequence of legal actions
	// taken from the start state.
	CostOfActions(actions []A) float64
}

// Heuristic estimates the cost from state to the nearest goal of problem.
// AStar returns a minimum-cost path only if the heuristic never
// overestimates the true remaining cost.
type Heuristic[S comparable, A any] func(state S, problem Problem[S, A]) float64

// NullHeuristic is the trivial heuristic. AStar with NullHeuristic
// is equivalent to UniformCost.
func NullHeuristic[S comparable, A any](state S, problem Problem[S, A]) float64 {
	return 0
}

// Path is a solution to a Problem.
type Path[A any] struct {
	Actions []A
	// Cost is the accumulated step cost along Actions, as tracked during
	// the search.
	Cost float64
}

// Stats are the counters of a single search call.
type Stats struct {
	// Expanded is the number of distinct states whose successors were generated.
	Expanded int
	// Generated is the number of nodes inserted into the frontier.
	Generated int
	// MaxFrontier is the largest number of live frontier entries observed.
	MaxFrontier int
}
