// Package mdp solves finite Markov decision processes by value iteration.
package mdp

// Transition is one possible outcome of taking an action.
type Transition[S comparable] struct {
	State S
	Prob  float64
}

// MDP is a finite Markov decision process with an explicit transition model.
type MDP[S comparable, A comparable] interface {
	// States returns every state of the process, in a fixed order.
	States() []S
	// PossibleActions returns the actions available in state. Terminal
	// states have none.
	PossibleActions(state S) []A
	// Transitions returns the successors of taking action in state and
	// their probabilities.
	Transitions(state S, action A) []Transition[S]
	Reward(state S, action A, next S) float64
	IsTerminal(state S) bool
}

// Solver is the result of solving an MDP: a value table and the greedy
// policy with respect to it.
type Solver[S comparable, A comparable] interface {
	// Value returns the value of state. Unknown states have value 0.
	Value(state S) float64
	// QValue returns the expected discounted return of taking action in
	// state and then following the value table.
	QValue(state S, action A) float64
	// Policy returns the action with the greatest Q-value, or false if
	// state has no possible actions.
	Policy(state S) (A, bool)
	// Values returns a copy of the value table.
	Values() map[S]float64
	// Iterations returns the number of updates the solver performed.
	Iterations() int
}
