package tree

import (
	"github.com/timpalpant/go-search/adversarial"
)

// Visit walks the game tree rooted at root in depth-first order, calling
// visitor for every state a depth-limited search would reach. Turns and the
// remaining depth advance exactly as they do in the adversarial agents.
func Visit[A any](root adversarial.GameState[A], depth int,
	visitor func(state adversarial.GameState[A], agent, depth int)) {
	visit(root, 0, depth, visitor)
}

func visit[A any](state adversarial.GameState[A], agent, depth int,
	visitor func(state adversarial.GameState[A], agent, depth int)) {
	visitor(state, agent, depth)
	if adversarial.IsTerminal(state, depth) {
		return
	}

	nextAgent, nextDepth := adversarial.NextTurn(agent, depth, state.NumAgents())
	for _, action := range state.LegalActions(agent) {
		child := state.GenerateSuccessor(agent, action)
		visit(child, nextAgent, nextDepth, visitor)
	}
}

func CountNodes[A any](root adversarial.GameState[A], depth int) int {
	total := 0
	Visit(root, depth, func(adversarial.GameState[A], int, int) { total++ })
	return total
}

// CountLeaves returns the number of states below root at which a search of
// the given depth stops: the number of evaluations made by exhaustive
// minimax search of root.
func CountLeaves[A any](root adversarial.GameState[A], depth int) int {
	total := 0
	Visit(root, depth, func(state adversarial.GameState[A], _, depth int) {
		if adversarial.IsTerminal(state, depth) {
			total++
		}
	})

	return total
}
