package adversarial

import (
	"fmt"
	"math/rand"
)

// treeGame is an explicit game tree. The agent to move is tracked by the
// search, so the same node type serves every agent.
type treeGame struct {
	name      string
	numAgents int
	value     float64
	win, lose bool
	children  []*treeGame
}

func (g *treeGame) LegalActions(agent int) []int {
	actions := make([]int, len(g.children))
	for i := range actions {
		actions[i] = i
	}
	return actions
}

func (g *treeGame) GenerateSuccessor(agent int, action int) GameState[int] {
	return g.children[action]
}

func (g *treeGame) NumAgents() int { return g.numAgents }
func (g *treeGame) IsWin() bool    { return g.win }
func (g *treeGame) IsLose() bool   { return g.lose }

func (g *treeGame) String() string {
	return fmt.Sprintf("treeGame(%s, v=%v, %d children)", g.name, g.value, len(g.children))
}

func evaluateTree(state GameState[int]) float64 {
	return state.(*treeGame).value
}

func leaf(numAgents int, value float64) *treeGame {
	return &treeGame{numAgents: numAgents, value: value}
}

func node(numAgents int, children ...*treeGame) *treeGame {
	return &treeGame{numAgents: numAgents, children: children}
}

// randomTree builds a random tree of height depth*numAgents with small
// integer leaf values (so that ties are common), and occasionally ends the
// game early with a win or a loss.
func randomTree(rng *rand.Rand, numAgents, height int) *treeGame {
	if height == 0 {
		return leaf(numAgents, float64(rng.Intn(11)-5))
	}

	switch rng.Intn(12) {
	case 0:
		return &treeGame{numAgents: numAgents, value: 50, win: true}
	case 1:
		return &treeGame{numAgents: numAgents, value: -50, lose: true}
	}

	n := 1 + rng.Intn(3)
	children := make([]*treeGame, n)
	for i := range children {
		children[i] = randomTree(rng, numAgents, height-1)
	}

	// Interior values are only used if the depth budget is shallower
	// than the tree.
	return &treeGame{numAgents: numAgents, value: float64(rng.Intn(11) - 5), children: children}
}
