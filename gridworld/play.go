package gridworld

import (
	"math/rand"

	"github.com/golang/glog"

	"github.com/timpalpant/go-search/adversarial"
)

// RandomGhost chooses uniformly among the legal actions of ghost agent.
func RandomGhost(game *Game, agent int, rng *rand.Rand) Direction {
	actions := game.LegalActions(agent)
	return actions[rng.Intn(len(actions))]
}

// Result summarizes a simulated game.
type Result struct {
	Score float64
	Win   bool
	Lose  bool
	Moves int
	// Stats accumulated by the agent over all of its decisions.
	Stats adversarial.Stats
}

// PlayGame simulates game with agent controlling agent 0 against random
// ghosts, for at most maxMoves rounds.
func PlayGame(game *Game, agent adversarial.Agent[Direction], rng *rand.Rand, maxMoves int) Result {
	var result Result
	state := game
	for result.Moves < maxMoves && !state.IsOver() {
		action, ok := agent.GetAction(state)
		stats := agent.Stats()
		result.Stats.Expanded += stats.Expanded
		result.Stats.Evaluated += stats.Evaluated
		if !ok {
			break
		}

		state = state.Successor(0, action)
		for ghost := 1; ghost < state.NumAgents() && !state.IsOver(); ghost++ {
			state = state.Successor(ghost, RandomGhost(state, ghost, rng))
		}

		result.Moves++
		glog.V(2).Infof("move %d: %v, score %v", result.Moves, action, state.Score())
	}

	result.Score = state.Score()
	result.Win = state.IsWin()
	result.Lose = state.IsLose()
	glog.V(1).Infof("game over after %d moves: score %v, win %v",
		result.Moves, result.Score, result.Win)
	return result
}
