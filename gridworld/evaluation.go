package gridworld

import (
	"math"

	"github.com/timpalpant/go-search/adversarial"
)

// ScoreEvaluation is the game score.
func ScoreEvaluation(state adversarial.GameState[Direction]) float64 {
	return state.(*Game).Score()
}

// BetterEvaluation is the game score adjusted by distance to the nearest
// food, remaining food and capsules, and the distance to each ghost: scared
// ghosts within reach are attractive, and nearby ghosts that are not scared
// are dangerous.
func BetterEvaluation(state adversarial.GameState[Direction]) float64 {
	g := state.(*Game)
	if g.IsOver() {
		return g.Score()
	}

	pos := g.AgentPosition()
	v := g.Score()
	if d, ok := nearest(pos, g.FoodList()); ok {
		v -= 1.5 * float64(d)
	}

	v -= 4 * float64(g.NumFood())
	v -= 20 * float64(len(g.capsules))

	for _, ghost := range g.ghosts {
		d := ManhattanDistance(pos, ghost.Position)
		switch {
		case ghost.ScaredTimer > d:
			v += ghostReward / float64(d+1)
		case d <= 1:
			v -= losePenalty
		default:
			v -= 10 / float64(d)
		}
	}

	return v
}

// ReflexEvaluation scores taking action in state by looking one move
// ahead: it favors food and capsules, avoids ghosts unless they are
// scared, and includes the successor's score.
func ReflexEvaluation(state adversarial.GameState[Direction], action Direction) float64 {
	s := state.GenerateSuccessor(0, action).(*Game)
	pos := s.AgentPosition()

	numFood := s.NumFood()
	foodDist, _ := nearest(pos, s.FoodList())
	var v float64
	if numFood < 5 {
		v = -2*float64(foodDist) - 8*float64(numFood)
	} else {
		v = -float64(foodDist) - 8*float64(numFood)
	}

	maxScared := 0
	minGhostDist := math.Inf(1)
	for _, ghost := range s.ghosts {
		maxScared = max(maxScared, ghost.ScaredTimer)
		minGhostDist = math.Min(minGhostDist, float64(ManhattanDistance(pos, ghost.Position)))
	}

	if maxScared == 0 {
		switch {
		case minGhostDist < 1:
			v -= 10000
		case minGhostDist < 2:
			v -= 200
		case minGhostDist < 3:
			v -= 50
		}

		if d, ok := nearest(pos, s.capsules); ok {
			v += 5 / float64(d+1)
		}
	} else {
		v -= 10 / math.Max(minGhostDist, 1)
	}

	return v + float64(maxScared) + s.Score()
}

// nearest returns the Manhattan distance from p to the closest of targets.
func nearest(p Position, targets []Position) (int, bool) {
	if len(targets) == 0 {
		return 0, false
	}

	best := math.MaxInt
	for _, t := range targets {
		best = min(best, ManhattanDistance(p, t))
	}

	return best, true
}
