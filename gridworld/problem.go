package gridworld

import (
	"fmt"
	"math"

	search "github.com/timpalpant/go-search"
)

// IllegalCost is the cost of an action sequence that walks into a wall.
const IllegalCost = 999999

// CostFunc returns the cost of stepping into a position.
type CostFunc func(p Position) float64

// PositionSearchProblem is the problem of finding a path through a maze
// from a start position to a goal position.
type PositionSearchProblem struct {
	layout *Layout
	start  Position
	goal   Position
	cost   CostFunc

	// Positions in the order they were expanded.
	expanded []Position
}

var _ search.Problem[Position, Direction] = &PositionSearchProblem{}

// NewPositionSearchProblem returns a search problem over layout with unit
// step costs.
func NewPositionSearchProblem(layout *Layout, start, goal Position) *PositionSearchProblem {
	return NewWeightedSearchProblem(layout, start, goal, nil)
}

// NewWeightedSearchProblem returns a search problem over layout where
// stepping into a position p costs cost(p). A nil cost is unit cost.
func NewWeightedSearchProblem(layout *Layout, start, goal Position, cost CostFunc) *PositionSearchProblem {
	if cost == nil {
		cost = func(Position) float64 { return 1 }
	}

	return &PositionSearchProblem{
		layout: layout,
		start:  start,
		goal:   goal,
		cost:   cost,
	}
}

// StartState implements search.Problem.
func (p *PositionSearchProblem) StartState() Position {
	return p.start
}

// IsGoal implements search.Problem.
func (p *PositionSearchProblem) IsGoal(state Position) bool {
	return state == p.goal
}

// Goal returns the goal position.
func (p *PositionSearchProblem) Goal() Position {
	return p.goal
}

// Successors implements search.Problem.
func (p *PositionSearchProblem) Successors(state Position) []search.Successor[Position, Direction] {
	p.expanded = append(p.expanded, state)

	var result []search.Successor[Position, Direction]
	for _, d := range Directions {
		next := state.Move(d)
		if p.layout.IsWall(next) {
			continue
		}

		result = append(result, search.Successor[Position, Direction]{
			State:  next,
			Action: d,
			Cost:   p.cost(next),
		})
	}

	return result
}

// CostOfActions implements search.Problem. Sequences that walk into a
// wall cost IllegalCost.
func (p *PositionSearchProblem) CostOfActions(actions []Direction) float64 {
	pos := p.start
	total := 0.0
	for _, a := range actions {
		pos = pos.Move(a)
		if p.layout.IsWall(pos) {
			return IllegalCost
		}

		total += p.cost(pos)
	}

	return total
}

// Expanded returns the positions passed to Successors, in order.
func (p *PositionSearchProblem) Expanded() []Position {
	return p.expanded
}

type goalProblem interface {
	Goal() Position
}

func goalOf(problem search.Problem[Position, Direction]) Position {
	if g, ok := problem.(goalProblem); ok {
		return g.Goal()
	}

	panic(fmt.Errorf("heuristic requires a single goal position, got %T", problem))
}

// ManhattanHeuristic is the Manhattan distance to the goal. It is
// admissible and consistent for unit step costs.
func ManhattanHeuristic(state Position, problem search.Problem[Position, Direction]) float64 {
	return float64(ManhattanDistance(state, goalOf(problem)))
}

// EuclideanHeuristic is the straight-line distance to the goal.
func EuclideanHeuristic(state Position, problem search.Problem[Position, Direction]) float64 {
	return EuclideanDistance(state, goalOf(problem))
}

var _ search.Heuristic[Position, Direction] = ManhattanHeuristic

// StayEastCost and StayWestCost penalize the west and east halves of the
// maze respectively, exponentially in the distance from the edge.
func StayEastCost(p Position) float64 {
	return math.Pow(0.5, float64(p.X))
}

func StayWestCost(p Position) float64 {
	return math.Pow(2, float64(p.X))
}
