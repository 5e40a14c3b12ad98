package gridworld

import (
	"fmt"
	"slices"
	"strings"

	"github.com/timpalpant/go-search/adversarial"
)

const (
	// ScaredTime is the number of moves a ghost stays scared after the
	// agent eats a capsule.
	ScaredTime = 40

	timePenalty = 1
	foodReward  = 10
	winReward   = 500
	losePenalty = 500
	ghostReward = 200
)

// GhostState is the dynamic state of one ghost.
type GhostState struct {
	Position    Position
	Direction   Direction
	ScaredTimer int

	start Position
}

func (g GhostState) IsScared() bool {
	return g.ScaredTimer > 0
}

// Game is the state of a pursuit game: agent 0 collects food while the
// ghosts (agents 1..n) try to catch it. Agent 0 wins by eating all the food
// and loses if a ghost that is not scared reaches its position. Eating a
// capsule scares every ghost, and a scared ghost that is caught is sent
// back to its start.
//
// Game values are immutable: successors share unchanged data with their
// parent.
type Game struct {
	layout    *Layout
	agent     Position
	direction Direction
	ghosts    []GhostState
	food      *Grid
	capsules  []Position
	score     float64
	win, lose bool
}

var _ adversarial.GameState[Direction] = &Game{}

// NewGame returns the initial state of a game on layout.
func NewGame(layout *Layout) *Game {
	ghosts := make([]GhostState, len(layout.GhostStarts))
	for i, p := range layout.GhostStarts {
		ghosts[i] = GhostState{Position: p, Direction: Stop, start: p}
	}

	return &Game{
		layout:    layout,
		agent:     layout.AgentStart,
		direction: Stop,
		ghosts:    ghosts,
		food:      layout.Food,
		capsules:  layout.Capsules,
	}
}

// String implements fmt.Stringer.
func (g *Game) String() string {
	cells := make(map[Position]byte)
	for _, p := range g.capsules {
		cells[p] = 'o'
	}
	for _, ghost := range g.ghosts {
		if ghost.IsScared() {
			cells[ghost.Position] = 'S'
		} else {
			cells[ghost.Position] = 'G'
		}
	}
	cells[g.agent] = 'P'

	var sb strings.Builder
	sb.WriteString(render(g.layout.Walls, g.food, cells))
	fmt.Fprintf(&sb, "Score: %v", g.score)
	return sb.String()
}

// LegalActions implements adversarial.GameState. Agent 0 may stop in
// place. Ghosts may not stop, and may only reverse direction at a dead end.
func (g *Game) LegalActions(agent int) []Direction {
	if g.IsOver() {
		return nil
	}

	if agent == 0 {
		actions := g.possibleMoves(g.agent)
		return append(actions, Stop)
	}

	ghost := g.ghosts[agent-1]
	actions := g.possibleMoves(ghost.Position)
	if len(actions) == 0 {
		return []Direction{Stop}
	}

	if len(actions) > 1 {
		if i := slices.Index(actions, ghost.Direction.Reverse()); i >= 0 {
			actions = slices.Delete(actions, i, i+1)
		}
	}

	return actions
}

func (g *Game) possibleMoves(p Position) []Direction {
	actions := make([]Direction, 0, len(Directions)+1)
	for _, d := range Directions {
		if !g.layout.IsWall(p.Move(d)) {
			actions = append(actions, d)
		}
	}

	return actions
}

// GenerateSuccessor implements adversarial.GameState.
func (g *Game) GenerateSuccessor(agent int, action Direction) adversarial.GameState[Direction] {
	return g.Successor(agent, action)
}

// Successor returns the state after agent takes action. It panics if the
// game is over or the action is illegal.
func (g *Game) Successor(agent int, action Direction) *Game {
	if g.IsOver() {
		panic(fmt.Errorf("cannot generate a successor of a finished game"))
	}

	if !slices.Contains(g.LegalActions(agent), action) {
		panic(fmt.Errorf("illegal action %v for agent %d at %v", action, agent, g))
	}

	s := *g
	s.ghosts = slices.Clone(g.ghosts)
	if agent == 0 {
		s.moveAgent(action)
		for i := range s.ghosts {
			s.checkCollision(i)
		}
	} else {
		s.moveGhost(agent-1, action)
		s.checkCollision(agent - 1)
	}

	return &s
}

func (g *Game) moveAgent(action Direction) {
	g.score -= timePenalty
	g.agent = g.agent.Move(action)
	g.direction = action

	if g.food.Get(g.agent) {
		g.food = g.food.Copy()
		g.food.Set(g.agent, false)
		g.score += foodReward
		if g.food.Count() == 0 && !g.lose {
			g.score += winReward
			g.win = true
		}
	}

	if i := slices.Index(g.capsules, g.agent); i >= 0 {
		g.capsules = slices.Delete(slices.Clone(g.capsules), i, i+1)
		for j := range g.ghosts {
			g.ghosts[j].ScaredTimer = ScaredTime
		}
	}
}

func (g *Game) moveGhost(i int, action Direction) {
	ghost := &g.ghosts[i]
	ghost.Position = ghost.Position.Move(action)
	ghost.Direction = action
	if ghost.ScaredTimer > 0 {
		ghost.ScaredTimer--
	}
}

func (g *Game) checkCollision(i int) {
	ghost := &g.ghosts[i]
	if ghost.Position != g.agent {
		return
	}

	if ghost.IsScared() {
		g.score += ghostReward
		*ghost = GhostState{Position: ghost.start, Direction: Stop, start: ghost.start}
	} else if !g.win {
		g.score -= losePenalty
		g.lose = true
	}
}

// NumAgents implements adversarial.GameState.
func (g *Game) NumAgents() int {
	return 1 + len(g.ghosts)
}

// IsWin implements adversarial.GameState.
func (g *Game) IsWin() bool {
	return g.win
}

// IsLose implements adversarial.GameState.
func (g *Game) IsLose() bool {
	return g.lose
}

func (g *Game) IsOver() bool {
	return g.win || g.lose
}

func (g *Game) Score() float64 {
	return g.score
}

func (g *Game) Layout() *Layout {
	return g.layout
}

func (g *Game) AgentPosition() Position {
	return g.agent
}

func (g *Game) AgentDirection() Direction {
	return g.direction
}

// Ghosts returns the states of the ghosts. Ghost i is agent i+1.
func (g *Game) Ghosts() []GhostState {
	return slices.Clone(g.ghosts)
}

func (g *Game) HasFood(p Position) bool {
	return g.food.Get(p)
}

func (g *Game) NumFood() int {
	return g.food.Count()
}

func (g *Game) FoodList() []Position {
	return g.food.List()
}

func (g *Game) Capsules() []Position {
	return slices.Clone(g.capsules)
}
