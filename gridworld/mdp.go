package gridworld

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/timpalpant/go-search/mdp"
)

const DefaultNoise = 0.2

// TerminalState is the state reached by taking Exit from an exit cell.
var TerminalState = Position{-1, -1}

// ErrUnknownGrid is returned by NamedGrid for unrecognized grid names.
var ErrUnknownGrid = errors.New("unknown grid")

// GridMDP is a grid world with noisy movement. Each move goes in the
// intended direction with probability 1-Noise and to either side with
// probability Noise/2; moves into walls stay in place. Exit cells have a
// single action, Exit, which collects the cell's reward and ends the
// episode. Every other transition earns LivingReward.
type GridMDP struct {
	Noise        float64
	LivingReward float64

	walls  *Grid
	exits  map[Position]float64
	start  Position
	states []Position
}

var _ mdp.MDP[Position, Direction] = &GridMDP{}

// NewGridMDP builds a grid world from rows of cells, top row first. Each
// cell is "#" (wall), "S" (start), " " or "" (empty), or a number: the
// reward of an exit cell.
func NewGridMDP(rows [][]string) (*GridMDP, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.New("empty grid")
	}

	width, height := len(rows[0]), len(rows)
	g := &GridMDP{
		Noise: DefaultNoise,
		walls: NewGrid(width, height),
		exits: make(map[Position]float64),
	}

	for i, row := range rows {
		if len(row) != width {
			return nil, errors.Errorf("row %d has width %d, expected %d", i+1, len(row), width)
		}

		y := height - 1 - i
		for x, cell := range row {
			p := Position{x, y}
			switch cell = strings.TrimSpace(cell); cell {
			case "#":
				g.walls.Set(p, true)
			case "S":
				g.start = p
			case "":
			default:
				reward, err := strconv.ParseFloat(cell, 64)
				if err != nil {
					return nil, errors.Wrapf(err, "invalid cell %q at row %d, column %d", cell, i+1, x+1)
				}

				g.exits[p] = reward
			}
		}
	}

	g.states = append(g.states, TerminalState)
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			if p := (Position{x, y}); !g.walls.Get(p) {
				g.states = append(g.states, p)
			}
		}
	}

	return g, nil
}

func mustGrid(rows [][]string) *GridMDP {
	g, err := NewGridMDP(rows)
	if err != nil {
		panic(err)
	}

	return g
}

func BookGrid() *GridMDP {
	return mustGrid([][]string{
		{" ", " ", " ", "+1"},
		{" ", "#", " ", "-1"},
		{"S", " ", " ", " "},
	})
}

func BridgeGrid() *GridMDP {
	return mustGrid([][]string{
		{"#", "-100", "-100", "-100", "-100", "-100", "#"},
		{"1", "S", " ", " ", " ", " ", "10"},
		{"#", "-100", "-100", "-100", "-100", "-100", "#"},
	})
}

func CliffGrid() *GridMDP {
	return mustGrid([][]string{
		{" ", " ", " ", " ", " "},
		{"8", "S", " ", " ", "10"},
		{"-100", "-100", "-100", "-100", "-100"},
	})
}

func DiscountGrid() *GridMDP {
	return mustGrid([][]string{
		{" ", " ", " ", " ", " "},
		{" ", "#", " ", " ", " "},
		{" ", "#", "1", "#", "10"},
		{"S", " ", " ", " ", " "},
		{"-10", "-10", "-10", "-10", "-10"},
	})
}

var namedGrids = map[string]func() *GridMDP{
	"book":     BookGrid,
	"bridge":   BridgeGrid,
	"cliff":    CliffGrid,
	"discount": DiscountGrid,
}

// GridNames returns the names accepted by NamedGrid.
func GridNames() []string {
	names := make([]string, 0, len(namedGrids))
	for name := range namedGrids {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// NamedGrid returns a new instance of one of the built-in grids.
func NamedGrid(name string) (*GridMDP, error) {
	newGrid, ok := namedGrids[strings.ToLower(name)]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownGrid, "%q", name)
	}

	return newGrid(), nil
}

func (g *GridMDP) Start() Position {
	return g.start
}

func (g *GridMDP) Width() int  { return g.walls.Width() }
func (g *GridMDP) Height() int { return g.walls.Height() }

// IsExit returns the reward of the exit cell at p, if p is one.
func (g *GridMDP) IsExit(p Position) (float64, bool) {
	r, ok := g.exits[p]
	return r, ok
}

// States implements mdp.MDP.
func (g *GridMDP) States() []Position {
	return g.states
}

// PossibleActions implements mdp.MDP.
func (g *GridMDP) PossibleActions(state Position) []Direction {
	if state == TerminalState {
		return nil
	}

	if _, ok := g.exits[state]; ok {
		return []Direction{Exit}
	}

	return []Direction{North, West, South, East}
}

// Transitions implements mdp.MDP.
func (g *GridMDP) Transitions(state Position, action Direction) []mdp.Transition[Position] {
	if state == TerminalState {
		panic(fmt.Errorf("no transitions from the terminal state"))
	}

	if _, ok := g.exits[state]; ok {
		return []mdp.Transition[Position]{{State: TerminalState, Prob: 1}}
	}

	var result []mdp.Transition[Position]
	add := func(d Direction, prob float64) {
		if prob == 0 {
			return
		}

		next := state.Move(d)
		if !g.walls.InBounds(next) || g.walls.Get(next) {
			next = state
		}

		for i := range result {
			if result[i].State == next {
				result[i].Prob += prob
				return
			}
		}

		result = append(result, mdp.Transition[Position]{State: next, Prob: prob})
	}

	add(action, 1-g.Noise)
	add(action.Left(), g.Noise/2)
	add(action.Right(), g.Noise/2)
	return result
}

// Reward implements mdp.MDP.
func (g *GridMDP) Reward(state Position, action Direction, next Position) float64 {
	if state == TerminalState {
		return 0
	}

	if r, ok := g.exits[state]; ok {
		return r
	}

	return g.LivingReward
}

// IsTerminal implements mdp.MDP.
func (g *GridMDP) IsTerminal(state Position) bool {
	return state == TerminalState
}

var policyArrows = map[Direction]string{
	North: "^",
	South: "v",
	East:  ">",
	West:  "<",
	Exit:  "x",
}

// Format renders the values and greedy policy of solver as a table, top
// row first.
func (g *GridMDP) Format(solver mdp.Solver[Position, Direction]) string {
	var sb strings.Builder
	for y := g.Height() - 1; y >= 0; y-- {
		for x := 0; x < g.Width(); x++ {
			p := Position{x, y}
			if g.walls.Get(p) {
				sb.WriteString(" ########")
				continue
			}

			arrow := " "
			if a, ok := solver.Policy(p); ok {
				arrow = policyArrows[a]
			}

			fmt.Fprintf(&sb, " %s%7.2f", arrow, solver.Value(p))
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
