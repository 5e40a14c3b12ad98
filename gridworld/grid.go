package gridworld

import (
	"fmt"
	"math"
	"strings"
)

// Position is a cell of the grid. X increases to the east and Y to the
// north; (0, 0) is the bottom-left corner.
type Position struct {
	X, Y int
}

// String implements fmt.Stringer.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Move returns the position one step from p in direction d.
func (p Position) Move(d Direction) Position {
	v := d.vector()
	return Position{p.X + v.X, p.Y + v.Y}
}

func ManhattanDistance(a, b Position) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func EuclideanDistance(a, b Position) float64 {
	dx, dy := float64(a.X-b.X), float64(a.Y-b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}

	return x
}

type Direction byte

const (
	North Direction = iota
	South
	East
	West
	Stop
	// Exit leaves the grid from an exit cell of a GridMDP.
	Exit
)

// Directions lists the moves in the order successors are generated.
var Directions = [...]Direction{North, South, East, West}

var directionStr = [...]string{
	"North",
	"South",
	"East",
	"West",
	"Stop",
	"Exit",
}

// String implements fmt.Stringer.
func (d Direction) String() string {
	if int(d) >= len(directionStr) {
		return fmt.Sprintf("Direction(%d)", int(d))
	}

	return directionStr[d]
}

// ParseDirection returns the Direction with the given name.
func ParseDirection(name string) (Direction, error) {
	for i, s := range directionStr {
		if strings.EqualFold(s, name) {
			return Direction(i), nil
		}
	}

	return Stop, fmt.Errorf("unknown direction: %q", name)
}

// Reverse returns the opposite direction. Stop and Exit are their own
// reverse.
func (d Direction) Reverse() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	}

	return d
}

// Left and Right return the directions perpendicular to d.
func (d Direction) Left() Direction {
	switch d {
	case North:
		return West
	case West:
		return South
	case South:
		return East
	case East:
		return North
	}

	return d
}

func (d Direction) Right() Direction {
	return d.Left().Reverse()
}

func (d Direction) vector() Position {
	switch d {
	case North:
		return Position{0, 1}
	case South:
		return Position{0, -1}
	case East:
		return Position{1, 0}
	case West:
		return Position{-1, 0}
	}

	return Position{}
}

// Grid is a dense width x height array of booleans.
type Grid struct {
	width, height int
	cells         []bool
}

func NewGrid(width, height int) *Grid {
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]bool, width*height),
	}
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// InBounds returns true if p is a cell of the grid.
func (g *Grid) InBounds(p Position) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// Get returns the value at p. Positions outside the grid are false.
func (g *Grid) Get(p Position) bool {
	if !g.InBounds(p) {
		return false
	}

	return g.cells[p.Y*g.width+p.X]
}

func (g *Grid) Set(p Position, v bool) {
	if !g.InBounds(p) {
		panic(fmt.Errorf("position %v out of bounds of %dx%d grid", p, g.width, g.height))
	}

	g.cells[p.Y*g.width+p.X] = v
}

// Count returns the number of true cells.
func (g *Grid) Count() int {
	n := 0
	for _, v := range g.cells {
		if v {
			n++
		}
	}

	return n
}

// List returns the true cells in column-major order.
func (g *Grid) List() []Position {
	var result []Position
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			if p := (Position{x, y}); g.Get(p) {
				result = append(result, p)
			}
		}
	}

	return result
}

func (g *Grid) Copy() *Grid {
	cells := make([]bool, len(g.cells))
	copy(cells, g.cells)
	return &Grid{width: g.width, height: g.height, cells: cells}
}
