// Package gridworld implements maze-like grid worlds: shortest-path search
// problems, a pursuit game between an agent and ghosts, and a grid MDP.
package gridworld

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidLayout is returned when a layout cannot be parsed.
var ErrInvalidLayout = errors.New("invalid layout")

// Layout is the static description of a maze.
//
// Layouts are written one row per line, top row first:
//
//	%  wall
//	.  food
//	o  capsule
//	P  agent start
//	G  ghost start (digits 1-4 are also accepted)
//	   empty
type Layout struct {
	Walls       *Grid
	Food        *Grid
	Capsules    []Position
	AgentStart  Position
	GhostStarts []Position
}

func (l *Layout) Width() int  { return l.Walls.Width() }
func (l *Layout) Height() int { return l.Walls.Height() }

// IsWall returns true if p is a wall or outside the maze.
func (l *Layout) IsWall(p Position) bool {
	return !l.Walls.InBounds(p) || l.Walls.Get(p)
}

// ParseLayout reads a layout from r.
func ParseLayout(r io.Reader) (*Layout, error) {
	var rows []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" && len(rows) == 0 {
			continue
		}

		rows = append(rows, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "error reading layout")
	}

	for len(rows) > 0 && strings.TrimSpace(rows[len(rows)-1]) == "" {
		rows = rows[:len(rows)-1]
	}

	if len(rows) == 0 {
		return nil, errors.Wrap(ErrInvalidLayout, "empty layout")
	}

	width, height := len(rows[0]), len(rows)
	l := &Layout{
		Walls: NewGrid(width, height),
		Food:  NewGrid(width, height),
	}

	numAgents := 0
	for i, row := range rows {
		if len(row) != width {
			return nil, errors.Wrapf(ErrInvalidLayout,
				"row %d has width %d, expected %d", i+1, len(row), width)
		}

		y := height - 1 - i
		for x, c := range []byte(row) {
			p := Position{x, y}
			switch c {
			case '%':
				l.Walls.Set(p, true)
			case '.':
				l.Food.Set(p, true)
			case 'o':
				l.Capsules = append(l.Capsules, p)
			case 'P':
				l.AgentStart = p
				numAgents++
			case 'G', '1', '2', '3', '4':
				l.GhostStarts = append(l.GhostStarts, p)
			case ' ':
			default:
				return nil, errors.Wrapf(ErrInvalidLayout,
					"unexpected %q at row %d, column %d", c, i+1, x+1)
			}
		}
	}

	if numAgents != 1 {
		return nil, errors.Wrapf(ErrInvalidLayout,
			"expected exactly one agent start, found %d", numAgents)
	}

	return l, nil
}

// LoadLayout reads the layout stored in the file at path.
func LoadLayout(path string) (*Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "error opening layout")
	}
	defer f.Close()

	l, err := ParseLayout(f)
	if err != nil {
		return nil, errors.Wrapf(err, "error parsing layout %s", path)
	}

	return l, nil
}

// String renders the layout in the format read by ParseLayout.
func (l *Layout) String() string {
	cells := make(map[Position]byte)
	for _, p := range l.Capsules {
		cells[p] = 'o'
	}
	for _, p := range l.GhostStarts {
		cells[p] = 'G'
	}
	cells[l.AgentStart] = 'P'

	return render(l.Walls, l.Food, cells)
}

func render(walls, food *Grid, cells map[Position]byte) string {
	var sb strings.Builder
	for y := walls.Height() - 1; y >= 0; y-- {
		for x := 0; x < walls.Width(); x++ {
			p := Position{x, y}
			if c, ok := cells[p]; ok {
				sb.WriteByte(c)
			} else if walls.Get(p) {
				sb.WriteByte('%')
			} else if food.Get(p) {
				sb.WriteByte('.')
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
