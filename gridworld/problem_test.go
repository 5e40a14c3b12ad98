package gridworld

import (
	"testing"

	search "github.com/timpalpant/go-search"
)

func loadMaze(t testing.TB, name string) (*Layout, Position) {
	t.Helper()
	l, err := LoadLayout("../layouts/" + name + ".lay")
	if err != nil {
		t.Fatal(err)
	}

	return l, l.Food.List()[0]
}

func followPath(start Position, actions []Direction) Position {
	p := start
	for _, a := range actions {
		p = p.Move(a)
	}

	return p
}

func TestPositionSearch_ShortestPaths(t *testing.T) {
	testCases := []struct {
		maze string
		cost float64
	}{
		{"tinyMaze", 8},
		{"smallMaze", 19},
	}

	for _, tc := range testCases {
		l, goal := loadMaze(t, tc.maze)
		for _, strategy := range []search.Strategy{search.BreadthFirst, search.UniformCost, search.AStar} {
			problem := NewPositionSearchProblem(l, l.AgentStart, goal)
			s := search.NewSearcher[Position, Direction](strategy, ManhattanHeuristic)
			path, ok := s.Search(problem)
			if !ok {
				t.Errorf("%s/%v: expected a path", tc.maze, strategy)
				continue
			}

			if cost := problem.CostOfActions(path.Actions); cost != tc.cost {
				t.Errorf("%s/%v: expected cost %v, got %v", tc.maze, strategy, tc.cost, cost)
			}

			if end := followPath(l.AgentStart, path.Actions); end != goal {
				t.Errorf("%s/%v: path ends at %v, expected %v", tc.maze, strategy, end, goal)
			}
		}
	}
}

func TestPositionSearch_DepthFirst(t *testing.T) {
	l, goal := loadMaze(t, "smallMaze")
	problem := NewPositionSearchProblem(l, l.AgentStart, goal)
	actions, ok := search.DepthFirstSearch[Position, Direction](problem)
	if !ok {
		t.Fatal("expected a path")
	}

	if cost := problem.CostOfActions(actions); cost >= IllegalCost || cost < 19 {
		t.Errorf("expected a legal path of cost at least 19, got %v", cost)
	}

	if end := followPath(l.AgentStart, actions); end != goal {
		t.Errorf("path ends at %v, expected %v", end, goal)
	}
}

func TestPositionSearch_HeuristicExpandsFewer(t *testing.T) {
	l, goal := loadMaze(t, "smallMaze")

	ucs := search.NewSearcher[Position, Direction](search.UniformCost, nil)
	ucs.Search(NewPositionSearchProblem(l, l.AgentStart, goal))

	for _, h := range []search.Heuristic[Position, Direction]{ManhattanHeuristic, EuclideanHeuristic} {
		problem := NewPositionSearchProblem(l, l.AgentStart, goal)
		astar := search.NewSearcher(search.AStar, h)
		astar.Search(problem)

		if astar.Stats().Expanded >= ucs.Stats().Expanded {
			t.Errorf("expected A* to expand fewer than %d states, got %d",
				ucs.Stats().Expanded, astar.Stats().Expanded)
		}

		if len(problem.Expanded()) != astar.Stats().Expanded {
			t.Errorf("expected %d calls to Successors, got %d",
				astar.Stats().Expanded, len(problem.Expanded()))
		}
	}
}

func TestPositionSearch_CostOfActions(t *testing.T) {
	l, goal := loadMaze(t, "tinyMaze")
	problem := NewPositionSearchProblem(l, l.AgentStart, goal)

	if cost := problem.CostOfActions([]Direction{West, West}); cost != 2 {
		t.Errorf("expected %v, got %v", 2, cost)
	}

	if cost := problem.CostOfActions([]Direction{North}); cost != IllegalCost {
		t.Errorf("expected %v, got %v", IllegalCost, cost)
	}

	if cost := problem.CostOfActions(nil); cost != 0 {
		t.Errorf("expected %v, got %v", 0, cost)
	}
}

func TestPositionSearch_WeightedCosts(t *testing.T) {
	l, goal := loadMaze(t, "smallMaze")
	for _, cost := range []CostFunc{StayEastCost, StayWestCost} {
		problem := NewWeightedSearchProblem(l, l.AgentStart, goal, cost)
		s := search.NewSearcher[Position, Direction](search.UniformCost, nil)
		path, ok := s.Search(problem)
		if !ok {
			t.Fatal("expected a path")
		}

		if c := problem.CostOfActions(path.Actions); c != path.Cost {
			t.Errorf("expected tracked cost %v to equal %v", path.Cost, c)
		}
	}
}

func TestPositionSearch_Unreachable(t *testing.T) {
	l := mustParse(t, "%%%%%%\n%P%. %\n%%%%%%\n")
	problem := NewPositionSearchProblem(l, l.AgentStart, Position{3, 1})
	for _, strategy := range []search.Strategy{search.DepthFirst, search.BreadthFirst, search.UniformCost, search.AStar} {
		s := search.NewSearcher[Position, Direction](strategy, ManhattanHeuristic)
		if _, ok := s.Search(problem); ok {
			t.Errorf("%v: expected no path", strategy)
		}
	}
}

func BenchmarkAStar_SmallMaze(b *testing.B) {
	l, goal := loadMaze(b, "smallMaze")
	for i := 0; i < b.N; i++ {
		problem := NewPositionSearchProblem(l, l.AgentStart, goal)
		search.AStarSearch[Position, Direction](problem, ManhattanHeuristic)
	}
}
