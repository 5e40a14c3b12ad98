package search

import (
	"fmt"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Strategy selects the frontier discipline of a graph search.
type Strategy int

const (
	DepthFirst Strategy = iota
	BreadthFirst
	UniformCost
	AStar
)

var strategyNames = [...]string{
	"dfs",
	"bfs",
	"ucs",
	"astar",
}

func (s Strategy) String() string {
	if s < 0 || int(s) >= len(strategyNames) {
		return fmt.Sprintf("Strategy(%d)", int(s))
	}

	return strategyNames[s]
}

// ErrUnknownStrategy is returned by ParseStrategy for unrecognized names.
var ErrUnknownStrategy = errors.New("unknown search strategy")

// ParseStrategy returns the Strategy with the given short name
// (dfs, bfs, ucs or astar).
func ParseStrategy(name string) (Strategy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, s := range strategyNames {
		if s == name {
			return Strategy(i), nil
		}
	}

	return 0, errors.Wrapf(ErrUnknownStrategy, "%q", name)
}

// node is a search node: a state together with the path that reached it.
type node[S comparable, A any] struct {
	state  S
	action A
	parent *node[S, A]
	cost   float64
	depth  int
}

func (n *node[S, A]) child(succ Successor[S, A]) *node[S, A] {
	return &node[S, A]{
		state:  succ.State,
		action: succ.Action,
		parent: n,
		cost:   n.cost + succ.Cost,
		depth:  n.depth + 1,
	}
}

func (n *node[S, A]) path() Path[A] {
	actions := make([]A, n.depth)
	for cur := n; cur.parent != nil; cur = cur.parent {
		actions[cur.depth-1] = cur.action
	}

	return Path[A]{Actions: actions, Cost: n.cost}
}

// Searcher runs graph searches with a fixed strategy.
//
// A Searcher may be reused for many problems but not concurrently:
// each call to Search owns a fresh frontier and visited set, and
// Stats reports on the most recent call.
type Searcher[S comparable, A any] struct {
	strategy  Strategy
	heuristic Heuristic[S, A]
	stats     Stats
}

// NewSearcher returns a Searcher for the given strategy. The heuristic is
// only consulted by AStar; nil means NullHeuristic.
func NewSearcher[S comparable, A any](strategy Strategy, heuristic Heuristic[S, A]) *Searcher[S, A] {
	if heuristic == nil {
		heuristic = NullHeuristic[S, A]
	}

	return &Searcher[S, A]{
		strategy:  strategy,
		heuristic: heuristic,
	}
}

// Strategy returns the search strategy.
func (s *Searcher[S, A]) Strategy() Strategy {
	return s.strategy
}

// Stats returns the counters of the most recent call to Search.
func (s *Searcher[S, A]) Stats() Stats {
	return s.stats
}

// Search returns a path from the start state of problem to a goal state.
// ok is false if the frontier is exhausted without reaching a goal.
func (s *Searcher[S, A]) Search(problem Problem[S, A]) (path Path[A], ok bool) {
	s.stats = Stats{}

	var goal *node[S, A]
	switch s.strategy {
	case DepthFirst:
		goal = s.graphSearch(problem, newLIFOFrontier[*node[S, A]](), false)
	case BreadthFirst:
		goal = s.graphSearch(problem, newFIFOFrontier[*node[S, A]](), true)
	case UniformCost:
		goal = s.bestFirstSearch(problem, NullHeuristic[S, A])
	case AStar:
		goal = s.bestFirstSearch(problem, s.heuristic)
	default:
		panic(fmt.Errorf("unknown search strategy: %v", s.strategy))
	}

	if goal == nil {
		glog.V(1).Infof("%v: no path found after expanding %d states", s.strategy, s.stats.Expanded)
		return Path[A]{}, false
	}

	path = goal.path()
	glog.V(1).Infof("%v: found path of length %d with cost %v, expanded %d states",
		s.strategy, len(path.Actions), path.Cost, s.stats.Expanded)
	glog.V(2).Infof("%v: generated %d nodes, max frontier %d",
		s.strategy, s.stats.Generated, s.stats.MaxFrontier)
	return path, true
}

// graphSearch implements depth-first and breadth-first search.
//
// With markOnPush, states are marked visited when they are generated and
// each state enters the frontier at most once (breadth-first). Otherwise
// states are marked visited when popped, and states already visited are
// neither pushed nor expanded again (depth-first).
func (s *Searcher[S, A]) graphSearch(problem Problem[S, A], f frontier[*node[S, A]], markOnPush bool) *node[S, A] {
	visited := make(map[S]struct{})
	start := &node[S, A]{state: problem.StartState()}
	if markOnPush {
		visited[start.state] = struct{}{}
	}
	s.push(f, start)

	for {
		n, ok := f.pop()
		if !ok {
			return nil
		}

		if !markOnPush {
			if _, ok := visited[n.state]; ok {
				continue
			}
			visited[n.state] = struct{}{}
		}

		if problem.IsGoal(n.state) {
			return n
		}

		s.stats.Expanded++
		for _, succ := range problem.Successors(n.state) {
			if _, ok := visited[succ.State]; ok {
				continue
			}

			if markOnPush {
				visited[succ.State] = struct{}{}
			}
			s.push(f, n.child(succ))
		}
	}
}

func (s *Searcher[S, A]) push(f frontier[*node[S, A]], n *node[S, A]) {
	f.push(n)
	s.stats.Generated++
	if f.len() > s.stats.MaxFrontier {
		s.stats.MaxFrontier = f.len()
	}
}

// bestFirstSearch implements uniform-cost search and A*.
//
// States are marked visited only when popped, since a cheaper path to a
// state already in the frontier may still be found; the frontier keeps the
// cheapest known entry per state.
func (s *Searcher[S, A]) bestFirstSearch(problem Problem[S, A], heuristic Heuristic[S, A]) *node[S, A] {
	visited := make(map[S]struct{})
	f := NewPriorityFrontier[S, *node[S, A]]()
	start := &node[S, A]{state: problem.StartState()}
	f.Push(start.state, start, heuristic(start.state, problem))
	s.stats.Generated++
	s.stats.MaxFrontier = 1

	for {
		state, n, _, ok := f.Pop()
		if !ok {
			return nil
		}

		if _, ok := visited[state]; ok {
			continue
		}
		visited[state] = struct{}{}

		if problem.IsGoal(state) {
			return n
		}

		s.stats.Expanded++
		for _, succ := range problem.Successors(state) {
			if _, ok := visited[succ.State]; ok {
				continue
			}

			child := n.child(succ)
			if f.Update(child.state, child, child.cost+heuristic(child.state, problem)) {
				s.stats.Generated++
			}
		}

		if f.Len() > s.stats.MaxFrontier {
			s.stats.MaxFrontier = f.Len()
		}
	}
}

// DepthFirstSearch searches the deepest nodes in the search tree first.
func DepthFirstSearch[S comparable, A any](problem Problem[S, A]) ([]A, bool) {
	path, ok := NewSearcher[S, A](DepthFirst, nil).Search(problem)
	return path.Actions, ok
}

// BreadthFirstSearch searches the shallowest nodes in the search tree first.
func BreadthFirstSearch[S comparable, A any](problem Problem[S, A]) ([]A, bool) {
	path, ok := NewSearcher[S, A](BreadthFirst, nil).Search(problem)
	return path.Actions, ok
}

// UniformCostSearch searches the node of least total cost first.
func UniformCostSearch[S comparable, A any](problem Problem[S, A]) ([]A, bool) {
	path, ok := NewSearcher[S, A](UniformCost, nil).Search(problem)
	return path.Actions, ok
}

// AStarSearch searches the node with the lowest combined cost and heuristic first.
func AStarSearch[S comparable, A any](problem Problem[S, A], heuristic Heuristic[S, A]) ([]A, bool) {
	path, ok := NewSearcher(AStar, heuristic).Search(problem)
	return path.Actions, ok
}
