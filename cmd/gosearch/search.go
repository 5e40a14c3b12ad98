package main

import (
	"fmt"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	search "github.com/timpalpant/go-search"
	"github.com/timpalpant/go-search/gridworld"
)

type searchOptions struct {
	layout    string
	strategy  string
	heuristic string
}

var heuristics = map[string]search.Heuristic[gridworld.Position, gridworld.Direction]{
	"null":      search.NullHeuristic[gridworld.Position, gridworld.Direction],
	"manhattan": gridworld.ManhattanHeuristic,
	"euclidean": gridworld.EuclideanHeuristic,
}

func (a *App) newSearchCmd() *cobra.Command {
	opts := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Find a path to the food in a maze layout",
		Long: `Find a path from the agent's start position to the first food
pellet of a maze layout.

Examples:
  gosearch search --layout layouts/smallMaze.lay --strategy bfs
  gosearch search --layout layouts/smallMaze.lay --strategy astar --heuristic manhattan`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := &a.cfg.Search
			if cmd.Flags().Changed("layout") {
				cfg.Layout = opts.layout
			}
			if cmd.Flags().Changed("strategy") {
				cfg.Strategy = opts.strategy
			}
			if cmd.Flags().Changed("heuristic") {
				cfg.Heuristic = opts.heuristic
			}

			if err := a.cfg.Validate(); err != nil {
				return err
			}

			return a.runSearch()
		},
	}

	cmd.Flags().StringVar(&opts.layout, "layout", "", "Path to a maze layout file")
	cmd.Flags().StringVar(&opts.strategy, "strategy", "", "Search strategy: dfs, bfs, ucs or astar")
	cmd.Flags().StringVar(&opts.heuristic, "heuristic", "", "A* heuristic: null, manhattan or euclidean")

	return cmd
}

func (a *App) runSearch() error {
	cfg := a.cfg.Search
	if cfg.Layout == "" {
		return errors.New("a layout is required (--layout)")
	}

	layout, err := gridworld.LoadLayout(cfg.Layout)
	if err != nil {
		return err
	}

	glog.Infof("loaded %dx%d layout %s", layout.Width(), layout.Height(), cfg.Layout)
	food := layout.Food.List()
	if len(food) == 0 {
		return errors.Errorf("layout %s has no food to search for", cfg.Layout)
	}

	strategy, err := search.ParseStrategy(cfg.Strategy)
	if err != nil {
		return err
	}

	problem := gridworld.NewPositionSearchProblem(layout, layout.AgentStart, food[0])
	searcher := search.NewSearcher(strategy, heuristics[strings.ToLower(cfg.Heuristic)])
	path, ok := searcher.Search(problem)
	stats := searcher.Stats()
	a.metrics.RecordSearch(strategy.String(), stats.Expanded, path.Cost, ok)

	if !ok {
		fmt.Fprintf(a.stdout, "%v: no path from %v to %v (expanded %d states)\n",
			strategy, layout.AgentStart, problem.Goal(), stats.Expanded)
		return nil
	}

	actions := make([]string, len(path.Actions))
	for i, action := range path.Actions {
		actions[i] = action.String()
	}

	fmt.Fprintf(a.stdout, "%v: path from %v to %v with cost %v, expanded %d states\n",
		strategy, layout.AgentStart, problem.Goal(), path.Cost, stats.Expanded)
	fmt.Fprintln(a.stdout, strings.Join(actions, " "))
	return nil
}
