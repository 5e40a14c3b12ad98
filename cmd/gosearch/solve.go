package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/timpalpant/go-search/gridworld"
	"github.com/timpalpant/go-search/internal/config"
	"github.com/timpalpant/go-search/ldbstore"
	"github.com/timpalpant/go-search/mdp"
)

type solveOptions struct {
	grid         string
	solver       string
	discount     float64
	iterations   int
	theta        float64
	noise        float64
	livingReward float64
	store        string
}

func (a *App) newSolveCmd() *cobra.Command {
	opts := &solveOptions{}

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Compute values and a policy for a grid-world MDP",
		Long: `Solve one of the built-in grid worlds (` + strings.Join(gridworld.GridNames(), ", ") + `)
with value iteration or prioritized sweeping, and print the value and
greedy action of every cell.

With --store, the values and policy are also saved to a LevelDB store
under a new run id.

Examples:
  gosearch solve --grid book --iterations 100
  gosearch solve --grid bridge --noise 0 --solver sweeping --store /tmp/runs`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := &a.cfg.MDP
			flags := cmd.Flags()
			if flags.Changed("grid") {
				cfg.Grid = opts.grid
			}
			if flags.Changed("solver") {
				cfg.Solver = opts.solver
			}
			if flags.Changed("discount") {
				cfg.Discount = opts.discount
			}
			if flags.Changed("iterations") {
				cfg.Iterations = opts.iterations
			}
			if flags.Changed("theta") {
				cfg.Theta = opts.theta
			}
			if flags.Changed("noise") {
				cfg.Noise = opts.noise
			}
			if flags.Changed("living-reward") {
				cfg.LivingReward = opts.livingReward
			}
			if flags.Changed("store") {
				a.cfg.Output.Store = opts.store
			}

			if err := a.cfg.Validate(); err != nil {
				return err
			}

			return a.runSolve()
		},
	}

	cmd.Flags().StringVar(&opts.grid, "grid", "", "Grid world: "+strings.Join(gridworld.GridNames(), ", "))
	cmd.Flags().StringVar(&opts.solver, "solver", "", "Solver: value or sweeping")
	cmd.Flags().Float64Var(&opts.discount, "discount", 0, "Discount factor in [0, 1]")
	cmd.Flags().IntVar(&opts.iterations, "iterations", 0, "Number of iterations (value) or updates (sweeping)")
	cmd.Flags().Float64Var(&opts.theta, "theta", 0, "Prioritized sweeping error threshold")
	cmd.Flags().Float64Var(&opts.noise, "noise", 0, "Probability that a move slips to either side")
	cmd.Flags().Float64Var(&opts.livingReward, "living-reward", 0, "Reward for every non-exit transition")
	cmd.Flags().StringVar(&opts.store, "store", "", "Save the solution to the LevelDB store at this path")

	return cmd
}

func (a *App) runSolve() error {
	cfg := a.cfg.MDP
	grid, err := gridworld.NamedGrid(cfg.Grid)
	if err != nil {
		return err
	}
	grid.Noise = cfg.Noise
	grid.LivingReward = cfg.LivingReward

	glog.Infof("solving %s grid with %s, discount %v, noise %v", cfg.Grid, cfg.Solver, cfg.Discount, cfg.Noise)
	var solver mdp.Solver[gridworld.Position, gridworld.Direction]
	solverName := strings.ToLower(cfg.Solver)
	if solverName == config.SweepingSolver {
		solver = mdp.NewPrioritizedSweeping[gridworld.Position, gridworld.Direction](
			grid, cfg.Discount, cfg.Iterations, cfg.Theta)
	} else {
		solver = mdp.NewValueIteration[gridworld.Position, gridworld.Direction](
			grid, cfg.Discount, cfg.Iterations)
	}
	a.metrics.RecordSolve(solverName, solver.Iterations())

	fmt.Fprintf(a.stdout, "%s grid, %s solver, %d updates\n", cfg.Grid, solverName, solver.Iterations())
	fmt.Fprint(a.stdout, grid.Format(solver))
	fmt.Fprintf(a.stdout, "start value: %.4f\n", solver.Value(grid.Start()))

	if a.cfg.Output.Store == "" {
		return nil
	}

	run := uuid.NewString()
	if err := a.export(run, grid, solver); err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "saved run %s to %s\n", run, a.cfg.Output.Store)
	return nil
}

func (a *App) export(run string, grid *gridworld.GridMDP, solver mdp.Solver[gridworld.Position, gridworld.Direction]) error {
	store, err := ldbstore.Open(a.cfg.Output.Store, &opt.Options{})
	if err != nil {
		return err
	}
	defer store.Close()

	cfg := a.cfg.MDP
	info := ldbstore.RunInfo{
		Solver:     strings.ToLower(cfg.Solver),
		Grid:       strings.ToLower(cfg.Grid),
		Discount:   cfg.Discount,
		Iterations: solver.Iterations(),
		Created:    time.Now().UTC(),
	}
	if err := store.PutRun(run, info); err != nil {
		return err
	}

	values := make(map[string]float64)
	for state, v := range solver.Values() {
		values[state.String()] = v
	}
	if err := store.PutValues(run, values); err != nil {
		return err
	}

	policy := make(map[string]string)
	for _, state := range grid.States() {
		if action, ok := solver.Policy(state); ok {
			policy[state.String()] = action.String()
		}
	}
	if err := store.PutPolicy(run, policy); err != nil {
		return err
	}

	glog.V(1).Infof("exported %d values and %d actions as run %s", len(values), len(policy), run)
	return nil
}
