package main

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/timpalpant/go-search/adversarial"
	"github.com/timpalpant/go-search/gridworld"
	"github.com/timpalpant/go-search/internal/config"
)

type playOptions struct {
	layout     string
	agent      string
	depth      int
	evaluation string
	games      int
	seed       int64
	maxMoves   int
}

var evaluations = map[string]adversarial.EvaluationFunc[gridworld.Direction]{
	"score":  gridworld.ScoreEvaluation,
	"better": gridworld.BetterEvaluation,
}

func (a *App) newPlayCmd() *cobra.Command {
	opts := &playOptions{}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play grid games against random ghosts",
		Long: `Simulate games on a layout in which a search agent controls
the player and every ghost moves at random.

Examples:
  gosearch play --layout layouts/minimaxClassic.lay --agent minimax --depth 3
  gosearch play --layout layouts/trappedClassic.lay --agent expectimax --games 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := &a.cfg.Game
			flags := cmd.Flags()
			if flags.Changed("layout") {
				cfg.Layout = opts.layout
			}
			if flags.Changed("agent") {
				cfg.Agent = opts.agent
			}
			if flags.Changed("depth") {
				cfg.Depth = opts.depth
			}
			if flags.Changed("eval") {
				cfg.Evaluation = opts.evaluation
			}
			if flags.Changed("games") {
				cfg.Games = opts.games
			}
			if flags.Changed("seed") {
				cfg.Seed = opts.seed
			}
			if flags.Changed("max-moves") {
				cfg.MaxMoves = opts.maxMoves
			}

			if err := a.cfg.Validate(); err != nil {
				return err
			}

			return a.runPlay()
		},
	}

	cmd.Flags().StringVar(&opts.layout, "layout", "", "Path to a game layout file")
	cmd.Flags().StringVar(&opts.agent, "agent", "", "Agent: minimax, alphabeta, expectimax or reflex")
	cmd.Flags().IntVar(&opts.depth, "depth", 0, "Search depth in full rounds of moves")
	cmd.Flags().StringVar(&opts.evaluation, "eval", "", "Evaluation function: score or better")
	cmd.Flags().IntVar(&opts.games, "games", 0, "Number of games to play")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "Random seed for ghost moves")
	cmd.Flags().IntVar(&opts.maxMoves, "max-moves", 0, "Maximum number of moves per game")

	return cmd
}

func (a *App) newAgent(rng *rand.Rand) (adversarial.Agent[gridworld.Direction], error) {
	cfg := a.cfg.Game
	if strings.EqualFold(cfg.Agent, config.ReflexAgent) {
		return adversarial.NewReflex(gridworld.ReflexEvaluation, rng), nil
	}

	kind, err := adversarial.ParseKind(cfg.Agent)
	if err != nil {
		return nil, err
	}

	return adversarial.New(kind, adversarial.Params[gridworld.Direction]{
		Depth:      cfg.Depth,
		Evaluation: evaluations[strings.ToLower(cfg.Evaluation)],
	}), nil
}

func (a *App) runPlay() error {
	cfg := a.cfg.Game
	if cfg.Layout == "" {
		return errors.New("a layout is required (--layout)")
	}

	layout, err := gridworld.LoadLayout(cfg.Layout)
	if err != nil {
		return err
	}

	glog.Infof("playing %d games on %s with %s, %d ghosts", cfg.Games, cfg.Layout, cfg.Agent, len(layout.GhostStarts))
	rng := rand.New(rand.NewSource(cfg.Seed))
	agent, err := a.newAgent(rng)
	if err != nil {
		return err
	}

	agentName := strings.ToLower(cfg.Agent)
	var wins int
	var totalScore float64
	for i := 0; i < cfg.Games; i++ {
		result := gridworld.PlayGame(gridworld.NewGame(layout), agent, rng, cfg.MaxMoves)
		a.metrics.RecordGame(agentName, result.Stats.Expanded, result.Stats.Evaluated,
			result.Win, result.Lose)

		outcome := "unfinished"
		if result.Win {
			outcome = "win"
			wins++
		} else if result.Lose {
			outcome = "lose"
		} else {
			glog.Warningf("game %d stopped after %d moves without a result", i+1, result.Moves)
		}

		totalScore += result.Score
		fmt.Fprintf(a.stdout, "game %d: %s after %d moves, score %v\n",
			i+1, outcome, result.Moves, result.Score)
		glog.V(1).Infof("game %d: expanded %d states, evaluated %d",
			i+1, result.Stats.Expanded, result.Stats.Evaluated)
	}

	fmt.Fprintf(a.stdout, "%s: won %d/%d games, average score %.2f\n",
		agentName, wins, cfg.Games, totalScore/float64(cfg.Games))
	return nil
}
