// Package config loads gosearch run configuration from YAML.
package config

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	search "github.com/timpalpant/go-search"
	"github.com/timpalpant/go-search/adversarial"
	"github.com/timpalpant/go-search/gridworld"
)

// ErrInvalidConfig is returned when a configuration fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the configuration of a gosearch run. Command-line flags
// override the values it holds.
type Config struct {
	Search SearchConfig `yaml:"search"`
	Game   GameConfig   `yaml:"game"`
	MDP    MDPConfig    `yaml:"mdp"`
	Output OutputConfig `yaml:"output"`
}

type SearchConfig struct {
	Layout    string `yaml:"layout"`
	Strategy  string `yaml:"strategy"`
	Heuristic string `yaml:"heuristic"`
}

type GameConfig struct {
	Layout     string `yaml:"layout"`
	Agent      string `yaml:"agent"`
	Depth      int    `yaml:"depth"`
	Evaluation string `yaml:"evaluation"`
	Games      int    `yaml:"games"`
	Seed       int64  `yaml:"seed"`
	MaxMoves   int    `yaml:"max_moves"`
}

type MDPConfig struct {
	Grid         string  `yaml:"grid"`
	Solver       string  `yaml:"solver"`
	Discount     float64 `yaml:"discount"`
	Iterations   int     `yaml:"iterations"`
	Theta        float64 `yaml:"theta"`
	Noise        float64 `yaml:"noise"`
	LivingReward float64 `yaml:"living_reward"`
}

type OutputConfig struct {
	// Store is the directory of a LevelDB store to export solved MDPs to.
	Store string `yaml:"store"`
	// MetricsOut is a file to write run metrics to, in the Prometheus
	// text format.
	MetricsOut string `yaml:"metrics_out"`
}

const (
	ReflexAgent = "reflex"

	ValueSolver    = "value"
	SweepingSolver = "sweeping"
)

var (
	heuristics  = []string{"null", "manhattan", "euclidean"}
	evaluations = []string{"score", "better"}
	solvers     = []string{ValueSolver, SweepingSolver}
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Search: SearchConfig{
			Strategy:  search.AStar.String(),
			Heuristic: "manhattan",
		},
		Game: GameConfig{
			Agent:      adversarial.AlphaBetaKind.String(),
			Depth:      2,
			Evaluation: "better",
			Games:      1,
			Seed:       1,
			MaxMoves:   500,
		},
		MDP: MDPConfig{
			Grid:       "book",
			Solver:     ValueSolver,
			Discount:   0.9,
			Iterations: 100,
			Theta:      1e-5,
			Noise:      gridworld.DefaultNoise,
		},
	}
}

// Load reads a configuration from r. Values missing from r keep their
// defaults, and ${VAR} references are expanded from the environment.
func Load(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "error reading config")
	}

	cfg := Default()
	dec := yaml.NewDecoder(strings.NewReader(os.ExpandEnv(string(data))))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "error parsing config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFile reads the configuration stored in the file at path.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "error opening config")
	}
	defer f.Close()

	cfg, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "error loading %s", path)
	}

	return cfg, nil
}

// Validate checks that every name in c is recognized and every parameter
// is in range.
func (c *Config) Validate() error {
	if _, err := search.ParseStrategy(c.Search.Strategy); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "search.strategy: %v", err)
	}

	if !oneOf(c.Search.Heuristic, heuristics) {
		return errors.Wrapf(ErrInvalidConfig, "search.heuristic: unknown heuristic %q", c.Search.Heuristic)
	}

	if _, err := adversarial.ParseKind(c.Game.Agent); err != nil && !strings.EqualFold(c.Game.Agent, ReflexAgent) {
		return errors.Wrapf(ErrInvalidConfig, "game.agent: %v", err)
	}

	if !oneOf(c.Game.Evaluation, evaluations) {
		return errors.Wrapf(ErrInvalidConfig, "game.evaluation: unknown evaluation %q", c.Game.Evaluation)
	}

	switch {
	case c.Game.Depth < 0:
		return errors.Wrapf(ErrInvalidConfig, "game.depth must be non-negative, got %d", c.Game.Depth)
	case c.Game.Games < 1:
		return errors.Wrapf(ErrInvalidConfig, "game.games must be positive, got %d", c.Game.Games)
	case c.Game.MaxMoves < 1:
		return errors.Wrapf(ErrInvalidConfig, "game.max_moves must be positive, got %d", c.Game.MaxMoves)
	}

	if _, err := gridworld.NamedGrid(c.MDP.Grid); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "mdp.grid: %v", err)
	}

	if !oneOf(c.MDP.Solver, solvers) {
		return errors.Wrapf(ErrInvalidConfig, "mdp.solver: unknown solver %q", c.MDP.Solver)
	}

	switch {
	case c.MDP.Discount < 0 || c.MDP.Discount > 1:
		return errors.Wrapf(ErrInvalidConfig, "mdp.discount must be in [0, 1], got %v", c.MDP.Discount)
	case c.MDP.Iterations < 0:
		return errors.Wrapf(ErrInvalidConfig, "mdp.iterations must be non-negative, got %d", c.MDP.Iterations)
	case c.MDP.Noise < 0 || c.MDP.Noise > 1:
		return errors.Wrapf(ErrInvalidConfig, "mdp.noise must be in [0, 1], got %v", c.MDP.Noise)
	case c.MDP.Theta < 0:
		return errors.Wrapf(ErrInvalidConfig, "mdp.theta must be non-negative, got %v", c.MDP.Theta)
	}

	return nil
}

func oneOf(name string, options []string) bool {
	for _, o := range options {
		if strings.EqualFold(name, o) {
			return true
		}
	}

	return false
}
