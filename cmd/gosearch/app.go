package main

import (
	"context"
	"flag"
	"io"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/timpalpant/go-search/internal/config"
	"github.com/timpalpant/go-search/internal/metrics"
)

// App is the gosearch command-line application.
type App struct {
	root   *cobra.Command
	stdout io.Writer

	configPath string
	metricsOut string

	cfg     *config.Config
	metrics *metrics.Metrics
}

// NewApp returns the gosearch application with all subcommands attached.
func NewApp() *App {
	app := &App{stdout: os.Stdout}

	app.root = &cobra.Command{
		Use:   "gosearch",
		Short: "Search, game-playing and MDP solvers on grid worlds",
		Long: `gosearch runs graph search on maze layouts, plays adversarial
grid games against random ghosts, and solves grid-world MDPs.

Every option can also be set in a YAML config file (--config);
flags given on the command line take precedence.`,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  app.setup,
		PersistentPostRunE: app.teardown,
	}

	app.root.PersistentFlags().StringVar(&app.configPath, "config", "", "Path to YAML config file")
	app.root.PersistentFlags().StringVar(&app.metricsOut, "metrics-out", "", "Write run metrics to this file")
	app.root.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	app.root.AddCommand(
		app.newSearchCmd(),
		app.newPlayCmd(),
		app.newSolveCmd(),
	)

	return app
}

// WithOutput sets the writer that results are printed to.
func (a *App) WithOutput(stdout io.Writer) *App {
	a.stdout = stdout
	a.root.SetOut(stdout)
	return a
}

// Execute runs the application with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	a.root.SetArgs(args)
	return a.root.ExecuteContext(ctx)
}

func (a *App) setup(cmd *cobra.Command, args []string) error {
	// glog reads its flags from flag.CommandLine, which cobra has filled in.
	flag.CommandLine.Parse([]string{})

	a.cfg = config.Default()
	if a.configPath != "" {
		cfg, err := config.LoadFile(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}

	if a.metricsOut != "" {
		a.cfg.Output.MetricsOut = a.metricsOut
	}

	a.metrics = metrics.New()
	return nil
}

func (a *App) teardown(cmd *cobra.Command, args []string) error {
	defer glog.Flush()

	if path := a.cfg.Output.MetricsOut; path != "" {
		if err := a.metrics.WriteFile(path); err != nil {
			return err
		}
		glog.V(1).Infof("wrote metrics to %s", path)
	}

	return nil
}
