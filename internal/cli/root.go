// Package cli wires the millpool commands.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/piwi3910/MillPool/internal/engine"
	"github.com/piwi3910/MillPool/internal/logger"
	"github.com/piwi3910/MillPool/internal/model"
	"github.com/piwi3910/MillPool/internal/project"
)

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	e := &env{}
	err := newRootCmd(e).Execute()
	e.close()
	if err != nil {
		os.Exit(1)
	}
}

// env is the state shared by every subcommand after the config is loaded.
type env struct {
	configPath string
	debug      bool

	config   model.AppConfig
	backlog  *project.Backlog
	selector *engine.Selector
	cleanup  func() error
}

// load reads the config, starts logging and opens the backlog. A logger
// failure is reported on stderr and the command continues without a log file.
func (e *env) load(stderr io.Writer) error {
	if e.configPath == "" {
		e.configPath = project.DefaultConfigPath()
	}
	config, err := project.LoadAppConfig(e.configPath)
	if err != nil {
		return err
	}
	if e.debug {
		config.Debug = true
	}
	e.config = config

	cleanup, err := logger.Setup(logger.Config{
		Dir:   filepath.Dir(e.configPath),
		Debug: config.Debug,
	})
	if err != nil {
		fmt.Fprintf(stderr, "warning: logging disabled: %v\n", err)
	} else {
		e.cleanup = cleanup
	}

	backlog, err := project.OpenBacklog(project.BacklogPathFor(config, e.configPath))
	if err != nil {
		return err
	}
	e.backlog = backlog
	e.selector = engine.New(config.Pool)
	logger.L().Debug("cli.loaded", "config", e.configPath, "backlog", backlog.Path())
	return nil
}

func (e *env) close() {
	if e.cleanup != nil {
		_ = e.cleanup()
		e.cleanup = nil
	}
}

func newRootCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "millpool",
		Short:        "MillPool selects the daily milling pool for the facade shop",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.load(cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().StringVar(&e.configPath, "config", "", "Config file (.json or .yaml; default ~/.millpool/config.json)")
	cmd.PersistentFlags().BoolVar(&e.debug, "debug", false, "enable verbose logging to <config dir>/logs/millpool.log")

	cmd.AddCommand(
		poolCmd(e),
		acceptCmd(e),
		importCmd(e),
		exportCmd(e),
		stageCmd(e),
		ordersCmd(e),
		backupCmd(e),
		serveCmd(e),
		uiCmd(e),
	)
	return cmd
}
