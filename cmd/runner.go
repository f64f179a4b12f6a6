package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/shelf/internal/catalog"
	"github.com/desertthunder/shelf/internal/repositories"
	"github.com/desertthunder/shelf/internal/shared"
	jsoniter "github.com/json-iterator/go"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config  *shared.Config
	library *catalog.Library
	store   repositories.Store
	logger  *log.Logger
	input   io.Reader
	output  io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config  *shared.Config
	Library *catalog.Library
	Logger  *log.Logger
	Input   io.Reader
	Output  io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:  opts.Config,
		library: opts.Library,
		logger:  opts.Logger,
		input:   opts.Input,
		output:  opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		menuCommand, addCommand, removeCommand, searchCommand, listCommand, statusCommand,
		exportCommand, backupCommand, browseCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// configure loads the config file named by --config when it exists and applies the global flag overrides.
//
// A missing default config is fine, a missing config the user asked for is not.
func (r *Runner) configure(cmd *cli.Command) error {
	path := cmd.String("config")
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			config, err := shared.LoadConfig(path)
			if err != nil {
				return err
			}
			r.config = config
		} else if cmd.IsSet("config") {
			return fmt.Errorf("%w: %s", shared.ErrMissingConfig, path)
		}
	}

	if driver := cmd.String("driver"); driver != "" {
		r.config.Storage.Driver = driver
	}
	if file := cmd.String("file"); file != "" {
		r.config.SetStorePath(file)
	}
	if err := r.config.Validate(); err != nil {
		return err
	}

	level, err := shared.ParseLogLevel(r.config.Log.Level)
	if err != nil {
		return err
	}
	if cmd.Bool("verbose") {
		level = log.DebugLevel
	}
	shared.SetLogLevel(r.logger, level)
	return nil
}

// ensureLibrary opens the configured store and loads the catalog once per run.
func (r *Runner) ensureLibrary(cmd *cli.Command) error {
	if r.library != nil {
		return nil
	}

	if err := r.configure(cmd); err != nil {
		return err
	}

	r.logger.Debug("opening catalog", "driver", r.config.Storage.Driver, "path", r.config.StorePath())
	store, err := repositories.Open(r.config)
	if err != nil {
		return err
	}

	logger := shared.WithLogger(r.logger, "session", shared.GenerateID())
	library, err := catalog.New(store, logger)
	if err != nil {
		store.Close()
		return err
	}

	r.store = store
	r.library = library
	return nil
}

// Close releases the store opened by ensureLibrary.
func (r *Runner) Close() error {
	if r.store == nil {
		return nil
	}
	err := r.store.Close()
	r.store = nil
	return err
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = jsoniter.ConfigFastest.MarshalIndent(data, "", "  ")
	} else {
		output, err = jsoniter.ConfigFastest.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(append(output, '\n')); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	return r.writePlain(format+"\n", args...)
}
