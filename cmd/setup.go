package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/shelf/internal/repositories"
	"github.com/desertthunder/shelf/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes the embedded example configuration to the --config path.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	if configPath == "" {
		return fmt.Errorf("%w: --config", shared.ErrMissingArgument)
	}

	if err := shared.CreateConfigFile(configPath); err != nil {
		return err
	}

	r.logger.Info("config file created", "path", configPath)
	return r.writePlainln("✓ Configuration written to %s", configPath)
}

// SetupDatabase initializes the SQLite database and runs migrations.
//
// It works regardless of the configured driver so a catalog can be prepared before switching to sqlite.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	if err := r.configure(cmd); err != nil {
		return err
	}

	path := r.config.Database.Path
	r.logger.Info("initializing database", "path", path)

	store, err := repositories.NewSQLiteStore(path, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer store.Close()

	books, err := store.Load()
	if err != nil {
		return fmt.Errorf("failed to read database: %w", err)
	}

	return r.writePlainln("✓ Database ready at %s (%d books)", path, len(books))
}
