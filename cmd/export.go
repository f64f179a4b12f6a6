package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/shelf/internal/formatter"
	"github.com/desertthunder/shelf/internal/shared"
	"github.com/desertthunder/shelf/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Export writes the catalog to a file in the requested format.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	if err := r.ensureLibrary(cmd); err != nil {
		return err
	}

	books := r.library.List()
	path, err := formatter.WriteExport(books, format, cmd.String("output"))
	if err != nil {
		return fmt.Errorf("failed to export catalog: %w", err)
	}

	r.logger.Info("catalog exported", "format", format, "path", path, "books", len(books))
	return r.writePlainln("✓ Exported %d books to %s", len(books), path)
}

// Backup exports the catalog in several formats into one directory and prints progress as it goes.
func (r *Runner) Backup(ctx context.Context, cmd *cli.Command) error {
	var formats []formatter.Format
	for _, name := range cmd.StringSlice("format") {
		format, err := formatter.ParseFormat(name)
		if err != nil {
			return err
		}
		formats = append(formats, format)
	}

	if err := r.ensureLibrary(cmd); err != nil {
		return err
	}

	books := r.library.List()
	progress := make(chan tasks.ProgressUpdate, 16)
	done := make(chan struct{})
	var werr error

	go func() {
		defer close(done)
		for update := range progress {
			r.logger.Debug("backup progress", "phase", update.Phase, "step", update.Step, "total", update.Total)
			if update.Phase == tasks.ExportFormat && werr == nil {
				werr = r.writePlainln("%s", update.Message)
			}
		}
	}()

	result, err := tasks.BulkExport(ctx, progress, books, tasks.BulkExportOpts{
		Formats:    formats,
		OutputDir:  cmd.String("dir"),
		NumWorkers: int(cmd.Int("workers")),
		Snapshot:   cmd.Bool("snapshot"),
	})
	close(progress)
	<-done

	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}
	if werr != nil {
		return werr
	}

	r.logger.Info("catalog backed up", "dir", result.OutputDirectory, "files", result.Successful, "failed", result.Failed)
	if err := r.writePlainln("Backed up %d books to %s (%d files, %d failed)", result.Books, result.OutputDirectory, result.Successful, result.Failed); err != nil {
		return err
	}
	if result.Failed > 0 {
		return fmt.Errorf("%w: %d of %d exports failed", shared.ErrStorage, result.Failed, result.TotalFiles)
	}
	return nil
}
