package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/shelf/internal/formatter"
	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
	"github.com/urfave/cli/v3"
)

// Add adds a book from the --title, --author and --year flags.
func (r *Runner) Add(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureLibrary(cmd); err != nil {
		return err
	}

	book, err := r.library.Add(cmd.String("title"), cmd.String("author"), int(cmd.Int("year")))
	if err != nil {
		return fmt.Errorf("failed to add book: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(book, false)
	}
	return r.writePlainln("Book '%s' added with ID %d.", book.Title, book.ID)
}

// Remove removes the book named by the id argument.
func (r *Runner) Remove(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	if err := r.ensureLibrary(cmd); err != nil {
		return err
	}

	if _, err := r.library.Remove(id); err != nil {
		return fmt.Errorf("failed to remove book: %w", err)
	}

	return r.writePlainln("Book with ID %d removed.", id)
}

// Search prints the books matching the query argument.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: query", shared.ErrMissingArgument)
	}

	if err := r.ensureLibrary(cmd); err != nil {
		return err
	}

	results := r.library.Search(query)
	r.logger.Debugf("search %q matched %d books", query, len(results))

	if cmd.Bool("json") {
		return r.writeJSON(results, cmd.Bool("pretty"))
	}
	if len(results) == 0 {
		return r.writePlainln("No books found.")
	}
	return r.writeBooks(results)
}

// List prints every book.
func (r *Runner) List(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureLibrary(cmd); err != nil {
		return err
	}

	books := r.library.List()

	if cmd.Bool("json") {
		return r.writeJSON(books, cmd.Bool("pretty"))
	}
	if len(books) == 0 {
		return r.writePlainln("The library is empty.")
	}
	return r.writeBooks(books)
}

// ChangeStatus sets the status of the book named by the id argument.
func (r *Runner) ChangeStatus(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	status := cmd.StringArg("status")
	if status == "" {
		return fmt.Errorf("%w: status (%s or %s)", shared.ErrMissingArgument, models.StatusAvailable, models.StatusCheckedOut)
	}

	if err := r.ensureLibrary(cmd); err != nil {
		return err
	}

	parsed, err := models.ParseStatus(status)
	if err != nil {
		return fmt.Errorf("failed to change status: %w", err)
	}

	book, err := r.library.ChangeStatus(id, parsed.String())
	if err != nil {
		return fmt.Errorf("failed to change status: %w", err)
	}

	return r.writePlainln("Status of book with ID %d changed to '%s'.", id, book.Status)
}

func (r *Runner) writeBooks(books []models.Book) error {
	return formatter.WriteBooks(r.output, books)
}

// parseID converts a positional id argument.
func parseID(arg string) (int, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return 0, fmt.Errorf("%w: id", shared.ErrMissingArgument)
	}

	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%w: id must be an integer, got %q", shared.ErrInvalidArgument, arg)
	}
	return id, nil
}
