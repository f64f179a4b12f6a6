package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/shelf/internal/catalog"
	"github.com/desertthunder/shelf/internal/formatter"
	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
	"github.com/desertthunder/shelf/internal/ui"
	"github.com/urfave/cli/v3"
)

var (
	// errEndOfInput stops the menu when the input closes mid-prompt.
	errEndOfInput = errors.New("end of input")
	// errNotANumber marks input that should have been an integer.
	errNotANumber = errors.New("not a number")
	// errLineTooLong marks an answer longer than maxLineLength.
	errLineTooLong = errors.New("line too long")
)

const maxLineLength = 64 * 1024

// Menu runs the interactive catalog menu.
func (r *Runner) Menu(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureLibrary(cmd); err != nil {
		return err
	}

	return NewMenu(r.library, r.input, r.output, r.logger).Run(ctx)
}

// Menu is the line-oriented front end over a [catalog.Library]. It holds no catalog state of its own.
type Menu struct {
	library *catalog.Library
	reader  *bufio.Reader
	out     io.Writer
	logger  *log.Logger
	werr    error
}

// NewMenu creates a menu reading answers from in and writing to out.
func NewMenu(library *catalog.Library, in io.Reader, out io.Writer, logger *log.Logger) *Menu {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Menu{library: library, reader: bufio.NewReader(in), out: out, logger: logger}
}

// Run shows the menu until the user exits, the input ends or the catalog cannot be saved.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		m.printMenu()
		choice, err := m.prompt("Select an action: ")
		if err == nil {
			switch choice {
			case "1":
				err = m.add()
			case "2":
				err = m.remove()
			case "3":
				err = m.search()
			case "4":
				err = m.list()
			case "5":
				err = m.changeStatus()
			case "6":
				m.println("Exiting.")
				return m.werr
			default:
				m.errorf("invalid choice, please select a valid action.")
			}
		}

		if err := m.recover(err); err != nil {
			if errors.Is(err, errEndOfInput) {
				break
			}
			return err
		}
		if m.werr != nil {
			return m.werr
		}
	}

	m.println("\nExiting.")
	return m.werr
}

// recover reports conditions the user can correct and returns everything else.
func (m *Menu) recover(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errNotANumber), errors.Is(err, errLineTooLong):
		m.errorf("invalid input, please try again.")
	case errors.Is(err, shared.ErrBookNotFound):
		m.errorf("%s.", strings.TrimPrefix(err.Error(), shared.ErrBookNotFound.Error()+": "))
	case errors.Is(err, shared.ErrInvalidStatus):
		m.errorf("invalid status, use %s.", statusChoices(" or "))
	case errors.Is(err, shared.ErrInvalidInput):
		m.errorf("%v.", err)
	default:
		return err
	}

	m.logger.Debug("recovered menu error", "error", err)
	return nil
}

func (m *Menu) printMenu() {
	m.println("")
	m.println(ui.Title("--- Library Management ---"))
	m.println("1. Add book")
	m.println("2. Remove book")
	m.println("3. Search books")
	m.println("4. List all books")
	m.println("5. Change book status")
	m.println("6. Exit")
}

func (m *Menu) add() error {
	title, err := m.prompt("Enter book title: ")
	if err != nil {
		return err
	}
	author, err := m.prompt("Enter book author: ")
	if err != nil {
		return err
	}
	year, err := m.promptInt("Enter publication year: ")
	if err != nil {
		return err
	}

	book, err := m.library.Add(title, author, year)
	if err != nil {
		return err
	}

	m.println(ui.Success(fmt.Sprintf("Book '%s' added with ID %d.", book.Title, book.ID)))
	return nil
}

func (m *Menu) remove() error {
	id, err := m.promptInt("Enter book ID to remove: ")
	if err != nil {
		return err
	}

	if _, err := m.library.Remove(id); err != nil {
		return notFound(err, id)
	}

	m.println(ui.Success(fmt.Sprintf("Book with ID %d removed.", id)))
	return nil
}

func (m *Menu) search() error {
	query, err := m.promptRaw("Enter title, author or year to search: ")
	if err != nil {
		return err
	}

	results := m.library.Search(query)
	if len(results) == 0 {
		m.println("No books found.")
		return nil
	}

	m.println("Search results:")
	m.writeBooks(results)
	return nil
}

func (m *Menu) list() error {
	books := m.library.List()
	if len(books) == 0 {
		m.println("The library is empty.")
		return nil
	}

	m.writeBooks(books)
	return nil
}

func (m *Menu) changeStatus() error {
	id, err := m.promptInt("Enter book ID: ")
	if err != nil {
		return err
	}
	status, err := m.promptRaw(fmt.Sprintf("Enter new status (%s): ", statusChoices("/")))
	if err != nil {
		return err
	}

	book, err := m.library.ChangeStatus(id, status)
	if err != nil {
		return notFound(err, id)
	}

	m.println(ui.Success(fmt.Sprintf("Status of book with ID %d changed to '%s'.", id, book.Status)))
	return nil
}

// statusChoices joins every valid status with sep.
func statusChoices(sep string) string {
	names := make([]string, len(models.Statuses))
	for i, s := range models.Statuses {
		names[i] = s.String()
	}
	return strings.Join(names, sep)
}

// notFound rewrites a not found error into the message shown to the user.
func notFound(err error, id int) error {
	if errors.Is(err, shared.ErrBookNotFound) {
		return fmt.Errorf("%w: book with ID %d not found", shared.ErrBookNotFound, id)
	}
	return err
}

// promptRaw returns the next line without its line ending.
//
// A line longer than maxLineLength is consumed whole and reported as errLineTooLong.
func (m *Menu) promptRaw(label string) (string, error) {
	m.printf("%s", label)

	line, err := m.reader.ReadString('\n')
	if errors.Is(err, io.EOF) {
		if line == "" {
			return "", errEndOfInput
		}
	} else if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	line = strings.TrimRight(line, "\r\n")
	if len(line) > maxLineLength {
		return "", fmt.Errorf("%w: %d bytes", errLineTooLong, len(line))
	}
	return line, nil
}

// prompt returns the next line with surrounding whitespace removed.
func (m *Menu) prompt(label string) (string, error) {
	line, err := m.promptRaw(label)
	return strings.TrimSpace(line), err
}

func (m *Menu) promptInt(label string) (int, error) {
	line, err := m.prompt(label)
	if err != nil {
		return 0, err
	}

	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errNotANumber, line)
	}
	return n, nil
}

func (m *Menu) writeBooks(books []models.Book) {
	if m.werr != nil {
		return
	}
	m.werr = formatter.WriteBooks(m.out, books)
}

func (m *Menu) errorf(format string, args ...any) {
	m.println(ui.Error("Error: " + fmt.Sprintf(format, args...)))
}

func (m *Menu) println(s string) {
	m.printf("%s\n", s)
}

// printf writes to the output, remembering the first failure.
func (m *Menu) printf(format string, args ...any) {
	if m.werr != nil {
		return
	}
	if _, err := fmt.Fprintf(m.out, format, args...); err != nil {
		m.werr = fmt.Errorf("failed to write output: %w", err)
	}
}
