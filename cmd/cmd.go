// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// menuCommand starts the interactive menu explicitly
func menuCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "menu",
		Aliases: []string{"interactive"},
		Usage:   "Run the interactive catalog menu (default)",
		Action:  r.Menu,
	}
}

// addCommand adds one book
func addCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Add a book to the catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "title",
				Aliases:  []string{"t"},
				Usage:    "Book title",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "author",
				Aliases:  []string{"a"},
				Usage:    "Book author",
				Required: true,
			},
			&cli.IntFlag{
				Name:     "year",
				Aliases:  []string{"y"},
				Usage:    "Publication year",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Add,
	}
}

// removeCommand removes one book by id
func removeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "remove",
		Aliases: []string{"rm"},
		Usage:   "Remove a book by ID",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "id",
			},
		},
		Action: r.Remove,
	}
}

// searchCommand searches titles, authors and years
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search books by title, author or year",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "query",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print JSON output",
				Value: true,
			},
		},
		Action: r.Search,
	}
}

// listCommand lists the catalog
func listCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List all books",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print JSON output",
				Value: true,
			},
		},
		Action: r.List,
	}
}

// statusCommand changes the availability of one book
func statusCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Change the status of a book (AVAILABLE or CHECKED_OUT)",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "id",
			},
			&cli.StringArg{
				Name: "status",
			},
		},
		Action: r.ChangeStatus,
	}
}

// exportCommand writes the catalog to a file in another format
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the catalog as CSV, Markdown or plain text",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Usage: "Export format: csv, markdown or text",
				Value: "csv",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (default: library.<ext>)",
			},
		},
		Action: r.Export,
	}
}

// backupCommand exports every format at once into a directory
func backupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "backup",
		Usage: "Export the catalog in several formats at once, with a manifest",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "Output directory (default: library_export_<epoch>)",
			},
			&cli.StringSliceFlag{
				Name:  "format",
				Usage: "Formats to export, repeatable (default: csv, markdown and text)",
			},
			&cli.BoolFlag{
				Name:  "snapshot",
				Usage: "Also write library.json in the store format",
				Value: true,
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Number of concurrent export workers",
				Value: 3,
			},
		},
		Action: r.Backup,
	}
}

// browseCommand returns the TUI command for interactive browsing.
func browseCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "browse",
		Aliases: []string{"tui", "ui"},
		Usage:   "Browse the catalog in an interactive terminal UI",
		Action:  r.Browse,
	}
}

// setupCommand handles configuration and database setup.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Write the default configuration file to --config",
				Action: r.SetupConfig,
			},
			{
				Name:   "database",
				Usage:  "Initialize the SQLite database and run migrations",
				Action: r.SetupDatabase,
			},
		},
	}
}
