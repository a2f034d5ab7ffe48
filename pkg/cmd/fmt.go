package cmd

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlfmt/pkg/config"
	"github.com/pseudomuto/sqlfmt/pkg/consts"
	"github.com/pseudomuto/sqlfmt/pkg/format"
	"github.com/urfave/cli/v3"
)

// Fmt creates the CLI command for formatting SQL.
//
// With no arguments the command formats stdin to stdout. With file or
// directory arguments it formats each file, writing to stdout or (with
// -w) back to the source file. Directories are walked recursively for
// .sql files.
func Fmt() *cli.Command {
	return &cli.Command{
		Name:      "fmt",
		Usage:     "Format SQL files or stdin",
		ArgsUsage: "[path ...]",
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:    "write",
				Aliases: []string{"w"},
				Usage:   "Write result to source files instead of stdout",
			},
		}, optionFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts, err := loadOptions(cmd)
			if err != nil {
				return err
			}
			formatter := format.New(opts)

			if cmd.Args().Len() == 0 {
				if cmd.Bool("write") {
					return errors.New("-w requires file arguments")
				}
				return formatReader(formatter, cmd.Root().Reader, cmd.Root().Writer)
			}

			for _, path := range cmd.Args().Slice() {
				if err := formatPath(formatter, path, cmd.Bool("write"), cmd.Root().Writer); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// optionFlags are the formatting flags of the fmt command. Flag values
// override the config file.
func optionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to the config file",
			Sources: cli.EnvVars("SQLFMT_CONFIG"),
		},
		&cli.StringFlag{
			Name:  "indent",
			Usage: "Number of spaces per indent level, or \"tabs\"",
		},
		&cli.StringFlag{
			Name:  "keyword-case",
			Usage: "Convert keywords: \"upper\", \"lower\", or \"preserve\"",
		},
		&cli.BoolFlag{
			Name:  "inline",
			Usage: "Render each statement on a single line",
		},
		&cli.IntFlag{
			Name:  "lines-between-queries",
			Usage: "Blank lines between statements",
			Value: -1,
		},
	}
}

// loadOptions resolves formatting options: defaults, then the config
// file (explicit --config or a .sqlfmt.yaml in the working directory),
// then command-line flags.
func loadOptions(cmd *cli.Command) (format.Options, error) {
	opts := format.Defaults

	path := cmd.String("config")
	if path == "" {
		if _, err := os.Stat(config.File); err == nil {
			path = config.File
		}
	}
	if path != "" {
		cfg, err := config.LoadFile(path)
		if err != nil {
			return opts, err
		}
		if opts, err = cfg.Options(); err != nil {
			return opts, err
		}
	}

	switch indent := cmd.String("indent"); indent {
	case "":
	case "tabs", "tab":
		opts.Indent = format.Tabs()
	default:
		n, err := strconv.Atoi(indent)
		if err != nil || n < 0 {
			return opts, errors.Errorf("invalid --indent value: %q", indent)
		}
		opts.Indent = format.Spaces(n)
	}

	switch kwCase := cmd.String("keyword-case"); kwCase {
	case "":
	case "upper":
		opts.Uppercase = format.Ptr(true)
	case "lower":
		opts.Uppercase = format.Ptr(false)
	case "preserve":
		opts.Uppercase = nil
	default:
		return opts, errors.Errorf("invalid --keyword-case value: %q", kwCase)
	}

	if cmd.Bool("inline") {
		opts.Inline = true
	}
	if lines := cmd.Int("lines-between-queries"); lines >= 0 {
		opts.LinesBetweenQueries = int(lines)
	}
	return opts, nil
}

func formatReader(formatter *format.Formatter, r io.Reader, w io.Writer) error {
	content, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "failed to read input")
	}
	if _, err := fmt.Fprintln(w, formatter.String(string(content))); err != nil {
		return errors.Wrap(err, "failed to write formatted output")
	}
	return nil
}

// formatPath dispatches to file or directory formatting based on the
// path type.
func formatPath(formatter *format.Formatter, path string, writeBack bool, w io.Writer) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "failed to access path: %s", path)
	}
	if info.IsDir() {
		return formatDirectory(formatter, path, writeBack, w)
	}
	return formatFile(formatter, path, writeBack, w)
}

// formatDirectory walks dir and formats every .sql file, in
// lexicographical order for consistent behavior across platforms.
func formatDirectory(formatter *format.Formatter, dir string, writeBack bool, w io.Writer) error {
	var sqlFiles []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".sql") {
			sqlFiles = append(sqlFiles, path)
		}
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "failed to walk directory: %s", dir)
	}
	if len(sqlFiles) == 0 {
		return errors.Errorf("no SQL files found in directory: %s", dir)
	}

	for _, sqlFile := range sqlFiles {
		if err := formatFile(formatter, sqlFile, writeBack, w); err != nil {
			return err
		}
	}
	return nil
}

// formatFile formats a single file to w or, with writeBack, rewrites
// the file in place with a trailing newline.
func formatFile(formatter *format.Formatter, path string, writeBack bool, w io.Writer) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read file: %s", path)
	}

	formatted := formatter.String(string(content)) + "\n"

	if writeBack {
		if err := os.WriteFile(path, []byte(formatted), consts.ModeFile); err != nil {
			return errors.Wrapf(err, "failed to write formatted content to file: %s", path)
		}
		return nil
	}
	if _, err := io.WriteString(w, formatted); err != nil {
		return errors.Wrap(err, "failed to write formatted content to output")
	}
	return nil
}
