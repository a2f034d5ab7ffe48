package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/pseudomuto/sqlfmt/pkg/cmd"
	"github.com/urfave/cli/v3"
)

// NB: These are set by GoReleaser during a build.
var (
	version string
	commit  string
	date    string
)

func main() {
	cli.VersionPrinter = func(c *cli.Command) {
		fmt.Fprintln(c.Writer, "Version:", version)
		fmt.Fprintln(c.Writer, "Commit:", commit)
		fmt.Fprintln(c.Writer, "Date:", date)
	}

	app := &cli.Command{
		Name:  "sqlfmt",
		Usage: "A SQL pretty-printer",
		Description: `sqlfmt formats SQL queries for readability: clauses on their own
lines, indented bodies, consistent keyword casing, and inline rendering
of short parenthesized blocks. It understands the union of the
PostgreSQL, MySQL/MariaDB, SQLite, SQL Server, Oracle, ClickHouse, and
DuckDB dialects and never rejects its input.`,
		Version: version,
		Commands: []*cli.Command{
			cmd.Fmt(),
			cmd.Tokens(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
