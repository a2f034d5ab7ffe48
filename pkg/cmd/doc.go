// Package cmd provides the CLI commands for the sqlfmt tool.
//
// Each command is implemented as a function returning a *cli.Command,
// following the urfave/cli/v3 pattern, and is registered by the main
// application in cmd/sqlfmt.
//
// Available commands:
//   - fmt: format SQL from files, directories, or stdin
//   - tokens: dump the classified token stream for a query
//
// The fmt command provides gofmt-like behavior for SQL files: by
// default formatted output goes to stdout, and the -w flag rewrites
// files in place. Formatting options come from an optional .sqlfmt.yaml
// config file, overridden by command-line flags.
//
// Example usage:
//
//	sqlfmt fmt schema.sql              # format one file to stdout
//	sqlfmt fmt -w db/                  # rewrite every .sql file under db/
//	echo 'select 1' | sqlfmt fmt       # format stdin
//	sqlfmt tokens 'SELECT * FROM t'    # inspect the token stream
package cmd
