// Package format pretty-prints SQL queries.
//
// This package is the second stage of the formatting pipeline: it
// consumes the token stream produced by pkg/tokenizer and emits a
// styled string under a configuration record. Layout decisions —
// inline versus columnar rendering of parenthesized blocks, clause
// bodies, and argument lists — are made with width-bounded trial scans
// over the upcoming tokens, so formatting stays linear in the input
// size.
//
// Key behaviors:
//   - Top-level keywords (SELECT, FROM, WHERE, ...) start a clause on
//     its own line with an indented body
//   - Parenthesized blocks stay on one line when they fit
//     MaxInlineBlock and contain no comments, statement separators, or
//     dollar-quoted strings; a block holding AND/OR must also fit
//     MaxInlineArguments and one holding two top-level keywords must
//     fit MaxInlineTopLevel, so with those unset such blocks break
//   - Reserved words are optionally upper- or lower-cased
//   - Placeholders are substituted from indexed or named bindings
//   - "-- fmt: off" / "-- fmt: on" comments toggle verbatim output
//
// The formatter has no error channel: any input produces a result, and
// the engine never panics. It is used in logging paths where a crash
// is unacceptable. Parameter substitution is literal text insertion
// for display purposes only — the output must never be executed.
//
// Example usage:
//
//	opts := format.Defaults
//	opts.Uppercase = format.Ptr(true)
//
//	var buf bytes.Buffer
//	err := format.Format(&buf, opts, "select id, name from users;")
//
// Output:
//
//	SELECT
//	  id,
//	  name
//	FROM
//	  users;
package format
