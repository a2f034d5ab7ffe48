// Package tokenizer turns a raw SQL string into a sequence of
// classified tokens.
//
// The tokenizer is the first stage of the formatting pipeline. It is a
// dialect union: the reserved-word and operator tables cover
// PostgreSQL, MySQL/MariaDB, SQLite, SQL Server, Oracle, ClickHouse,
// and DuckDB at once, with a handful of contextual rules resolving the
// collisions (a keyword after "." is an identifier, the AND closing a
// BETWEEN range does not break the line, ON UPDATE inside REFERENCES
// is a plain phrase).
//
// The tokenizer never fails. Malformed input — unterminated strings or
// comments, stray punctuation, invalid code points — still produces a
// token sequence, and concatenating the Text of every token reproduces
// the input byte for byte. Scanning is a single forward pass, and
// every recognizer is bounded by the length of the token it produces
// with one exception: a ":[" or "@[" with no closing "]" searches to the
// end of the input before falling back, so input made of many such
// openers takes quadratic time. Otherwise tokenizing n bytes is O(n).
//
// Example usage:
//
//	t := tokenizer.New("SELECT id FROM users", tokenizer.Options{})
//	for {
//		tok, ok := t.Next()
//		if !ok {
//			break
//		}
//		fmt.Printf("%s %q\n", tok.Kind, tok.Text)
//	}
//
// Or all at once:
//
//	tokens := tokenizer.Tokenize("SELECT 1;", tokenizer.Options{})
package tokenizer
