package format

import (
	"io"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlfmt/pkg/tokenizer"
)

// Formatter applies a fixed set of Options to SQL queries. It is
// stateless between calls and safe for concurrent use.
type Formatter struct {
	opts Options
}

// New creates a Formatter with the given options.
func New(opts Options) *Formatter {
	return &Formatter{opts: opts}
}

// NewDefault creates a Formatter with Defaults.
func NewDefault() *Formatter {
	return New(Defaults)
}

// Format writes the formatted query to w. Formatting itself cannot
// fail — malformed SQL is formatted best-effort — so the only possible
// errors are writer errors.
func (f *Formatter) Format(w io.Writer, query string) error {
	return f.FormatParams(w, query, QueryParams{})
}

// FormatParams is Format with placeholder substitution. Substitution
// is literal text insertion for display purposes; the result must not
// be executed.
func (f *Formatter) FormatParams(w io.Writer, query string, params QueryParams) error {
	if _, err := io.WriteString(w, f.StringParams(query, params)); err != nil {
		return errors.Wrap(err, "failed to write formatted query")
	}
	return nil
}

// String returns the formatted query.
func (f *Formatter) String(query string) string {
	return f.StringParams(query, QueryParams{})
}

// StringParams returns the formatted query with placeholder
// substitution applied.
func (f *Formatter) StringParams(query string, params QueryParams) string {
	tokens := tokenizer.Tokenize(query, tokenizer.Options{
		JoinsAsTopLevel: f.opts.JoinsAsTopLevel,
	})
	r := runner{
		tokens:     tokens,
		opts:       &f.opts,
		params:     resolver{params: params},
		ind:        newIndentation(&f.opts),
		block:      newInlineBlock(&f.opts),
		fmtEnabled: true,
		ignoreCase: make(map[string]struct{}, len(f.opts.IgnoreCaseConvert)),
	}
	for _, word := range f.opts.IgnoreCaseConvert {
		r.ignoreCase[word] = struct{}{}
	}
	return r.run()
}

// Format writes query to w formatted with opts (convenience function).
func Format(w io.Writer, opts Options, query string) error {
	return New(opts).Format(w, query)
}

// String returns query formatted with opts (convenience function).
func String(opts Options, query string) string {
	return New(opts).String(query)
}

// fmtDirective matches the formatting toggle comments: "-- fmt: off",
// "/* fmt: on */", case-insensitive and whitespace-tolerant. The rest
// of the comment body is ignored.
var fmtDirective = regexp.MustCompile(`(?i)^(?:--|/\*)\s*fmt\s*:\s*(off|on)`)

// runner holds the mutable state of one formatting pass. The output is
// built strictly left to right; decisions ahead of the cursor are made
// by bounded trial scans, never by rewriting emitted text.
type runner struct {
	tokens []tokenizer.Token
	opts   *Options
	buf    []byte
	params resolver
	ind    indentation
	block  inlineBlock

	index           int
	prevReservedKey string
	ignoreCase      map[string]struct{}

	// inlineUntil marks the exclusive end of a clause region whose
	// width already fit a budget; everything inside renders inline.
	inlineUntil int

	fmtEnabled bool
	skipNextWs bool
}

func (r *runner) run() string {
	for i, tok := range r.tokens {
		r.index = i

		if r.skipNextWs {
			r.skipNextWs = false
			if tok.Kind == tokenizer.Whitespace {
				continue
			}
		}
		if tok.IsComment() {
			if m := fmtDirective.FindStringSubmatch(tok.Text); m != nil {
				r.fmtEnabled = strings.EqualFold(m[1], "on")
				r.skipNextWs = true
				continue
			}
		}
		if !r.fmtEnabled {
			r.write(tok.Text)
			continue
		}

		switch tok.Kind {
		case tokenizer.Whitespace:
			// Whitespace layout is ours to decide.
		case tokenizer.LineComment:
			r.formatLineComment(tok)
		case tokenizer.BlockComment:
			r.formatBlockComment(tok)
		case tokenizer.DollarQuotedString:
			r.formatDollarQuoted(tok)
		case tokenizer.ReservedTopLevel:
			r.formatTopLevel(tok)
		case tokenizer.ReservedTopLevelNoIndent:
			r.formatTopLevelNoIndent(tok)
		case tokenizer.ReservedNewline:
			r.formatNewlineReserved(tok)
		case tokenizer.Reserved:
			r.formatReserved(tok)
		case tokenizer.OpenParen:
			r.formatOpening(tok, false)
		case tokenizer.OpenBracket:
			r.formatOpening(tok, true)
		case tokenizer.CloseParen, tokenizer.CloseBracket:
			r.formatClosing(tok.Text)
		case tokenizer.Placeholder:
			r.formatPlaceholder(tok)
		case tokenizer.Comma:
			r.formatComma()
		case tokenizer.Semicolon:
			r.formatQuerySeparator()
		case tokenizer.Operator:
			switch tok.Text {
			case ".", "::":
				r.formatWithoutSpaces(tok.Text)
			case ":":
				r.formatWithSpaceAfter(tok.Text)
			default:
				r.formatWithSpaces(tok.Text)
			}
		default:
			r.formatWithSpaces(tok.Text)
		}
	}
	return strings.TrimSpace(string(r.buf))
}

// inlineRegion reports whether the current token sits in a region that
// must stay on one line.
func (r *runner) inlineRegion() bool {
	return r.opts.Inline || r.index < r.inlineUntil
}

func (r *runner) formatTopLevel(tok tokenizer.Token) {
	r.prevReservedKey = tok.Key
	if r.inlineRegion() || r.block.active() {
		r.formatWithSpaces(r.keyword(tok))
		return
	}

	plan := planClause(r.tokens, r.index, r.opts.maxInlineTopLevel(), r.opts.maxInlineArguments())
	r.ind.decreaseTopLevel()
	r.addNewLine()
	r.write(r.keyword(tok))
	switch {
	case plan.keywordInline:
		r.write(" ")
		r.inlineUntil = plan.end
	case plan.argsInline:
		r.ind.increaseTopLevel()
		r.addNewLine()
		r.inlineUntil = plan.end
	case r.opts.maxInlineTopLevel() > 0 && clauseIsSingleBlock(r.tokens, r.index):
		// A clause whose body is a lone columnar block keeps the
		// opening paren on the keyword's line: FROM ( ... ).
		r.write(" ")
	default:
		r.ind.increaseTopLevel()
		r.addNewLine()
	}
}

func (r *runner) formatTopLevelNoIndent(tok tokenizer.Token) {
	r.prevReservedKey = tok.Key
	if r.inlineRegion() || r.block.active() {
		r.formatWithSpaces(r.keyword(tok))
		return
	}
	r.ind.decreaseTopLevel()
	r.addNewLine()
	r.write(r.keyword(tok))
	r.addNewLine()
}

func (r *runner) formatNewlineReserved(tok tokenizer.Token) {
	r.prevReservedKey = tok.Key
	if r.inlineRegion() || r.block.active() {
		r.formatWithSpaces(r.keyword(tok))
		return
	}
	r.addNewLine()
	r.write(r.keyword(tok))
	r.write(" ")
}

func (r *runner) formatReserved(tok tokenizer.Token) {
	switch tok.Key {
	case "case":
		r.formatCaseOpen(tok)
	case "end":
		r.formatCaseClose(tok)
	default:
		r.prevReservedKey = tok.Key
		r.formatWithSpaces(r.keyword(tok))
	}
}

// formatCaseOpen treats CASE as a block opener: the WHEN/ELSE chain is
// a block that inlines only when the whole chain fits its budget.
func (r *runner) formatCaseOpen(tok tokenizer.Token) {
	r.prevReservedKey = tok.Key
	if !r.preserveSpaceBefore() {
		r.trimSpacesEnd()
	}
	r.write(r.keyword(tok))
	if r.opts.Inline {
		r.write(" ")
		return
	}
	r.block.beginIfPossible(r.tokens, r.index, r.index < r.inlineUntil)
	if r.block.active() {
		r.write(" ")
	} else {
		r.ind.increaseBlock()
		r.addNewLine()
	}
}

func (r *runner) formatCaseClose(tok tokenizer.Token) {
	if r.opts.Inline {
		r.formatWithSpaces(r.keyword(tok))
		return
	}
	if r.block.active() {
		r.block.end()
		r.formatWithSpaces(r.keyword(tok))
		return
	}
	r.ind.decreaseBlock()
	r.addNewLine()
	r.formatWithSpaces(r.keyword(tok))
}

// formatOpening handles "(" and "[". Parens keep a preceding space
// only in the cases listed on preserveSpaceBefore (so function calls
// stay tight); brackets attach to the preceding token unless they
// start a line.
func (r *runner) formatOpening(tok tokenizer.Token, bracket bool) {
	if bracket {
		r.softTrimSpacesEnd()
	} else if !r.preserveSpaceBefore() {
		r.trimSpacesEnd()
	}
	r.write(tok.Text)
	if r.opts.Inline {
		r.write(" ")
		return
	}
	r.block.beginIfPossible(r.tokens, r.index, r.index < r.inlineUntil)
	if !r.block.active() {
		r.ind.increaseBlock()
		r.addNewLine()
	}
}

func (r *runner) formatClosing(text string) {
	if r.opts.Inline {
		r.write(text)
		r.write(" ")
		return
	}
	if r.block.active() {
		r.block.end()
		r.formatWithSpaceAfter(text)
		return
	}
	r.ind.decreaseBlock()
	r.addNewLine()
	r.formatWithSpaces(text)
}

func (r *runner) formatPlaceholder(tok tokenizer.Token) {
	value, ok := r.params.resolve(tok)
	if !ok {
		value = tok.Text
	}
	r.formatWithSpaces(value)
}

// formatComma starts a new line after the comma unless the list is
// inside an inline region or follows LIMIT.
func (r *runner) formatComma() {
	r.trimSpacesEnd()
	r.write(", ")
	if r.block.active() || r.inlineRegion() {
		return
	}
	if r.prevReservedKey == "limit" {
		return
	}
	r.addNewLine()
}

func (r *runner) formatQuerySeparator() {
	r.ind.reset()
	r.trimSpacesEnd()
	r.write(";")
	if r.opts.Inline {
		r.write(" ")
		return
	}
	for i := 0; i <= r.opts.LinesBetweenQueries; i++ {
		r.write("\n")
	}
}

func (r *runner) formatDollarQuoted(tok tokenizer.Token) {
	r.addNewLine()
	r.write(tok.Text)
	r.addNewLine()
}

func (r *runner) formatLineComment(tok tokenizer.Token) {
	// A comment that already sat on its own line keeps its own line
	// when the line after it is indented and does not start with an
	// operator; one trailing a comma is re-attached with two spaces;
	// anything else attaches to the preceding token.
	next1 := r.rawToken(r.index + 1)
	next2 := r.rawToken(r.index + 2)
	wsThenSpecial := next1 != nil && next1.Kind == tokenizer.Whitespace &&
		wsBeyondNewline(next1.Text) &&
		next2 != nil && next2.Kind != tokenizer.Operator

	prev1 := r.rawToken(r.index - 1)
	if prev1 != nil && strings.Contains(prev1.Text, "\n") && wsThenSpecial {
		r.addNewLine()
	} else if prev2 := r.rawToken(r.index - 2); prev2 != nil && prev2.Text == "," {
		r.trimAllSpacesEnd()
		r.write("  ")
	}
	r.write(tok.Text)
	r.addNewLine()
}

// wsBeyondNewline reports whether a whitespace run continues past its
// first line break, i.e. the next token sits indented on a fresh line.
func wsBeyondNewline(s string) bool {
	idx := strings.IndexByte(s, '\n')
	return idx >= 0 && idx+1 < len(s)
}

func (r *runner) formatBlockComment(tok tokenizer.Token) {
	r.addNewLine()
	r.write(r.indentComment(tok.Text))
	r.addNewLine()
}

// indentComment re-indents the continuation lines of a multi-line
// block comment that start with a space or tab to the current
// indentation plus one space; other lines are kept as they are.
func (r *runner) indentComment(text string) string {
	var b strings.Builder
	for i, line := range strings.Split(text, "\n") {
		switch {
		case i == 0:
			b.WriteString(line)
		case strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t"):
			b.WriteString("\n")
			b.WriteString(r.ind.indent())
			b.WriteString(" ")
			b.WriteString(strings.TrimLeft(line, " \t"))
		default:
			b.WriteString("\n")
			b.WriteString(line)
		}
	}
	return b.String()
}

func (r *runner) formatWithSpaces(text string) {
	r.write(text)
	r.write(" ")
}

func (r *runner) formatWithSpaceAfter(text string) {
	r.trimSpacesEnd()
	r.write(text)
	r.write(" ")
}

func (r *runner) formatWithoutSpaces(text string) {
	r.trimSpacesEnd()
	r.write(text)
}

// addNewLine breaks the line and writes the current indentation. In
// inline mode it degrades to a single space.
func (r *runner) addNewLine() {
	r.trimSpacesEnd()
	if r.opts.Inline {
		if len(r.buf) > 0 {
			r.write(" ")
		}
		return
	}
	if len(r.buf) == 0 || r.buf[len(r.buf)-1] != '\n' {
		r.write("\n")
	}
	r.write(r.ind.indent())
}

// keyword normalizes a reserved token: interior whitespace collapses
// to single spaces and casing follows the Uppercase option unless the
// key is exempted.
func (r *runner) keyword(tok tokenizer.Token) string {
	text := equalizeWhitespace(tok.Text)
	if r.opts.Uppercase == nil {
		return text
	}
	if _, ok := r.ignoreCase[tok.Key]; ok {
		return text
	}
	if *r.opts.Uppercase {
		return strings.ToUpper(text)
	}
	return strings.ToLower(text)
}

// preserveSpaceBefore reports whether an opening paren keeps the space
// before it: after whitespace in the source, another opening paren, a
// line comment, or a reserved word.
func (r *runner) preserveSpaceBefore() bool {
	prev := r.rawToken(r.index - 1)
	if prev == nil {
		return false
	}
	switch prev.Kind {
	case tokenizer.Whitespace, tokenizer.OpenParen, tokenizer.LineComment:
		return true
	}
	return prev.IsReserved()
}

func (r *runner) rawToken(index int) *tokenizer.Token {
	if index < 0 || index >= len(r.tokens) {
		return nil
	}
	return &r.tokens[index]
}

func (r *runner) write(s string) {
	r.buf = append(r.buf, s...)
}

// trimSpacesEnd removes trailing spaces and tabs but never newlines.
func (r *runner) trimSpacesEnd() {
	i := len(r.buf)
	for i > 0 && (r.buf[i-1] == ' ' || r.buf[i-1] == '\t') {
		i--
	}
	r.buf = r.buf[:i]
}

// softTrimSpacesEnd trims trailing spaces unless that would leave the
// buffer at a line start, so brackets attach to the preceding token
// without eating indentation.
func (r *runner) softTrimSpacesEnd() {
	i := len(r.buf)
	for i > 0 && (r.buf[i-1] == ' ' || r.buf[i-1] == '\t') {
		i--
	}
	if i > 0 && r.buf[i-1] == '\n' {
		return
	}
	r.buf = r.buf[:i]
}

// trimAllSpacesEnd removes all trailing whitespace including newlines.
func (r *runner) trimAllSpacesEnd() {
	i := len(r.buf)
	for i > 0 {
		switch r.buf[i-1] {
		case ' ', '\t', '\n', '\r':
			i--
		default:
			r.buf = r.buf[:i]
			return
		}
	}
	r.buf = r.buf[:i]
}
