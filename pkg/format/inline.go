package format

import (
	"strings"

	"github.com/pseudomuto/sqlfmt/pkg/tokenizer"
)

// blockInfo is the result of an inline trial over one parenthesized
// (or bracketed, or CASE) block.
type blockInfo struct {
	length             int
	forbidden          bool
	hasNewlineReserved bool
	topLevelSpan       int
}

// inlineBlock decides whether blocks render on a single line. A block
// is inline when a width-bounded forward trial fits the configured
// budgets and the block contains no forced-break tokens. Once a block
// is inline, everything nested inside it is inline too.
type inlineBlock struct {
	level     int
	maxBlock  int
	argsLimit int // 0 when MaxInlineArguments is unset
	topLimit  int // 0 when MaxInlineTopLevel is unset
}

func newInlineBlock(opts *Options) inlineBlock {
	return inlineBlock{
		maxBlock:  opts.maxInlineBlock(),
		argsLimit: opts.maxInlineArguments(),
		topLimit:  opts.maxInlineTopLevel(),
	}
}

// beginIfPossible runs the inline trial for the block opened at
// tokens[index]. With force set the block is inline unconditionally
// (used inside clause regions that already measured it).
func (b *inlineBlock) beginIfPossible(tokens []tokenizer.Token, index int, force bool) {
	switch {
	case b.level > 0:
		b.level++
	case force || b.isInline(b.buildInfo(tokens, index)):
		b.level = 1
	}
}

func (b *inlineBlock) end() {
	if b.level > 0 {
		b.level--
	}
}

func (b *inlineBlock) active() bool {
	return b.level > 0
}

func (b *inlineBlock) isInline(info blockInfo) bool {
	return !info.forbidden &&
		info.length <= b.maxBlock &&
		info.topLevelSpan <= b.topLimit &&
		(!info.hasNewlineReserved || info.length <= b.argsLimit)
}

// buildInfo scans forward from the opening token to its matching
// close, accumulating the rendered inline width. The scan halts as
// soon as the width exceeds every budget, which keeps total trial work
// linear on pathological inputs.
func (b *inlineBlock) buildInfo(tokens []tokenizer.Token, index int) blockInfo {
	var info blockInfo
	budget := b.maxBlock
	if b.argsLimit > budget {
		budget = b.argsLimit
	}
	if b.topLimit > budget {
		budget = b.topLimit
	}

	level := 0
	spanStart := -1
	spanBase := 0
	for _, tok := range tokens[index:] {
		info.length += renderedLen(tok)
		if info.length > budget {
			return info
		}

		switch {
		case tok.Kind == tokenizer.ReservedTopLevel || tok.Kind == tokenizer.ReservedTopLevelNoIndent:
			if spanStart == level {
				if span := info.length - spanBase; span > info.topLevelSpan {
					info.topLevelSpan = span
				}
				spanStart = -1
			} else if spanStart < 0 {
				spanStart = level
				spanBase = info.length
			}
		case tok.Kind == tokenizer.ReservedNewline:
			info.hasNewlineReserved = true
		case opensBlock(tok):
			level++
		case closesBlock(tok):
			level--
			if level == 0 {
				return info
			}
		}

		if forcesBreak(tok) {
			info.forbidden = true
		}
	}
	// Unbalanced input: the trial covers everything to EOF.
	return info
}

func opensBlock(tok tokenizer.Token) bool {
	return tok.Kind == tokenizer.OpenParen || tok.Kind == tokenizer.OpenBracket ||
		(tok.Kind == tokenizer.Reserved && tok.Key == "case")
}

func closesBlock(tok tokenizer.Token) bool {
	return tok.Kind == tokenizer.CloseParen || tok.Kind == tokenizer.CloseBracket ||
		(tok.Kind == tokenizer.Reserved && tok.Key == "end")
}

// forcesBreak reports tokens that can never appear inside an inline
// region: comments, statement separators, and dollar-quoted strings.
func forcesBreak(tok tokenizer.Token) bool {
	return tok.IsComment() ||
		tok.Kind == tokenizer.Semicolon ||
		tok.Kind == tokenizer.DollarQuotedString
}

// renderedLen is the width a token contributes to an inline rendering:
// whitespace collapses to a single space and multi-word keywords to
// single-spaced form.
func renderedLen(tok tokenizer.Token) int {
	switch {
	case tok.Kind == tokenizer.Whitespace:
		return 1
	case tok.IsReserved():
		return len(equalizeWhitespace(tok.Text))
	}
	return len(tok.Text)
}

// equalizeWhitespace replaces any interior whitespace run with a
// single space.
func equalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
