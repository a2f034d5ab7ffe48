package format

import "github.com/pseudomuto/sqlfmt/pkg/tokenizer"

// clausePlan is the layout decision for one top-level clause: the
// region from a ReservedTopLevel keyword to the next top-level
// boundary (another top-level keyword, a semicolon, an unmatched
// closer, or EOF).
type clausePlan struct {
	// keywordInline keeps the whole clause on the keyword's line.
	keywordInline bool

	// argsInline breaks after the keyword but keeps the body's commas
	// and AND/OR chains on one line.
	argsInline bool

	// end is the index of the boundary token (exclusive region end).
	end int
}

// planClause measures the clause opened by the top-level keyword at
// tokens[index] against MaxInlineTopLevel and MaxInlineArguments. The
// scan is width-bounded: it halts once the clause can no longer fit
// either budget.
func planClause(tokens []tokenizer.Token, index int, topLimit, argsLimit int) clausePlan {
	plan := clausePlan{end: len(tokens)}
	if topLimit == 0 && argsLimit == 0 {
		return plan
	}

	keywordLen := renderedLen(tokens[index])

	// The arguments budget applies to the body, which starts after the
	// keyword and one space.
	budget := topLimit
	if argsLimit > 0 && argsLimit+keywordLen+1 > budget {
		budget = argsLimit + keywordLen + 1
	}

	width := keywordLen
	forced := false
	overflow := false
	depth := 0

scan:
	for j := index + 1; j < len(tokens); j++ {
		tok := tokens[j]
		switch {
		case opensBlock(tok):
			depth++
		case closesBlock(tok):
			depth--
			if depth < 0 {
				plan.end = j
				break scan
			}
		case depth == 0 && (tok.Kind == tokenizer.ReservedTopLevel ||
			tok.Kind == tokenizer.ReservedTopLevelNoIndent ||
			tok.Kind == tokenizer.Semicolon):
			plan.end = j
			break scan
		}
		if forcesBreak(tok) {
			forced = true
		}
		width += renderedLen(tok)
		if width > budget {
			// The clause can no longer fit either budget; stop early so
			// trial work stays linear. The region end is irrelevant for
			// a clause that breaks normally.
			overflow = true
			break
		}
	}

	if forced || overflow {
		return clausePlan{end: len(tokens)}
	}
	bodyWidth := width - keywordLen - 1
	if bodyWidth < 0 {
		bodyWidth = 0
	}
	switch {
	case topLimit > 0 && width <= topLimit:
		plan.keywordInline = true
	case argsLimit > 0 && bodyWidth <= argsLimit:
		plan.argsInline = true
	}
	return plan
}

// clauseIsSingleBlock reports whether the body of the clause opened at
// tokens[index] is exactly one parenthesized block, optionally followed
// by plain trailing tokens (an alias, say). Such a clause keeps its
// opening paren on the keyword's line even when the block is columnar:
// FROM ( ... ) AS t.
func clauseIsSingleBlock(tokens []tokenizer.Token, index int) bool {
	seenOpen := false
	depth := 0
	for j := index + 1; j < len(tokens); j++ {
		tok := tokens[j]
		switch {
		case tok.Kind == tokenizer.Whitespace:
		case tok.IsComment() || tok.Kind == tokenizer.DollarQuotedString:
			return false
		case opensBlock(tok):
			if depth == 0 && seenOpen {
				return false
			}
			seenOpen = true
			depth++
		case closesBlock(tok):
			depth--
			if depth < 0 {
				return seenOpen
			}
		case depth > 0:
			// Block contents are the block's own concern.
		case tok.Kind == tokenizer.ReservedTopLevel ||
			tok.Kind == tokenizer.ReservedTopLevelNoIndent ||
			tok.Kind == tokenizer.Semicolon:
			return seenOpen
		case tok.Kind == tokenizer.Comma || tok.Kind == tokenizer.ReservedNewline:
			return false
		case !seenOpen:
			// Something other than a block starts the body.
			return false
		}
	}
	return seenOpen
}
