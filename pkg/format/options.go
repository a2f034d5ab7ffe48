package format

import "strings"

// Indent selects the text emitted per indentation level.
type Indent struct {
	tabs   bool
	spaces int
}

// Spaces returns an Indent of n spaces per level.
func Spaces(n int) Indent {
	if n < 0 {
		n = 0
	}
	return Indent{spaces: n}
}

// Tabs returns an Indent of one tab per level.
func Tabs() Indent {
	return Indent{tabs: true}
}

// unit returns the string emitted for a single indentation level. The
// zero value renders as two spaces.
func (i Indent) unit() string {
	if i.tabs {
		return "\t"
	}
	if i.spaces == 0 {
		return "  "
	}
	return strings.Repeat(" ", i.spaces)
}

// Options controls formatting behavior. All options are orthogonal.
// The zero values of Indent and MaxInlineBlock select their defaults;
// every other field is used as given, so a zero LinesBetweenQueries
// means no blank line. Start from Defaults for the standard settings.
type Options struct {
	// Indent is the token emitted per indentation level.
	Indent Indent

	// Uppercase converts reserved words to upper case when true and
	// lower case when false. Nil preserves the source casing.
	Uppercase *bool

	// IgnoreCaseConvert lists normalized keywords (lowercase, single
	// spaces) exempt from case conversion.
	IgnoreCaseConvert []string

	// LinesBetweenQueries is the number of blank lines emitted after
	// each top-level semicolon.
	LinesBetweenQueries int

	// Inline renders everything on a single line regardless of widths.
	Inline bool

	// MaxInlineBlock is the maximum rendered width for a parenthesized
	// block to stay on one line. Zero means the default of 50.
	MaxInlineBlock int

	// MaxInlineArguments is the maximum rendered width for a comma or
	// AND/OR list to stay on one line. Nil keeps every argument on its
	// own line.
	MaxInlineArguments *int

	// MaxInlineTopLevel is the maximum rendered width for a whole
	// top-level clause to stay on the keyword's line. Nil always breaks
	// after the keyword.
	MaxInlineTopLevel *int

	// JoinsAsTopLevel treats JOIN variants as top-level keywords
	// instead of newline keywords.
	JoinsAsTopLevel bool
}

// Defaults are the standard formatting options: two-space indentation,
// preserved keyword casing, one blank line between queries, and inline
// blocks up to 50 characters.
var Defaults = Options{
	Indent:              Spaces(2),
	LinesBetweenQueries: 1,
	MaxInlineBlock:      50,
}

// Ptr returns a pointer to v, for the optional Options fields.
//
//	opts := format.Defaults
//	opts.Uppercase = format.Ptr(true)
//	opts.MaxInlineArguments = format.Ptr(60)
func Ptr[T any](v T) *T { return &v }

func (o *Options) maxInlineBlock() int {
	if o.MaxInlineBlock == 0 {
		return 50
	}
	return o.MaxInlineBlock
}

func (o *Options) maxInlineArguments() int {
	if o.MaxInlineArguments == nil {
		return 0
	}
	return *o.MaxInlineArguments
}

func (o *Options) maxInlineTopLevel() int {
	if o.MaxInlineTopLevel == nil {
		return 0
	}
	return *o.MaxInlineTopLevel
}
