package format

import (
	"strconv"

	"github.com/pseudomuto/sqlfmt/pkg/tokenizer"
)

// Param is a single named parameter binding.
type Param struct {
	Name  string
	Value string
}

type paramsKind int

const (
	paramsNone paramsKind = iota
	paramsIndexed
	paramsNamed
)

// QueryParams is a set of placeholder bindings: none (the zero value),
// indexed, or named. Substitution is literal text insertion for display
// purposes only; it offers no protection against SQL injection and the
// output must never be executed.
type QueryParams struct {
	kind    paramsKind
	indexed []string
	named   []Param
}

// IndexedParams binds positional placeholders (?, ?N, $N) to values.
func IndexedParams(values ...string) QueryParams {
	return QueryParams{kind: paramsIndexed, indexed: values}
}

// NamedParams binds named placeholders ($name, :name, @name, {name})
// to values. Lookup preserves the given order.
func NamedParams(params ...Param) QueryParams {
	return QueryParams{kind: paramsNamed, named: params}
}

// resolver substitutes placeholder tokens during emission. Anonymous
// "?" placeholders share a counter with explicit "?N" forms, so a bare
// "?" consumes the position after the last explicit index.
type resolver struct {
	params QueryParams
	index  int
}

// resolve returns the substitute text for a placeholder token. The
// second result is false when the placeholder must pass through
// unchanged: no bindings, an unknown name, or an out-of-range index.
func (r *resolver) resolve(tok tokenizer.Token) (string, bool) {
	switch r.params.kind {
	case paramsNamed:
		for _, p := range r.params.named {
			if p.Name == tok.Key {
				return p.Value, true
			}
		}
		return "", false
	case paramsIndexed:
		return r.resolveIndexed(tok)
	}
	return "", false
}

// resolveIndexed maps a positional placeholder to a 0-based slot in
// the bound values: "?" auto-increments, "?N" is 1-based, "$N" is
// 0-based.
func (r *resolver) resolveIndexed(tok tokenizer.Token) (string, bool) {
	var slot int
	switch {
	case tok.Text[0] == '?' && tok.Key == "":
		r.index++
		slot = r.index - 1
	case tok.Text[0] == '$':
		n, err := strconv.Atoi(tok.Key)
		if err != nil {
			return "", false
		}
		slot = n
		r.index = n + 1
	default:
		n, err := strconv.Atoi(tok.Key)
		if err != nil {
			return "", false
		}
		slot = n - 1
		r.index = n
	}
	if slot < 0 || slot >= len(r.params.indexed) {
		return "", false
	}
	return r.params.indexed[slot], true
}
