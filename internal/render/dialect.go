package render

import (
	"strconv"
	"strings"
)

// IdentQuote is the quote character for output column aliases.
const IdentQuote = "`"

// QuoteIdent quotes an output column alias.
func QuoteIdent(id string) string {
	return IdentQuote + id + IdentQuote
}

// StringLiteral renders a single-quoted string literal.
// The value is inserted as is; callers own escaping of untrusted input.
func StringLiteral(v string) string {
	return "'" + v + "'"
}

// StringList renders a parenthesised list of string literals.
func StringList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = StringLiteral(v)
	}
	return "(" + strings.Join(quoted, ",") + ")"
}

// NumberLiteral renders a number in its shortest decimal form.
func NumberLiteral(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// NumberList renders a parenthesised list of number literals.
func NumberList(values []float64) string {
	rendered := make([]string, len(values))
	for i, v := range values {
		rendered[i] = NumberLiteral(v)
	}
	return "(" + strings.Join(rendered, ",") + ")"
}
