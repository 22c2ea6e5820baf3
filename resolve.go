package metricsql

import (
	"regexp"
	"strings"

	"github.com/zoobzio/metricsql/internal/render"
	"github.com/zoobzio/metricsql/internal/types"
)

// placeholderPattern matches ${...} references inside SQL templates.
// Go regexps hold no match state, so one compiled pattern serves every call.
var placeholderPattern = regexp.MustCompile(`\$\{([a-zA-Z0-9_.]+)\}`)

// tableToken always resolves to the alias of the table being rendered.
const tableToken = "TABLE"

// resolver expands placeholders against one explore.
// It tracks the dimensions currently being rendered to detect cycles.
type resolver struct {
	explore *types.Explore
	stack   []types.FieldRef
}

func newResolver(explore *types.Explore) *resolver {
	return &resolver{explore: explore}
}

// resolve replaces every placeholder in template, using table as the context
// for TABLE and bare names. Literal text is kept as is.
func (r *resolver) resolve(template, table string) (string, error) {
	matches := placeholderPattern.FindAllStringSubmatchIndex(template, -1)
	if len(matches) == 0 {
		return template, nil
	}

	var sql strings.Builder
	last := 0
	for _, m := range matches {
		sql.WriteString(template[last:m[0]])
		resolved, err := r.resolveReference(template[m[2]:m[3]], table)
		if err != nil {
			return "", err
		}
		sql.WriteString(resolved)
		last = m[1]
	}
	sql.WriteString(template[last:])

	return sql.String(), nil
}

func (r *resolver) resolveReference(ref, table string) (string, error) {
	if ref == tableToken {
		return table, nil
	}

	target := types.FieldRef{Table: table}
	parts := strings.Split(ref, ".")
	switch len(parts) {
	case 1:
		target.Name = parts[0]
	case 2:
		target.Table, target.Name = parts[0], parts[1]
	default:
		return "", render.ErrMalformedReference.New(ref, table)
	}

	t, ok := r.explore.Tables[target.Table]
	if !ok {
		return "", render.ErrUnresolvedReference.New("table", target.Table, ref, table)
	}
	dim, ok := t.Dimensions[target.Name]
	if !ok {
		return "", render.ErrUnresolvedReference.New("dimension", target.Name, ref, table)
	}

	if r.visiting(target) {
		return "", render.ErrCyclicReference.New(ref, table, r.cyclePath(target))
	}

	sql, err := r.dimension(target, dim)
	if err != nil {
		return "", err
	}
	return "(" + sql + ")", nil
}

// dimension renders a dimension with its own table as context.
// ref is the reference the dimension was reached through.
func (r *resolver) dimension(ref types.FieldRef, d types.Dimension) (string, error) {
	r.stack = append(r.stack, ref)
	defer func() { r.stack = r.stack[:len(r.stack)-1] }()
	return r.resolve(d.SQL, d.Table)
}

func (r *resolver) visiting(ref types.FieldRef) bool {
	for _, f := range r.stack {
		if f == ref {
			return true
		}
	}
	return false
}

// cyclePath renders the chain of dimensions from the first visit of ref back to ref.
func (r *resolver) cyclePath(ref types.FieldRef) string {
	start := 0
	for i, f := range r.stack {
		if f == ref {
			start = i
			break
		}
	}
	path := make([]string, 0, len(r.stack)-start+1)
	for _, f := range r.stack[start:] {
		path = append(path, f.String())
	}
	path = append(path, ref.String())
	return strings.Join(path, " -> ")
}
