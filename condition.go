package metricsql

import (
	"fmt"
	"strings"

	"github.com/zoobzio/metricsql/internal/render"
	"github.com/zoobzio/metricsql/internal/types"
)

// RenderFilterGroup returns the predicates of a filter group joined by its
// operator. The caller wraps the result in parentheses.
func RenderFilterGroup(explore *types.Explore, group types.FilterGroup) (string, error) {
	if types.IsNilGroup(group) {
		return "", render.ErrInvalidQuery.New("filter group is nil")
	}
	if err := group.Validate(); err != nil {
		return "", render.ErrInvalidQuery.New(err.Error())
	}
	return newResolver(explore).filterGroup(group)
}

func (r *resolver) filterGroup(group types.FilterGroup) (string, error) {
	return group.AcceptFilterGroup(groupRenderer{r: r})
}

// groupSeparator returns the text placed between predicates of one group.
func groupSeparator(op types.LogicOperator) string {
	return "\n   " + string(op) + " "
}

// groupRenderer renders filter groups of either value type.
type groupRenderer struct {
	r *resolver
}

var _ types.FilterGroupVisitor = groupRenderer{}

func (g groupRenderer) VisitStringGroup(group types.StringFilterGroup) (string, error) {
	dim, err := g.dimensionSQL(group.Field, types.DimensionString)
	if err != nil {
		return "", err
	}
	v := stringPredicate{dim: dim}
	predicates := make([]string, len(group.Filters))
	for i, f := range group.Filters {
		predicates[i] = f.AcceptStringFilter(v)
	}
	return strings.Join(predicates, groupSeparator(group.Operator)), nil
}

func (g groupRenderer) VisitNumberGroup(group types.NumberFilterGroup) (string, error) {
	dim, err := g.dimensionSQL(group.Field, types.DimensionNumber)
	if err != nil {
		return "", err
	}
	v := numberPredicate{dim: dim}
	predicates := make([]string, len(group.Filters))
	for i, f := range group.Filters {
		predicates[i] = f.AcceptNumberFilter(v)
	}
	return strings.Join(predicates, groupSeparator(group.Operator)), nil
}

// dimensionSQL renders the filtered dimension, parenthesised. The dimension
// must hold values of the group's type; an untyped dimension counts as string.
func (g groupRenderer) dimensionSQL(ref types.FieldRef, want types.DimensionType) (string, error) {
	d, ok := g.r.explore.Dimension(ref)
	if !ok {
		return "", render.ErrUnknownField.New("dimension", ref.String(), g.r.explore.Name)
	}
	have := d.Type
	if have == "" {
		have = types.DimensionString
	}
	if have != want {
		return "", render.ErrInvalidQuery.New(fmt.Sprintf("%s filter group on %s dimension %s", want, have, ref))
	}
	sql, err := g.r.dimension(ref, d)
	if err != nil {
		return "", err
	}
	return "(" + sql + ")", nil
}

// stringPredicate renders string filters against one dimension.
type stringPredicate struct {
	dim string
}

var _ types.StringFilterVisitor = stringPredicate{}

func (p stringPredicate) VisitStringEquals(f types.StringEquals) string {
	if len(f.Values) == 0 {
		return "false"
	}
	return p.dim + " IN " + render.StringList(f.Values)
}

func (p stringPredicate) VisitStringNotEquals(f types.StringNotEquals) string {
	if len(f.Values) == 0 {
		return "true"
	}
	return p.dim + " NOT IN " + render.StringList(f.Values)
}

func (p stringPredicate) VisitStringIsNull(types.StringIsNull) string {
	return p.dim + " IS NULL"
}

func (p stringPredicate) VisitStringNotNull(types.StringNotNull) string {
	return p.dim + " IS NOT NULL"
}

func (p stringPredicate) VisitStringStartsWith(f types.StringStartsWith) string {
	return p.dim + " LIKE " + render.StringLiteral(f.Value+"%")
}

// numberPredicate renders number filters against one dimension.
type numberPredicate struct {
	dim string
}

var _ types.NumberFilterVisitor = numberPredicate{}

func (p numberPredicate) VisitNumberEquals(f types.NumberEquals) string {
	if len(f.Values) == 0 {
		return "false"
	}
	return p.dim + " IN " + render.NumberList(f.Values)
}

func (p numberPredicate) VisitNumberNotEquals(f types.NumberNotEquals) string {
	if len(f.Values) == 0 {
		return "true"
	}
	return p.dim + " NOT IN " + render.NumberList(f.Values)
}

func (p numberPredicate) VisitNumberIsNull(types.NumberIsNull) string {
	return p.dim + " IS NULL"
}

func (p numberPredicate) VisitNumberNotNull(types.NumberNotNull) string {
	return p.dim + " IS NOT NULL"
}

func (p numberPredicate) VisitNumberGreaterThan(f types.NumberGreaterThan) string {
	return p.dim + " > " + render.NumberLiteral(f.Value)
}

func (p numberPredicate) VisitNumberLessThan(f types.NumberLessThan) string {
	return p.dim + " < " + render.NumberLiteral(f.Value)
}
