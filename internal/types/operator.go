package types

// LogicOperator represents how filters inside a group are combined.
type LogicOperator string

const (
	AND LogicOperator = "AND"
	OR  LogicOperator = "OR"
)

// Valid reports whether op is AND or OR.
func (op LogicOperator) Valid() bool {
	return op == AND || op == OR
}

// Direction represents sort direction.
type Direction string

const (
	ASC  Direction = "ASC"
	DESC Direction = "DESC"
)

// Valid reports whether d is ASC or DESC.
func (d Direction) Valid() bool {
	return d == ASC || d == DESC
}
