package types

// QueryResult contains the compiled SQL and its output columns.
type QueryResult struct {
	SQL     string
	Columns []string
}
