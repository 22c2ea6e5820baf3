package loader

// exploreDocument is the YAML form of an explore.
type exploreDocument struct {
	Tables    map[string]tableDocument `yaml:"tables"`
	Name      string                   `yaml:"name"`
	BaseTable string                   `yaml:"baseTable"`
	Joins     []joinDocument           `yaml:"joins"`
}

type tableDocument struct {
	Dimensions  map[string]fieldDocument `yaml:"dimensions"`
	Measures    map[string]fieldDocument `yaml:"measures"`
	SQLTable    string                   `yaml:"sqlTable"`
	Description string                   `yaml:"description"`
}

type fieldDocument struct {
	Type        string `yaml:"type"`
	SQL         string `yaml:"sql"`
	Description string `yaml:"description"`
}

type joinDocument struct {
	Table string `yaml:"table"`
	SQLOn string `yaml:"sqlOn"`
}

// queryDocument is the YAML form of a metric query.
// Fields are written as table.name.
type queryDocument struct {
	Limit      *int                  `yaml:"limit"`
	Dimensions []string              `yaml:"dimensions"`
	Measures   []string              `yaml:"measures"`
	Filters    []filterGroupDocument `yaml:"filters"`
	Sorts      []sortDocument        `yaml:"sorts"`
}

type filterGroupDocument struct {
	Type     string           `yaml:"type"`
	Field    string           `yaml:"field"`
	Operator string           `yaml:"operator"`
	Filters  []filterDocument `yaml:"filters"`
}

// filterDocument holds either a value list or a single value depending on
// the operator. Values stay untyped until the group type is known.
type filterDocument struct {
	Value    interface{}   `yaml:"value"`
	Operator string        `yaml:"operator"`
	Values   []interface{} `yaml:"values"`
}

type sortDocument struct {
	Field     string `yaml:"field"`
	Direction string `yaml:"direction"`
}
