package pipeline

import "encoding/json"

// Dialect is the SQL flavor the downstream compiler targets. It only
// influences s-string fragments, which bypass the compiler and land in the
// generated SQL verbatim; everything else is dialect-neutral PRQL.
type Dialect int

const (
	Postgres Dialect = iota
	BigQuery
)

const (
	dialectPostgres = "postgres"
	dialectBigQuery = "bigquery"
)

func (d Dialect) String() string {
	switch d {
	case BigQuery:
		return dialectBigQuery
	default:
		return dialectPostgres
	}
}

// ParseDialect converts a dialect wire name into a Dialect.
func ParseDialect(s string) (Dialect, error) {
	switch s {
	case dialectPostgres:
		return Postgres, nil
	case dialectBigQuery:
		return BigQuery, nil
	default:
		return Postgres, parseErrorf("unknown dialect %q", s)
	}
}

func (d Dialect) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Dialect) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return newParseError("dialect must be a string")
	}
	parsed, err := ParseDialect(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
