package pipeline

import "strings"

// quoteIdent wraps a name in PRQL backticks. Backticks inside the name are
// not escaped; the grammar has no escape for them and the compiler rejects
// such names on its own.
func quoteIdent(name string) string {
	return "`" + name + "`"
}

// rawIdent quotes an identifier for s-string context, where the fragment is
// spliced into the target SQL untouched: escaped double quotes for Postgres,
// backticks for BigQuery.
func rawIdent(name string, dialect Dialect) string {
	if dialect == BigQuery {
		return "`" + name + "`"
	}
	return `\"` + name + `\"`
}

// rawLiteral single-quotes a string for s-string context. The embedded
// single-quote escape is dialect specific: doubled for Postgres, backslashed
// for BigQuery.
func rawLiteral(s string, dialect Dialect) string {
	quote := "''"
	if dialect == BigQuery {
		quote = `\\'`
	}
	return "'" + strings.ReplaceAll(s, "'", quote) + "'"
}
