package pipeline

// Column is a column or table identifier taken verbatim from the document.
// No character validation is performed: quoting wraps the name, it does not
// escape it.
type Column string

// Prql renders the identifier in PRQL backtick quotes.
func (c Column) Prql(Dialect) string {
	return quoteIdent(string(c))
}

// raw renders the identifier for s-string context.
func (c Column) raw(dialect Dialect) string {
	return rawIdent(string(c), dialect)
}
