package pipeline

import "fmt"

// DomainStep selects the data source. A table source is backtick-quoted; a
// non-table source is an opaque sub-query spliced in verbatim through an
// s-string.
type DomainStep struct {
	Source string
	Table  bool
}

func (s DomainStep) Prql(dialect Dialect) string {
	if s.Table {
		return fmt.Sprintf("from %s", Column(s.Source).Prql(dialect))
	}
	return fmt.Sprintf(`from s"%s"`, s.Source)
}

func (DomainStep) isStep() {}
