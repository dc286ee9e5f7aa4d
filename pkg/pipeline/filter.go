package pipeline

import "fmt"

// FilterStep keeps the rows matching its condition tree.
type FilterStep struct {
	Condition Condition
}

func (s FilterStep) Prql(dialect Dialect) string {
	return fmt.Sprintf("filter %s", s.Condition.Prql(dialect))
}

func (FilterStep) isStep() {}
