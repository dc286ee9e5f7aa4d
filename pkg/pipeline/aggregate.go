package pipeline

import (
	"fmt"
	"strings"
)

// AggregationFunc is the closed set of aggregation functions a document may
// request.
type AggregationFunc string

const (
	FuncMin           AggregationFunc = "min"
	FuncMax           AggregationFunc = "max"
	FuncCount         AggregationFunc = "count"
	FuncAvg           AggregationFunc = "avg"
	FuncSum           AggregationFunc = "sum"
	FuncCountDistinct AggregationFunc = "count distinct"
	FuncFirst         AggregationFunc = "first"
	FuncLast          AggregationFunc = "last"
)

func parseAggregationFunc(s string) (AggregationFunc, error) {
	switch fn := AggregationFunc(s); fn {
	case FuncMin, FuncMax, FuncCount, FuncAvg, FuncSum, FuncCountDistinct, FuncFirst, FuncLast:
		return fn, nil
	default:
		return "", parseErrorf("unknown aggregation function %q", s)
	}
}

// token returns the PRQL function name. PRQL has no first or last
// aggregation; both are approximated with min and max, which is only
// faithful when the caller wants a representative value per group rather
// than a positional pick.
func (f AggregationFunc) token() string {
	switch f {
	case FuncCountDistinct:
		return "count_distinct"
	case FuncFirst:
		return "min"
	case FuncLast:
		return "max"
	default:
		return string(f)
	}
}

// Aggregation applies one function to a list of source columns, positionally
// paired with the result column names.
type Aggregation struct {
	Columns    []Column
	NewColumns []Column
	Function   AggregationFunc
}

func (a Aggregation) Prql(dialect Dialect) string {
	entries := make([]string, 0, len(a.Columns))
	for i, col := range a.Columns {
		entries = append(entries, fmt.Sprintf("%s = %s %s",
			a.NewColumns[i].Prql(dialect), a.Function.token(), col.Prql(dialect)))
	}
	return strings.Join(entries, ", ")
}

// AggregateStep groups and aggregates. Four shapes fall out of whether
// grouping columns are present and whether the original row granularity is
// kept:
//
//	grouping   keep    output
//	none       false   aggregate { ... }
//	none       true    derive { ... }
//	some       false   group { ... } ( aggregate { ... } )
//	some       true    group { ... } ( window rows:.. ( derive { ... } ) )
type AggregateStep struct {
	On                      []Column
	Aggregations            []Aggregation
	KeepOriginalGranularity bool
}

func (s AggregateStep) Prql(dialect Dialect) string {
	entries := make([]string, 0, len(s.Aggregations))
	for _, a := range s.Aggregations {
		entries = append(entries, a.Prql(dialect))
	}
	aggList := strings.Join(entries, ", ")

	if len(s.On) == 0 {
		if s.KeepOriginalGranularity {
			return fmt.Sprintf("derive { %s }", aggList)
		}
		return fmt.Sprintf("aggregate { %s }", aggList)
	}

	groups := make([]string, 0, len(s.On))
	for _, col := range s.On {
		groups = append(groups, col.Prql(dialect))
	}
	groupList := strings.Join(groups, ", ")

	if s.KeepOriginalGranularity {
		return fmt.Sprintf("group { %s } ( window rows:.. ( derive { %s } ) )", groupList, aggList)
	}
	return fmt.Sprintf("group { %s } ( aggregate { %s } )", groupList, aggList)
}

func (AggregateStep) isStep() {}
