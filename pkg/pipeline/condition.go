package pipeline

import (
	"fmt"
	"strings"
)

// Condition is one node of a filter step's boolean expression tree. Trees
// are built once by Parse and rendered exactly once; implementations never
// fail after construction.
type Condition interface {
	// Prql renders the node as a PRQL boolean expression fragment.
	Prql(dialect Dialect) string

	isCondition()
}

// ComparisonOperator is the closed set of scalar comparison operators.
type ComparisonOperator string

const (
	OpEq  ComparisonOperator = "eq"
	OpNe  ComparisonOperator = "ne"
	OpGt  ComparisonOperator = "gt"
	OpGte ComparisonOperator = "gte"
	OpLt  ComparisonOperator = "lt"
	OpLte ComparisonOperator = "lte"
)

func (o ComparisonOperator) token() string {
	switch o {
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpGt:
		return ">"
	case OpGte:
		return ">="
	case OpLt:
		return "<"
	default:
		return "<="
	}
}

// NullabilityOperator tests a column against null.
type NullabilityOperator string

const (
	OpIsNull  NullabilityOperator = "isnull"
	OpNotNull NullabilityOperator = "notnull"
)

// InclusionOperator tests a column against a list of scalars.
type InclusionOperator string

const (
	OpIn  InclusionOperator = "in"
	OpNin InclusionOperator = "nin"
)

// MatchesOperator tests a column against a regular expression pattern.
type MatchesOperator string

const (
	OpMatches    MatchesOperator = "matches"
	OpNotMatches MatchesOperator = "notmatches"
)

// Comparison compares a column against a scalar value.
type Comparison struct {
	Column   Column
	Operator ComparisonOperator
	Value    Value
}

func (c Comparison) Prql(dialect Dialect) string {
	return fmt.Sprintf("%s %s %s", c.Column.Prql(dialect), c.Operator.token(), c.Value.Prql(dialect))
}

func (Comparison) isCondition() {}

// Nullability tests a column against null. PRQL has no dedicated null test;
// the compiler lowers == null and != null to IS NULL and IS NOT NULL.
type Nullability struct {
	Column   Column
	Operator NullabilityOperator
}

func (c Nullability) Prql(dialect Dialect) string {
	if c.Operator == OpNotNull {
		return fmt.Sprintf("%s != null", c.Column.Prql(dialect))
	}
	return fmt.Sprintf("%s == null", c.Column.Prql(dialect))
}

func (Nullability) isCondition() {}

// Inclusion tests a column against a list of scalars. PRQL has no IN
// construct, so the whole test is emitted as an s-string the compiler
// splices into the SQL untouched. An empty list renders IN (); the database
// rejects it, not this layer.
type Inclusion struct {
	Column   Column
	Operator InclusionOperator
	Values   []Value
}

func (c Inclusion) Prql(dialect Dialect) string {
	rendered := make([]string, 0, len(c.Values))
	for _, v := range c.Values {
		rendered = append(rendered, v.raw(dialect))
	}
	op := "IN"
	if c.Operator == OpNin {
		op = "NOT IN"
	}
	return fmt.Sprintf(`s"%s %s (%s)"`, c.Column.raw(dialect), op, strings.Join(rendered, ", "))
}

func (Inclusion) isCondition() {}

// Matches tests a column against a pattern. Emitted as an s-string because
// the construct is dialect specific: SIMILAR TO for Postgres,
// REGEXP_CONTAINS for BigQuery.
type Matches struct {
	Column   Column
	Operator MatchesOperator
	Pattern  string
}

func (c Matches) Prql(dialect Dialect) string {
	ident := c.Column.raw(dialect)
	pattern := rawLiteral(c.Pattern, dialect)
	if dialect == BigQuery {
		if c.Operator == OpNotMatches {
			return fmt.Sprintf(`s"NOT REGEXP_CONTAINS(%s,%s)"`, ident, pattern)
		}
		return fmt.Sprintf(`s"REGEXP_CONTAINS(%s,%s)"`, ident, pattern)
	}
	if c.Operator == OpNotMatches {
		return fmt.Sprintf(`s"%s NOT SIMILAR TO %s"`, ident, pattern)
	}
	return fmt.Sprintf(`s"%s SIMILAR TO %s"`, ident, pattern)
}

func (Matches) isCondition() {}

// And joins its operands with &&. The group is left unparenthesized: filter
// takes it as its direct argument and nested Or groups delimit themselves.
type And struct {
	Operands []Condition
}

func (c And) Prql(dialect Dialect) string {
	parts := make([]string, 0, len(c.Operands))
	for _, operand := range c.Operands {
		parts = append(parts, operand.Prql(dialect))
	}
	return strings.Join(parts, " && ")
}

func (And) isCondition() {}

// Or joins its operands with || and parenthesizes the group so it stays a
// single operand when nested inside an And.
type Or struct {
	Operands []Condition
}

func (c Or) Prql(dialect Dialect) string {
	parts := make([]string, 0, len(c.Operands))
	for _, operand := range c.Operands {
		parts = append(parts, operand.Prql(dialect))
	}
	return "(" + strings.Join(parts, " || ") + ")"
}

func (Or) isCondition() {}
