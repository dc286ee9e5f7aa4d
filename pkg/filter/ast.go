package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

type QuantityUnit int

func (q QuantityUnit) String() string {
	switch q {
	case MsQuantityUnit:
		return "ms"
	case SecondQuantityUnit:
		return "s"
	case MinuteQuantityUnit:
		return "m"
	case HourQuantityUnit:
		return "h"
	case NoQuantityUnit:
		return "noUnit"
	default:
		return "unknown"
	}
}

const (
	NoQuantityUnit QuantityUnit = iota
	MsQuantityUnit // this is the baseline. In db, durations are stored as milliseconds
	SecondQuantityUnit
	MinuteQuantityUnit
	HourQuantityUnit
)

// Expression is the abstract syntax tree for any expression.
type Expression interface {
	String() string
	Sql() string
}

// binaryExpression is an expression like "a = b" or "a and b".
type binaryExpression struct {
	Left  Expression
	Op    Token
	Right Expression
}

func (e *binaryExpression) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left.String(), e.Op.String(), e.Right.String())
}

func (e *binaryExpression) Sql() string {
	switch e.Op {
	case like:
		return fmt.Sprintf("regexp_matches(%s, %s)", e.Left.Sql(), e.Right.Sql())
	case notLike:
		return fmt.Sprintf("NOT regexp_matches(%s, %s)", e.Left.Sql(), e.Right.Sql())
	default:
		return fmt.Sprintf("(%s %s %s)", e.Left.Sql(), e.Op.Sql(), e.Right.Sql())
	}
}

// stringExpression is a literal string like "foo".
type stringExpression struct {
	Value string
}

func (e *stringExpression) String() string {
	return strconv.Quote(e.Value)
}

func (e *stringExpression) Sql() string {
	return fmt.Sprintf("'%s'", strings.ReplaceAll(e.Value, "'", "''"))
}

// varExpression is a variable/identifier like "dialect" or "duration_ms".
type varExpression struct {
	Name string
}

func (v *varExpression) String() string {
	return v.Name
}

// Sql resolves the filter identifier to a translations column (e.g.
// "generated_sql") via columnMap. Unmapped names are quoted verbatim.
func (v *varExpression) Sql() string {
	if col, ok := columnMap[strings.ToLower(v.Name)]; ok {
		return col
	}
	return fmt.Sprintf(`"%s"`, v.Name)
}

// booleanExpression is a boolean literal (true or false).
type booleanExpression struct {
	Value bool
}

func (b *booleanExpression) String() string {
	return strconv.FormatBool(b.Value)
}

func (b *booleanExpression) Sql() string {
	if b.Value {
		return "TRUE"
	}
	return "FALSE"
}

// regexExpression is a regex literal like /pattern/.
type regexExpression struct {
	Pattern string
}

func newRegexExpression(pos int, pattern string) *regexExpression {
	if _, err := regexp.Compile(pattern); err != nil {
		panic(ParseError{pos, fmt.Sprintf("invalid regex: %s", err)})
	}
	return &regexExpression{Pattern: pattern}
}

func (r *regexExpression) String() string {
	return fmt.Sprintf("/%s/", r.Pattern)
}

func (r *regexExpression) Sql() string {
	return fmt.Sprintf("'%s'", strings.ReplaceAll(r.Pattern, "'", "''"))
}

type quantityExpression struct {
	Value float64
	Unit  QuantityUnit
}

func newQuantityExpression(val string) *quantityExpression {
	qe := &quantityExpression{Unit: NoQuantityUnit}

	numStr := val
	lower := strings.ToLower(val)
	switch {
	case len(val) >= 3 && strings.HasSuffix(lower, "ms"):
		qe.Unit = MsQuantityUnit
		numStr = val[:len(val)-2]
	case len(val) >= 2 && strings.HasSuffix(lower, "s"):
		qe.Unit = SecondQuantityUnit
		numStr = val[:len(val)-1]
	case len(val) >= 2 && strings.HasSuffix(lower, "m"):
		qe.Unit = MinuteQuantityUnit
		numStr = val[:len(val)-1]
	case len(val) >= 2 && strings.HasSuffix(lower, "h"):
		qe.Unit = HourQuantityUnit
		numStr = val[:len(val)-1]
	}

	qe.Value, _ = strconv.ParseFloat(numStr, 64)
	return qe
}

func (q *quantityExpression) String() string {
	if q.Unit == NoQuantityUnit {
		return fmt.Sprintf("%.2f", q.Value)
	}
	return fmt.Sprintf("%.2f%s", q.Value, q.Unit)
}

func (q *quantityExpression) Sql() string {
	// Convert to milliseconds (the baseline unit stored in db)
	var valueInMs float64
	switch q.Unit {
	case MsQuantityUnit:
		valueInMs = q.Value
	case SecondQuantityUnit:
		valueInMs = q.Value * 1000
	case MinuteQuantityUnit:
		valueInMs = q.Value * 60 * 1000
	case HourQuantityUnit:
		valueInMs = q.Value * 60 * 60 * 1000
	default:
		valueInMs = q.Value
	}
	return fmt.Sprintf("%.2f", valueInMs)
}
