package store

import (
	sq "github.com/Masterminds/squirrel"
)

// TranslationFilterFunc applies one condition to a select builder.
type TranslationFilterFunc func(sq.SelectBuilder) sq.SelectBuilder

// TranslationQueryFilter accumulates conditions for listing translations.
type TranslationQueryFilter struct {
	filters []TranslationFilterFunc
}

func NewTranslationQueryFilter() *TranslationQueryFilter {
	return &TranslationQueryFilter{}
}

func (qf *TranslationQueryFilter) Add(filter TranslationFilterFunc) *TranslationQueryFilter {
	qf.filters = append(qf.filters, filter)
	return qf
}

// ByDialect keeps only translations targeting the given dialect.
func (qf *TranslationQueryFilter) ByDialect(dialect string) *TranslationQueryFilter {
	return qf.Add(func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Where(sq.Eq{translationColDialect: dialect})
	})
}

// ByStatus keeps only translations with the given status.
func (qf *TranslationQueryFilter) ByStatus(status string) *TranslationQueryFilter {
	return qf.Add(func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Where(sq.Eq{translationColStatus: status})
	})
}

// ByExpression appends a raw SQL condition, typically produced by the
// filter DSL (pkg/filter).
func (qf *TranslationQueryFilter) ByExpression(condition string) *TranslationQueryFilter {
	return qf.Add(func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Where(condition)
	})
}

// OrderBy sorts the result by the given column.
func (qf *TranslationQueryFilter) OrderBy(column string, descending bool) *TranslationQueryFilter {
	direction := "ASC"
	if descending {
		direction = "DESC"
	}
	return qf.Add(func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.OrderBy(column + " " + direction)
	})
}

// Pagination limits the result to one page. Pages are numbered from 1.
func (qf *TranslationQueryFilter) Pagination(page int, pageSize int) *TranslationQueryFilter {
	return qf.Add(func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Offset(uint64((page - 1) * pageSize)).Limit(uint64(pageSize))
	})
}

func (qf *TranslationQueryFilter) Apply(builder sq.SelectBuilder) sq.SelectBuilder {
	for _, f := range qf.filters {
		builder = f(builder)
	}
	return builder
}
