// Package pipeline translates JSON-described data-transformation pipelines
// into PRQL, the pipelined query language an external compiler lowers to SQL.
//
// A pipeline document is an ordered array of steps. Each step carries a
// "name" discriminator selecting its kind; the pipeline renders every step
// and joins the fragments with " | ":
//
//	┌───────────┬──────────────────────────────────────────────────────────┐
//	│ Step      │ Rendered fragment                                        │
//	├───────────┼──────────────────────────────────────────────────────────┤
//	│ domain    │ from `src`            (table: true, the default)         │
//	│           │ from s"SELECT ..."    (table: false, verbatim sub-query) │
//	│ filter    │ filter <condition>                                       │
//	│ aggregate │ one of four shapes, see below                            │
//	└───────────┴──────────────────────────────────────────────────────────┘
//
// # Conditions
//
// A filter step wraps a boolean expression tree. Leaves are distinguished by
// their "operator"; composites by an "and" or "or" key that must stand alone:
//
//	┌─────────────────────┬───────────────────────────────────────────────┐
//	│ Operator            │ Rendering                                     │
//	├─────────────────────┼───────────────────────────────────────────────┤
//	│ eq ne gt gte lt lte │ `col` == <value>  (==, !=, >, >=, <, <=)      │
//	│ isnull / notnull    │ `col` == null  /  `col` != null               │
//	│ in / nin            │ s"<ident> IN (...)"  /  s"<ident> NOT IN (…)" │
//	│ matches             │ s"<ident> SIMILAR TO <lit>"        (postgres) │
//	│                     │ s"REGEXP_CONTAINS(<ident>,<lit>)"  (bigquery) │
//	│ notmatches          │ negated forms of the above                    │
//	│ and                 │ operands joined by &&, unparenthesized        │
//	│ or                  │ (operands joined by ||)                       │
//	└─────────────────────┴───────────────────────────────────────────────┘
//
// The asymmetric parenthesization is load-bearing: an and-group is handed to
// filter as its direct argument, while an or-group must delimit itself when
// it appears among and-operands.
//
// # S-strings and dialects
//
// PRQL has no IN construct and no portable pattern matching, so those
// conditions are emitted as s-strings: raw fragments the compiler splices
// into the generated SQL without inspection. Because the fragment lands in
// SQL directly, quoting inside it follows the target dialect rather than
// PRQL:
//
//	┌────────────────────┬───────────────┬──────────────┐
//	│ Context            │ postgres      │ bigquery     │
//	├────────────────────┼───────────────┼──────────────┤
//	│ identifier         │ \"name\"      │ `name`       │
//	│ string literal     │ 'it''s'       │ 'it\\'s'     │
//	│ number/bool/null   │ verbatim      │ verbatim     │
//	└────────────────────┴───────────────┴──────────────┘
//
// Outside s-strings, identifiers are always PRQL backtick-quoted and string
// values keep their JSON form. Quoting wraps, it does not escape: an
// identifier containing a quote character is passed through as-is.
//
// # Aggregation
//
// An aggregate step selects one of four PRQL shapes from its grouping
// columns ("on") and the keepOriginalGranularity flag:
//
//	┌──────────┬───────┬──────────────────────────────────────────────────┐
//	│ grouping │ keep  │ Output                                           │
//	├──────────┼───────┼──────────────────────────────────────────────────┤
//	│ empty    │ false │ aggregate { ... }            one row             │
//	│ empty    │ true  │ derive { ... }               row count unchanged │
//	│ non-empty│ false │ group { ... } ( aggregate { ... } )              │
//	│ non-empty│ true  │ group { ... } ( window rows:.. ( derive { … } ) )│
//	└──────────┴───────┴──────────────────────────────────────────────────┘
//
// Each aggregation entry renders as `new` = fn `src`, positionally pairing
// "columns" with "newcolumns".
//
// PRQL implements no first or last aggregation. Both are approximated: first
// becomes min and last becomes max. The approximation is lossy. It is only
// faithful when the caller wants some representative value per group, never
// a positional pick. Callers needing true ordered semantics cannot get them
// through this layer.
//
// # Decoding
//
// Parse is strict. Unknown step names, unknown or extra fields, unknown
// operators, value shapes that do not fit the operator, empty and/or operand
// lists, and length-mismatched aggregation column pairs are all rejected
// with a ParseError before anything renders. Rendering itself cannot fail:
// every invariant is checked at construction, and Prql methods return plain
// strings.
package pipeline
