package filter

// Grammar
//
// --- PARSER RULES ---

// expression  : term ( "or" term )* ;
// term        : factor ( "and" factor )* ;
//
// factor      : equality
//             | "(" expression ")" ;
//
// // Regex gets its own distinct rule based on the operator used
// equality    : IDENTIFIER ( "=" | "!=" | "<" | "<=" | ">" | ">=" ) value
//             | IDENTIFIER ( "~" | "!~" ) REGEX_LITERAL ;
//
// value       : STRING | QUANTITY | BOOLEAN ;
//
// // --- LEXER RULES ---
//
// IDENTIFIER    : [a-zA-Z_.]+ ;
//
// // AWK-style regex: /pattern/
// // Matches anything between two forward slashes
// REGEX_LITERAL : '/' ( '\\/' | . )*? '/' ;
//
// STRING        : "'" (.*?) "'" | "\"" (.*?) "\"" ;
// BOOLEAN       : "true" | "false" ;
//
// // Numeric value with optional duration unit suffix (case insensitive)
// QUANTITY      : [0-9]+(\.[0-9]+)? ( 'ms' | 's' | 'm' | 'h' )? ;

// The expression's Sql() output becomes the WHERE clause of the history
// listing, so every filter runs against the translations table:
//
// SELECT id, dialect, pipeline, prql, generated_sql, status, error,
//        duration_ms, created_at
// FROM translations
// WHERE <filter>
// ORDER BY created_at DESC
// LIMIT <pageSize> OFFSET <(page-1)*pageSize>;
//
// Duration quantities are normalized to milliseconds to match duration_ms,
// so "duration > 2s" compares against 2000. Timestamps compare as strings
// and DuckDB casts them, so "created > '2026-03-01'" behaves as expected.
