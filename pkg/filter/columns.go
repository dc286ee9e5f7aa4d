package filter

// columnMap resolves friendly filter names to columns of the translations
// table. Names missing from the map are quoted verbatim, which already
// matches the snake_case schema (dialect, status, duration_ms, ...).
var columnMap = map[string]string{
	"sql":      `"generated_sql"`,
	"duration": `"duration_ms"`,
	"created":  `"created_at"`,
}
