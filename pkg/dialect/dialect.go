// Package dialect provides SQL dialect configuration and the mapping from
// external database engine identifiers to the vocabularies used by the
// parsing backends.
//
// Two independent mappings are maintained: engine name to a structural
// dialect (used by the strict scope-aware parser) and engine name to a
// coarse bucket (used by the tree-based lineage backend). Both are built
// once at process start and never mutated afterwards.
package dialect

import "strings"

// Normalization defines how unquoted identifiers are normalized.
type Normalization int

const (
	// NormLowercase normalizes unquoted identifiers to lowercase (default SQL behavior).
	NormLowercase Normalization = iota
	// NormUppercase normalizes unquoted identifiers to uppercase (Snowflake, Oracle).
	NormUppercase
	// NormCaseSensitive preserves identifier case exactly (MySQL, ClickHouse).
	NormCaseSensitive
	// NormCaseInsensitive folds to lowercase for comparison (BigQuery, Hive, DuckDB).
	NormCaseInsensitive
)

// Dialect holds the static configuration for a SQL dialect.
// This is pure data; instances are registered at init and treated as
// immutable.
type Dialect struct {
	// Name is the dialect identifier (e.g., "postgres", "mysql")
	Name string

	// QuoteStart and QuoteEnd are the identifier quote characters
	// (`"` and `"`, or "`" and "`", or "[" and "]").
	QuoteStart byte
	QuoteEnd   byte

	// DefaultSchema is the schema assumed for unqualified tables
	// ("public" for Postgres, "main" for DuckDB/SQLite, "dbo" for MSSQL).
	DefaultSchema string

	// Normalization defines unquoted identifier case folding.
	Normalization Normalization

	// Keywords lists dialect-specific keywords beyond the common SQL set
	// (ILIKE, RLIKE, ...). They are registered with the token package at
	// init so the lexers stop classifying them as plain identifiers.
	Keywords []string
}

// NormalizeName normalizes an unquoted identifier according to dialect rules.
func (d *Dialect) NormalizeName(name string) string {
	switch d.Normalization {
	case NormUppercase:
		return strings.ToUpper(name)
	case NormCaseSensitive:
		return name
	default:
		return strings.ToLower(name)
	}
}
