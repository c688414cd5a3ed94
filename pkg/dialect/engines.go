package dialect

import "strings"

// engineDialects maps external engine identifiers (as supplied by the
// per-database connection plugins) to structural dialect names. Engines
// without an entry fall back to ANSI.
var engineDialects = map[string]string{
	"ascend":       "hive",
	"awsathena":    "presto",
	"bigquery":     "bigquery",
	"clickhouse":   "clickhouse",
	"clickhousedb": "clickhouse",
	"cockroachdb":  "postgres",
	"databricks":   "databricks",
	"drill":        "drill",
	"duckdb":       "duckdb",
	"gsheets":      "sqlite",
	"hana":         "postgres",
	"hive":         "hive",
	"mssql":        "mssql",
	"mysql":        "mysql",
	"netezza":      "postgres",
	"oracle":       "oracle",
	"postgres":     "postgres",
	"postgresql":   "postgres",
	"presto":       "presto",
	"pydoris":      "doris",
	"redshift":     "redshift",
	"shillelagh":   "sqlite",
	"snowflake":    "snowflake",
	"sqlite":       "sqlite",
	"starrocks":    "starrocks",
	"superset":     "sqlite",
	"teradatasql":  "teradata",
	"trino":        "trino",
	"trinonative":  "trino",
	"vertica":      "postgres",
}

// FromEngine returns the structural dialect for an external engine
// identifier. Unknown or empty engines map to the generic ANSI dialect.
func FromEngine(engine string) *Dialect {
	if engine == "" {
		return ANSI
	}
	name, ok := engineDialects[strings.ToLower(engine)]
	if !ok {
		return ANSI
	}
	return MustGet(name)
}

// KnownEngine reports whether the engine identifier has an explicit
// structural mapping.
func KnownEngine(engine string) bool {
	_, ok := engineDialects[strings.ToLower(engine)]
	return ok
}
