package dialect

import "strings"

// Bucket is the coarse dialect grouping consumed by the tree-based lineage
// backend, which has a much smaller grammar surface than the structural
// parser and only distinguishes eight families.
type Bucket string

// Coarse dialect buckets.
const (
	BucketGeneric    Bucket = "generic"
	BucketANSI       Bucket = "ansi"
	BucketHive       Bucket = "hive"
	BucketMS         Bucket = "ms"
	BucketMySQL      Bucket = "mysql"
	BucketPostgres   Bucket = "postgres"
	BucketSnowflake  Bucket = "snowflake"
	BucketSQLite     Bucket = "sqlite"
	BucketClickHouse Bucket = "clickhouse"
)

// bucketEngines maps each bucket to the engine identifiers it covers.
// Kept in this direction to mirror how the groupings are maintained:
// adding an engine is a one-word edit to the right family.
var bucketEngines = map[Bucket][]string{
	BucketANSI:       {"trino", "trinonative", "presto", "awsathena"},
	BucketHive:       {"hive", "databricks", "ascend"},
	BucketMS:         {"mssql"},
	BucketMySQL:      {"mysql", "starrocks", "pydoris"},
	BucketPostgres:   {"cockroachdb", "hana", "netezza", "postgres", "postgresql", "redshift", "vertica"},
	BucketSnowflake:  {"snowflake"},
	BucketSQLite:     {"sqlite", "gsheets", "shillelagh", "superset"},
	BucketClickHouse: {"clickhouse", "clickhousedb"},
}

// engineBuckets is the inverted lookup, built once at init.
var engineBuckets = func() map[string]Bucket {
	m := make(map[string]Bucket)
	for bucket, engines := range bucketEngines {
		for _, e := range engines {
			m[e] = bucket
		}
	}
	return m
}()

// BucketForEngine returns the coarse bucket for an engine identifier,
// or BucketGeneric when the engine has no grouping.
func BucketForEngine(engine string) Bucket {
	if b, ok := engineBuckets[strings.ToLower(engine)]; ok {
		return b
	}
	return BucketGeneric
}
