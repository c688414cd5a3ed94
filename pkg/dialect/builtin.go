package dialect

// ANSI is the generic fallback dialect used when an engine has no known
// structural mapping.
var ANSI = &Dialect{
	Name:          "ansi",
	QuoteStart:    '"',
	QuoteEnd:      '"',
	Normalization: NormLowercase,
}

// builtins covers every structural dialect the engine mapping targets.
var builtins = []*Dialect{
	ANSI,
	{Name: "postgres", QuoteStart: '"', QuoteEnd: '"', DefaultSchema: "public", Normalization: NormLowercase, Keywords: []string{"ILIKE"}},
	{Name: "mysql", QuoteStart: '`', QuoteEnd: '`', Normalization: NormCaseSensitive, Keywords: []string{"RLIKE"}},
	{Name: "sqlite", QuoteStart: '"', QuoteEnd: '"', DefaultSchema: "main", Normalization: NormCaseInsensitive, Keywords: []string{"GLOB"}},
	{Name: "duckdb", QuoteStart: '"', QuoteEnd: '"', DefaultSchema: "main", Normalization: NormCaseInsensitive, Keywords: []string{"ILIKE", "GLOB"}},
	{Name: "bigquery", QuoteStart: '`', QuoteEnd: '`', Normalization: NormCaseInsensitive},
	{Name: "snowflake", QuoteStart: '"', QuoteEnd: '"', DefaultSchema: "PUBLIC", Normalization: NormUppercase, Keywords: []string{"ILIKE", "SAMPLE"}},
	{Name: "hive", QuoteStart: '`', QuoteEnd: '`', DefaultSchema: "default", Normalization: NormCaseInsensitive, Keywords: []string{"RLIKE"}},
	{Name: "presto", QuoteStart: '"', QuoteEnd: '"', DefaultSchema: "default", Normalization: NormCaseInsensitive},
	{Name: "trino", QuoteStart: '"', QuoteEnd: '"', DefaultSchema: "default", Normalization: NormCaseInsensitive},
	{Name: "databricks", QuoteStart: '`', QuoteEnd: '`', DefaultSchema: "default", Normalization: NormCaseInsensitive},
	{Name: "oracle", QuoteStart: '"', QuoteEnd: '"', Normalization: NormUppercase},
	{Name: "redshift", QuoteStart: '"', QuoteEnd: '"', DefaultSchema: "public", Normalization: NormLowercase},
	{Name: "clickhouse", QuoteStart: '`', QuoteEnd: '`', Normalization: NormCaseSensitive},
	{Name: "drill", QuoteStart: '`', QuoteEnd: '`', Normalization: NormCaseInsensitive},
	{Name: "doris", QuoteStart: '`', QuoteEnd: '`', Normalization: NormCaseSensitive},
	{Name: "starrocks", QuoteStart: '`', QuoteEnd: '`', Normalization: NormCaseSensitive},
	{Name: "teradata", QuoteStart: '"', QuoteEnd: '"', Normalization: NormCaseInsensitive},
	{Name: "mssql", QuoteStart: '[', QuoteEnd: ']', DefaultSchema: "dbo", Normalization: NormCaseInsensitive},
}

func init() {
	for _, d := range builtins {
		Register(d)
	}
}
