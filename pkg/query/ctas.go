package query

import "fmt"

// CtasMethod selects what kind of object a query is materialized into.
type CtasMethod string

const (
	CtasTable CtasMethod = "TABLE"
	CtasView  CtasMethod = "VIEW"
)

// AsCreateTable reformats the query into a CREATE {TABLE,VIEW} ... AS
// statement targeting tableName. With overwrite the target is dropped
// first. No validation happens here; callers gate on IsValidCtas or
// IsValidCvas beforehand.
func (p *ParsedQuery) AsCreateTable(tableName, schemaName string, overwrite bool, method CtasMethod) string {
	if method == "" {
		method = CtasTable
	}
	target := tableName
	if schemaName != "" {
		target = fmt.Sprintf("%s.%s", schemaName, tableName)
	}
	sql := ""
	if overwrite {
		sql = fmt.Sprintf("DROP %s IF EXISTS %s;\n", method, target)
	}
	return sql + fmt.Sprintf("CREATE %s %s AS \n%s", method, target, p.Stripped())
}
