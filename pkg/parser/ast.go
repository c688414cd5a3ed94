package parser

// Statement is any parsed top-level statement.
type Statement interface{ stmt() }

// SelectStmt is a SELECT with an optional CTE prelude.
type SelectStmt struct {
	Recursive bool
	With      []*CTE
	Body      SelectBody
}

func (*SelectStmt) stmt() {}

// CTE is one WITH-list entry. Bodies are restricted to selects, so a
// successful parse guarantees the CTE prelude contains no DML or DDL.
type CTE struct {
	Name   string
	Select *SelectStmt
}

// SelectBody is either a single select core or a set operation tree.
type SelectBody interface{ selectBody() }

// SetOp combines two select bodies with UNION, INTERSECT or EXCEPT.
type SetOp struct {
	Op    string
	All   bool
	Left  SelectBody
	Right SelectBody
}

func (*SetOp) selectBody() {}

// SelectCore is one SELECT ... FROM ... block. Expression clauses are
// consumed permissively; any subqueries embedded in them are collected in
// Subqueries so scope traversal still sees their sources.
type SelectCore struct {
	Distinct   bool
	From       []TableExpr
	Subqueries []*SelectStmt
}

func (*SelectCore) selectBody() {}

// TableExpr is a FROM-clause item.
type TableExpr interface{ tableExpr() }

// TableName is a direct reference to a named relation.
type TableName struct {
	Catalog string
	Schema  string
	Name    string
	Alias   string
}

func (*TableName) tableExpr() {}

// Derived is a parenthesized subquery in FROM, optionally LATERAL.
type Derived struct {
	Lateral bool
	Select  *SelectStmt
	Alias   string
}

func (*Derived) tableExpr() {}

// TableFunc is a table-valued function call such as UNNEST(...).
type TableFunc struct {
	Name       string
	Alias      string
	Subqueries []*SelectStmt
}

func (*TableFunc) tableExpr() {}

// Join combines two table expressions. ON-clause subqueries are captured
// in Subqueries.
type Join struct {
	Left       TableExpr
	Right      TableExpr
	Subqueries []*SelectStmt
}

func (*Join) tableExpr() {}

// DescribeStmt is an introspection command whose sources are bare table
// nodes rather than scoped references.
type DescribeStmt struct {
	Tables []*TableName
}

func (*DescribeStmt) stmt() {}

// CommandStmt is an opaque administrative command like SHOW, carrying the
// raw remainder of the statement as a literal.
type CommandStmt struct {
	Keyword string
	Literal string
}

func (*CommandStmt) stmt() {}

// ExplainStmt wraps the statement being explained.
type ExplainStmt struct {
	Target Statement
}

func (*ExplainStmt) stmt() {}

// RawStmt is a statement the grammar does not model (DDL, DML other than
// embedded selects, session commands). It parses as an opaque token run
// and contributes no table sources.
type RawStmt struct{}

func (*RawStmt) stmt() {}
