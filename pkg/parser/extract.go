package parser

import (
	"github.com/sqlgate-io/sqlgate/pkg/dialect"
)

// TableRef is a resolved external table reference.
type TableRef struct {
	Catalog string
	Schema  string
	Name    string
}

// scope tracks which names are bound by enclosing CTE preludes. A name
// bound here looks like a table reference but must not be reported as an
// external source, otherwise access checks on the real table could be
// bypassed by shadowing it.
type scope struct {
	parent  *scope
	dialect *dialect.Dialect
	ctes    map[string]bool
}

func newScope(parent *scope, d *dialect.Dialect) *scope {
	return &scope{parent: parent, dialect: d, ctes: map[string]bool{}}
}

func (s *scope) bind(name string) {
	s.ctes[s.dialect.NormalizeName(name)] = true
}

func (s *scope) bound(name string) bool {
	key := s.dialect.NormalizeName(name)
	for sc := s; sc != nil; sc = sc.parent {
		if sc.ctes[key] {
			return true
		}
	}
	return false
}

// ExtractTableRefs parses sql and returns every external table referenced
// by its statements, excluding names bound as CTEs. The error is the first
// parse failure, with no partial results.
func ExtractTableRefs(sql string, d *dialect.Dialect) ([]TableRef, error) {
	stmts, err := ParseStatements(sql, d)
	if err != nil {
		return nil, err
	}
	c := newCollector(d)
	for _, stmt := range stmts {
		if err := c.statement(stmt); err != nil {
			return nil, err
		}
	}
	return c.refs, nil
}

// ExtractAllTableRefs is like ExtractTableRefs but reports CTE name
// references as relations too, which is what lineage wants: every
// relation a query mentions rather than only external sources. Verbs the
// grammar cannot model are an error so callers can fall back.
func ExtractAllTableRefs(sql string, d *dialect.Dialect) ([]TableRef, error) {
	stmts, err := ParseStatements(sql, d)
	if err != nil {
		return nil, err
	}
	c := newCollector(d)
	for _, stmt := range stmts {
		if err := c.allStatement(stmt); err != nil {
			return nil, err
		}
	}
	return c.refs, nil
}

type collector struct {
	dialect *dialect.Dialect
	refs    []TableRef
	seen    map[TableRef]bool
}

func newCollector(d *dialect.Dialect) *collector {
	return &collector{dialect: d, seen: map[TableRef]bool{}}
}

func (c *collector) add(t *TableName) {
	ref := TableRef{Catalog: t.Catalog, Schema: t.Schema, Name: t.Name}
	if c.seen[ref] {
		return
	}
	c.seen[ref] = true
	c.refs = append(c.refs, ref)
}

func (c *collector) statement(stmt Statement) error {
	switch s := stmt.(type) {
	case *SelectStmt:
		c.selectStmt(s, nil)
	case *DescribeStmt:
		for _, t := range s.Tables {
			c.add(t)
		}
	case *CommandStmt:
		return c.command(s)
	case *ExplainStmt:
		return c.statement(s.Target)
	case *RawStmt:
		// No sources.
	}
	return nil
}

// command reparses the command's literal argument as a synthetic select,
// then collects every table node from it without scope filtering. This is
// how "SHOW COLUMNS FROM foo" yields foo.
func (c *collector) command(s *CommandStmt) error {
	if s.Literal == "" {
		return nil
	}
	stmt, err := ParseOne("SELECT "+s.Literal, c.dialect)
	if err != nil {
		return err
	}
	sel, ok := stmt.(*SelectStmt)
	if !ok {
		return nil
	}
	c.allTables(sel)
	return nil
}

// selectStmt walks a select with scope tracking. Each CTE body is walked
// before its name is bound, so earlier CTEs are visible to later ones but
// a CTE cannot shadow the tables inside its own definition.
func (c *collector) selectStmt(sel *SelectStmt, parent *scope) {
	sc := newScope(parent, c.dialect)
	for _, cte := range sel.With {
		if sel.Recursive {
			sc.bind(cte.Name)
		}
		if cte.Select != nil {
			c.selectStmt(cte.Select, sc)
		}
		sc.bind(cte.Name)
	}
	c.body(sel.Body, sc)
}

func (c *collector) body(b SelectBody, sc *scope) {
	switch v := b.(type) {
	case *SetOp:
		c.body(v.Left, sc)
		c.body(v.Right, sc)
	case *SelectCore:
		for _, item := range v.From {
			c.tableExpr(item, sc)
		}
		for _, sub := range v.Subqueries {
			c.selectStmt(sub, sc)
		}
	}
}

func (c *collector) tableExpr(e TableExpr, sc *scope) {
	switch v := e.(type) {
	case *TableName:
		if v.Schema == "" && v.Catalog == "" && sc.bound(v.Name) {
			return
		}
		c.add(v)
	case *Derived:
		c.selectStmt(v.Select, sc)
	case *TableFunc:
		for _, sub := range v.Subqueries {
			c.selectStmt(sub, sc)
		}
	case *Join:
		c.tableExpr(v.Left, sc)
		c.tableExpr(v.Right, sc)
		for _, sub := range v.Subqueries {
			c.selectStmt(sub, sc)
		}
	}
}

func (c *collector) allStatement(stmt Statement) error {
	switch s := stmt.(type) {
	case *SelectStmt:
		c.allTables(s)
	case *DescribeStmt:
		for _, t := range s.Tables {
			c.add(t)
		}
	case *ExplainStmt:
		return c.allStatement(s.Target)
	default:
		return &ParseError{Message: "statement kind not supported for lineage"}
	}
	return nil
}

// allTables collects every table node in a select, CTE names included.
func (c *collector) allTables(sel *SelectStmt) {
	for _, cte := range sel.With {
		if cte.Select != nil {
			c.allTables(cte.Select)
		}
	}
	c.allBody(sel.Body)
}

func (c *collector) allBody(b SelectBody) {
	switch v := b.(type) {
	case *SetOp:
		c.allBody(v.Left)
		c.allBody(v.Right)
	case *SelectCore:
		for _, item := range v.From {
			c.allTableExpr(item)
		}
		for _, sub := range v.Subqueries {
			c.allTables(sub)
		}
	}
}

func (c *collector) allTableExpr(e TableExpr) {
	switch v := e.(type) {
	case *TableName:
		c.add(v)
	case *Derived:
		c.allTables(v.Select)
	case *TableFunc:
		for _, sub := range v.Subqueries {
			c.allTables(sub)
		}
	case *Join:
		c.allTableExpr(v.Left)
		c.allTableExpr(v.Right)
		for _, sub := range v.Subqueries {
			c.allTables(sub)
		}
	}
}
