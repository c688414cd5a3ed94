// Package lineage extracts table dependencies from saved SQL for dataset
// lineage tracking. Unlike access-control extraction it reports every
// relation a query mentions, and it tolerates templated SQL: jinja
// expressions are scrubbed before parsing so saved virtual datasets still
// yield their dependencies.
package lineage

import (
	"log/slog"
	"regexp"

	"github.com/sqlgate-io/sqlgate/pkg/dialect"
	"github.com/sqlgate-io/sqlgate/pkg/parser"
	"github.com/sqlgate-io/sqlgate/pkg/query"
)

var (
	reJinjaVar   = regexp.MustCompile(`\{\{[^{}]+\}\}`)
	reJinjaBlock = regexp.MustCompile(`\{[%#][^{}%#]+[%#]\}`)
)

// ScrubTemplates replaces jinja constructs with parseable placeholders:
// blocks and comments become a space, value expressions become a dummy
// identifier.
func ScrubTemplates(sql string) string {
	sql = reJinjaBlock.ReplaceAllString(sql, " ")
	return reJinjaVar.ReplaceAllString(sql, "abc")
}

// TreeParser parses SQL into the relations it mentions. Implementations
// receive the coarse dialect bucket for the engine at hand.
type TreeParser interface {
	ParseTables(sql string, bucket dialect.Bucket) ([]query.Table, error)
}

// TreeParserFunc adapts a function to TreeParser.
type TreeParserFunc func(sql string, bucket dialect.Bucket) ([]query.Table, error)

func (f TreeParserFunc) ParseTables(sql string, bucket dialect.Bucket) ([]query.Table, error) {
	return f(sql, bucket)
}

// DefaultTreeParser returns the built-in tree parser, which reports every
// relation including CTE references.
func DefaultTreeParser() TreeParser {
	return TreeParserFunc(func(sql string, bucket dialect.Bucket) ([]query.Table, error) {
		refs, err := parser.ExtractAllTableRefs(sql, bucketDialect(bucket))
		if err != nil {
			return nil, err
		}
		tables := make([]query.Table, 0, len(refs))
		for _, r := range refs {
			tables = append(tables, query.Table{Name: r.Name, Schema: r.Schema, Catalog: r.Catalog})
		}
		return tables, nil
	})
}

func bucketDialect(b dialect.Bucket) *dialect.Dialect {
	if d, ok := dialect.Get(string(b)); ok {
		return d
	}
	return dialect.ANSI
}

// Extractor resolves lineage with an optional tree parser and a fallback
// to the permissive query pipeline.
type Extractor struct {
	tree TreeParser
	log  *slog.Logger
}

// NewExtractor builds an extractor. A nil tree parser skips straight to
// the fallback path; a nil logger discards logs.
func NewExtractor(tree TreeParser, log *slog.Logger) *Extractor {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Extractor{tree: tree, log: log}
}

// TableReferences returns all the dependencies of sql for the given
// engine. The tree parser runs against template-scrubbed SQL; when it is
// unavailable or fails, extraction falls back to the permissive pipeline
// on the raw text.
func (e *Extractor) TableReferences(sql, engine string) []query.Table {
	if e.tree != nil {
		bucket := dialect.BucketForEngine(engine)
		scrubbed := ScrubTemplates(sql)
		tables, err := e.tree.ParseTables(scrubbed, bucket)
		if err == nil {
			return tables
		}
		e.log.Warn("tree parse failed, falling back",
			"engine", engine, "bucket", string(bucket), "error", err)
	}
	return query.New(sql, query.WithEngine(engine)).Tables()
}
