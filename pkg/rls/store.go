package rls

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sqlgate-io/sqlgate/pkg/query"
)

// Store is a PredicateSource backed by a SQL database holding one policy
// row per (database, schema, table, predicate).
type Store struct {
	db  *sql.DB
	log *slog.Logger
}

// NewStore wraps db as a predicate source. A nil logger discards logs.
func NewStore(db *sql.DB, log *slog.Logger) *Store {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Store{db: db, log: log}
}

const lookupQuery = `SELECT predicate FROM rls_policies
WHERE database_id = $1 AND schema_name = $2 AND table_name = $3
ORDER BY id`

// Lookup returns the AND-joined policies for a table, or nil when none
// are registered. Query failures propagate so callers fail closed.
func (s *Store) Lookup(ctx context.Context, databaseID int, defaultSchema string, table query.Table) (*Restriction, error) {
	schema := table.Schema
	if schema == "" {
		schema = defaultSchema
	}

	rows, err := s.db.QueryContext(ctx, lookupQuery, databaseID, schema, table.Name)
	if err != nil {
		return nil, fmt.Errorf("rls lookup for %q: %w", table, err)
	}
	defer rows.Close()

	var predicates []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("rls lookup for %q: %w", table, err)
		}
		if p != "" {
			predicates = append(predicates, p)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rls lookup for %q: %w", table, err)
	}
	if len(predicates) == 0 {
		return nil, nil
	}

	qualified := table.Name
	if schema != "" {
		qualified = schema + "." + table.Name
	}
	s.log.Debug("rls predicates found",
		"table", qualified, "count", len(predicates))

	return &Restriction{
		Predicate: strings.Join(predicates, " AND "),
		Table:     qualified,
	}, nil
}
