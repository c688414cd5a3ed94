package commands

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver
	"github.com/spf13/cobra"
	"github.com/sqlgate-io/sqlgate/internal/cli/config"
	"github.com/sqlgate-io/sqlgate/pkg/dialect"
	"github.com/sqlgate-io/sqlgate/pkg/query"
	"github.com/sqlgate-io/sqlgate/pkg/rls"
	"github.com/sqlgate-io/sqlgate/pkg/tokentree"
)

// RLSOptions holds options for the rls command.
type RLSOptions struct {
	DSN        string
	DatabaseID int
	Schema     string
}

// NewRLSCommand creates the rls command.
func NewRLSCommand() *cobra.Command {
	opts := &RLSOptions{}
	cmd := &cobra.Command{
		Use:   "rls [sql]",
		Short: "Inject row-level security predicates",
		Long: `Rewrite SQL so every referenced table carries its configured
row-level security predicate.

Predicates are looked up in the policy store reachable via --dsn.
A lookup failure rejects the statement rather than passing it
through unfiltered.`,
		Example: `  sqlgate rls --dsn postgres://localhost/meta --database-id 1 \
    --schema public "SELECT * FROM orders"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRLS(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.DSN, "dsn", "", "Policy store connection string (default: rls.dsn from config)")
	cmd.Flags().IntVar(&opts.DatabaseID, "database-id", 0, "Analytics database the statements run against")
	cmd.Flags().StringVar(&opts.Schema, "schema", "", "Default schema for unqualified table names")

	return cmd
}

func runRLS(cmd *cobra.Command, args []string, opts *RLSOptions) error {
	sqlText, err := readSQL(cmd, args)
	if err != nil {
		return err
	}

	cfg := config.GetCurrentConfig()
	log := config.GetLogger(cmd.Context())

	dsn := opts.DSN
	if dsn == "" {
		dsn = cfg.RLS.DSN
	}
	if dsn == "" {
		return fmt.Errorf("no policy store DSN configured (use --dsn or rls.dsn)")
	}
	databaseID := opts.DatabaseID
	if databaseID == 0 {
		databaseID = cfg.RLS.DatabaseID
	}
	schema := opts.Schema
	if schema == "" {
		schema = cfg.RLS.Schema
	}
	if schema == "" {
		schema = dialect.FromEngine(cfg.Engine).DefaultSchema
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("failed to open policy store: %w", err)
	}
	defer func() { _ = db.Close() }()

	store := rls.NewStore(db, log)
	ctx := cmd.Context()

	q := query.New(sqlText, query.WithEngine(cfg.Engine), query.WithLogger(log))
	var rewritten []string
	for _, stmtSQL := range q.Statements() {
		stmt := tokentree.ParseOne(stmtSQL)
		if stmt == nil {
			continue
		}
		rewriteID := uuid.New()
		out, err := rls.InsertRLS(ctx, stmt, databaseID, schema, store)
		if err != nil {
			return fmt.Errorf("rls rewrite %s rejected: %w", rewriteID, err)
		}
		log.Debug("applied rls rewrite",
			"rewrite_id", rewriteID,
			"database_id", databaseID,
			"schema", schema)
		rewritten = append(rewritten, out.String())
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(rewritten, ";\n"))
	return nil
}
