package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/sqlgate-io/sqlgate/internal/cli/config"
	"github.com/sqlgate-io/sqlgate/pkg/query"
	"github.com/sqlgate-io/sqlgate/pkg/tokentree"
)

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [sql]",
		Short: "Classify SQL statements",
		Long: `Classify SQL and report the verdicts a gateway would apply.

Shows the statement kind of every statement plus the script-level
verdicts: read-only, usable as CREATE TABLE AS, usable as CREATE VIEW
AS, and the effective LIMIT.`,
		Example: `  sqlgate check "SELECT * FROM users LIMIT 10"
  cat report.sql | sqlgate check`,
		RunE: runCheck,
	}
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	sql, err := readSQL(cmd, args)
	if err != nil {
		return err
	}
	cfg := config.GetCurrentConfig()
	log := config.GetLogger(cmd.Context())
	q := query.New(sql, query.WithEngine(cfg.Engine), query.WithLogger(log))
	out := cmd.OutOrStdout()

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "KIND", "STATEMENT"})
	for i, stmt := range tokentree.Parse(q.Stripped()) {
		t.AppendRow(table.Row{i + 1, stmt.StatementType().String(), truncate(stmt.String(), 60)})
	}
	t.Render()

	_, _ = fmt.Fprintf(out, "select only:   %s\n", boolWord(q.IsSelect()))
	_, _ = fmt.Fprintf(out, "ctas capable:  %s\n", boolWord(q.IsValidCtas()))
	_, _ = fmt.Fprintf(out, "cvas capable:  %s\n", boolWord(q.IsValidCvas()))
	if limit, ok := q.Limit(); ok {
		_, _ = fmt.Fprintf(out, "limit:         %d\n", limit)
	} else {
		_, _ = fmt.Fprintln(out, "limit:         none")
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
