package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/sqlgate-io/sqlgate/internal/cli/config"
	"github.com/sqlgate-io/sqlgate/pkg/query"
)

// LimitOptions holds options for the limit command.
type LimitOptions struct {
	Max   int
	Force bool
}

// NewLimitCommand creates the limit command.
func NewLimitCommand() *cobra.Command {
	opts := &LimitOptions{}
	cmd := &cobra.Command{
		Use:   "limit [sql]",
		Short: "Apply a row limit to a query",
		Long: `Rewrite a query so it returns at most --max rows.

A missing LIMIT clause is appended. An existing LIMIT is lowered when
it exceeds the maximum, or replaced unconditionally with --force.`,
		Example: `  sqlgate limit --max 100 "SELECT * FROM events"
  sqlgate limit --max 100 --force "SELECT * FROM events LIMIT 10"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLimit(cmd, args, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Max, "max", 0, "Maximum row count (default: max_limit from config)")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Replace an existing LIMIT even when it is lower")

	return cmd
}

func runLimit(cmd *cobra.Command, args []string, opts *LimitOptions) error {
	sql, err := readSQL(cmd, args)
	if err != nil {
		return err
	}
	cfg := config.GetCurrentConfig()
	maxRows := opts.Max
	if maxRows <= 0 {
		maxRows = cfg.MaxLimit
	}

	log := config.GetLogger(cmd.Context())
	q := query.New(sql, query.WithEngine(cfg.Engine), query.WithLogger(log))
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), q.SetOrUpdateLimit(maxRows, opts.Force))
	return nil
}
