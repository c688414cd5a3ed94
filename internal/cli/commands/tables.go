package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/sqlgate-io/sqlgate/internal/cli/config"
	"github.com/sqlgate-io/sqlgate/pkg/lineage"
	"github.com/sqlgate-io/sqlgate/pkg/query"
	"golang.org/x/sync/errgroup"
)

// TablesOptions holds options for the tables command.
type TablesOptions struct {
	Format string
}

// NewTablesCommand creates the tables command.
func NewTablesCommand() *cobra.Command {
	opts := &TablesOptions{}
	cmd := &cobra.Command{
		Use:   "tables [files...]",
		Short: "Extract table references from SQL",
		Long: `Extract the physical tables referenced by SQL statements.

With file arguments each file is analyzed concurrently and the result
is grouped per file. Without arguments the SQL is read from stdin.`,
		Example: `  # Tables referenced by a query
  echo "SELECT * FROM a JOIN b ON a.id = b.id" | sqlgate tables

  # Analyze a directory of saved queries
  sqlgate tables queries/*.sql --format csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTables(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: table, csv, json")

	return cmd
}

type fileTables struct {
	File   string   `json:"file"`
	Tables []string `json:"tables"`
	Err    string   `json:"error,omitempty"`
}

func runTables(cmd *cobra.Command, args []string, opts *TablesOptions) error {
	cfg := config.GetCurrentConfig()
	log := config.GetLogger(cmd.Context())
	extractor := lineage.NewExtractor(lineage.DefaultTreeParser(), log)

	var results []fileTables
	if len(args) == 0 {
		sql, err := readSQL(cmd, nil)
		if err != nil {
			return err
		}
		results = []fileTables{{
			File:   "(stdin)",
			Tables: tableNames(extractor.TableReferences(sql, cfg.Engine)),
		}}
	} else {
		results = make([]fileTables, len(args))
		g, ctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(runtime.NumCPU())
		for i, path := range args {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", path, err)
				}
				results[i] = fileTables{
					File:   path,
					Tables: tableNames(extractor.TableReferences(string(data), cfg.Engine)),
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}

	format := opts.Format
	if format == "" {
		format = cfg.OutputFormat
	}
	return renderTables(cmd.OutOrStdout(), results, format)
}

func tableNames(tables []query.Table) []string {
	names := make([]string, 0, len(tables))
	for _, t := range tables {
		names = append(names, t.String())
	}
	sort.Strings(names)
	return names
}

func renderTables(w io.Writer, results []fileTables, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"FILE", "TABLE"})
	total := 0
	for _, r := range results {
		for _, name := range r.Tables {
			t.AppendRow(table.Row{r.File, name})
			total++
		}
	}
	if format == "csv" {
		t.RenderCSV()
	} else {
		t.Render()
		_, _ = fmt.Fprintf(w, "(%d tables)\n", total)
	}
	return nil
}
