package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"github.com/sqlgate-io/sqlgate/internal/cli/config"
	"github.com/sqlgate-io/sqlgate/pkg/lineage"
	"github.com/sqlgate-io/sqlgate/pkg/query"
	"github.com/sqlgate-io/sqlgate/pkg/tokentree"
)

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive SQL classifier",
		Long: `Start an interactive session that classifies each entered
statement and shows the tables it references.

Statements end with a semicolon and may span multiple lines.`,
		RunE: runREPL,
	}
}

func runREPL(cmd *cobra.Command, _ []string) error {
	cfg := config.GetCurrentConfig()
	log := config.GetLogger(cmd.Context())
	engine := cfg.Engine
	extractor := lineage.NewExtractor(lineage.DefaultTreeParser(), log)

	historyFile := filepath.Join(os.TempDir(), ".sqlgate_history")
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, ".sqlgate_history")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "sqlgate> ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "sqlgate REPL (engine: %s)\n", engine)
	_, _ = fmt.Fprintln(out, "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(out)

	var buffer strings.Builder
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			buffer.Reset()
			rl.SetPrompt("sqlgate> ")
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Handle dot-commands
		if buffer.Len() == 0 && strings.HasPrefix(line, ".") {
			quit, newEngine := handleDotCommand(out, line, engine)
			if quit {
				break
			}
			engine = newEngine
			continue
		}

		// Accumulate multi-line SQL until semicolon
		buffer.WriteString(line)
		if !strings.HasSuffix(line, ";") {
			buffer.WriteString(" ")
			rl.SetPrompt("   ...> ")
			continue
		}
		rl.SetPrompt("sqlgate> ")

		sql := buffer.String()
		buffer.Reset()
		classify(out, extractor, sql, engine)
		_, _ = fmt.Fprintln(out)
	}

	return nil
}

func handleDotCommand(out io.Writer, line, engine string) (quit bool, newEngine string) {
	parts := strings.Fields(line)
	switch strings.ToLower(parts[0]) {
	case ".quit", ".exit":
		return true, engine
	case ".engine":
		if len(parts) > 1 {
			engine = parts[1]
			_, _ = fmt.Fprintf(out, "engine set to %s\n", engine)
		} else {
			_, _ = fmt.Fprintf(out, "engine: %s\n", engine)
		}
	case ".help":
		_, _ = fmt.Fprintln(out, "Commands:")
		_, _ = fmt.Fprintln(out, "  .engine [name]  show or change the SQL engine")
		_, _ = fmt.Fprintln(out, "  .help           show this help")
		_, _ = fmt.Fprintln(out, "  .quit           exit the REPL")
	default:
		_, _ = fmt.Fprintf(out, "unknown command: %s (try .help)\n", parts[0])
	}
	return false, engine
}

func classify(out io.Writer, extractor *lineage.Extractor, sql, engine string) {
	q := query.New(sql, query.WithEngine(engine))
	for _, stmt := range tokentree.Parse(q.Stripped()) {
		_, _ = fmt.Fprintf(out, "kind:    %s\n", stmt.StatementType())
	}
	_, _ = fmt.Fprintf(out, "select:  %s\n", boolWord(q.IsSelect()))
	if limit, ok := q.Limit(); ok {
		_, _ = fmt.Fprintf(out, "limit:   %d\n", limit)
	}
	if tables := tableNames(extractor.TableReferences(sql, engine)); len(tables) > 0 {
		_, _ = fmt.Fprintf(out, "tables:  %s\n", strings.Join(tables, ", "))
	}
}
