package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/sqlgate-io/sqlgate/internal/cli/config"
	"github.com/sqlgate-io/sqlgate/pkg/lineage"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <paths...>",
		Short: "Re-analyze SQL files on change",
		Long: `Watch files or directories and re-extract table references
whenever a .sql file is written.

Useful while editing saved queries: the referenced tables are printed
on every save.`,
		Example: `  sqlgate watch queries/`,
		Args:    cobra.MinimumNArgs(1),
		RunE:    runWatch,
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := config.GetCurrentConfig()
	log := config.GetLogger(cmd.Context())
	extractor := lineage.NewExtractor(lineage.DefaultTreeParser(), log)
	out := cmd.OutOrStdout()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, path := range args {
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
	}
	_, _ = fmt.Fprintf(out, "Watching %s (ctrl-c to stop)\n", strings.Join(args, ", "))

	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			if filepath.Ext(event.Name) != ".sql" {
				continue
			}
			data, err := os.ReadFile(event.Name)
			if err != nil {
				log.Warn("failed to read changed file", "path", event.Name, "error", err)
				continue
			}
			tables := tableNames(extractor.TableReferences(string(data), cfg.Engine))
			_, _ = fmt.Fprintf(out, "%s: %s\n", event.Name, strings.Join(tables, ", "))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", "error", err)
		}
	}
}
