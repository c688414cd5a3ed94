// Package commands implements the sqlgate subcommands.
package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// readSQL returns the SQL to operate on. Arguments are joined into a
// single statement string; with no arguments the text is read from stdin
// so the commands compose with pipes.
func readSQL(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	sql := strings.TrimSpace(string(data))
	if sql == "" {
		return "", fmt.Errorf("no SQL provided (pass it as an argument or on stdin)")
	}
	return sql, nil
}

func boolWord(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
