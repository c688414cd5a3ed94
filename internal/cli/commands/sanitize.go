package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/sqlgate-io/sqlgate/pkg/sanitize"
)

// NewSanitizeCommand creates the sanitize command.
func NewSanitizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sanitize [clause]",
		Short: "Validate an adhoc filter clause",
		Long: `Validate a WHERE/HAVING fragment before it is spliced into a query.

Rejects fragments that smuggle in extra statements, unbalanced
parentheses, or comment markers. Valid fragments are echoed back,
with an unterminated trailing comment closed off.`,
		Example: `  sqlgate sanitize "status = 'active' AND age > 21"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			clause, err := readSQL(cmd, args)
			if err != nil {
				return err
			}
			cleaned, err := sanitize.Clause(clause)
			if err != nil {
				return fmt.Errorf("unsafe clause: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), cleaned)
			return nil
		},
	}
}
