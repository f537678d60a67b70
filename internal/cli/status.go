package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"spendlog/internal/store"
)

func (s *session) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the storage backend and the size of each collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			stamps, _ := s.backend.Substrate.(store.Timestamped)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Backend: %s\n", s.cfg.DataBackend)

			collections := []struct {
				key   string
				count int
			}{
				{store.KeyExpenses, len(s.state.Expenses())},
				{store.KeyBudgets, len(s.state.Budgets())},
				{store.KeyRecurring, len(s.state.Recurring())},
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "COLLECTION\tRECORDS\tLAST SAVED")
			for _, c := range collections {
				saved := "unknown"
				if stamps != nil {
					at, ok, err := stamps.UpdatedAt(ctx, c.key)
					switch {
					case err != nil:
						return fmt.Errorf("read write time of %s: %w", c.key, err)
					case ok:
						saved = at.Local().Format(time.DateTime)
					default:
						saved = "never"
					}
				}
				fmt.Fprintf(w, "%s\t%d\t%s\n", c.key, c.count, saved)
			}
			return w.Flush()
		},
	}
}
