package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"spendlog/internal/core"
	"spendlog/internal/log"
)

// budgetRecord is the shape this CLI writes into the opaque budgets
// collection. Records it cannot decode are kept untouched.
type budgetRecord struct {
	Category string     `json:"category"`
	Limit    core.Money `json:"limit"`
}

func (s *session) budgetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Set and review monthly budgets per category",
	}
	cmd.AddCommand(s.budgetSetCommand(), s.budgetListCommand())
	return cmd
}

func (s *session) budgetSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <category> <limit>",
		Short: "Set the monthly limit for a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			category := strings.TrimSpace(args[0])
			if category == "" {
				return core.ErrEmptyCategory
			}
			limit, err := core.ParseMoney(args[1])
			if err != nil {
				return fmt.Errorf("limit %q: %w", args[1], err)
			}

			record, err := core.NewBudget(budgetRecord{Category: category, Limit: limit})
			if err != nil {
				return err
			}

			budgets := s.state.Budgets()
			replaced := false
			for i, b := range budgets {
				var existing budgetRecord
				if b.Decode(&existing) == nil && strings.EqualFold(existing.Category, category) {
					budgets[i] = record
					replaced = true
					break
				}
			}
			if !replaced {
				budgets = append(budgets, record)
			}

			if err := s.state.SaveBudgets(cmd.Context(), budgets); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Budget for %s set to %s\n", category, s.formatMoney(limit))
			return nil
		},
	}
}

func (s *session) budgetListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show budgets against this month's spending",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			now := s.opts.now()

			spent := map[string]core.Money{}
			for _, e := range s.state.Expenses() {
				if sameMonth(e.Date, now) {
					key := strings.ToLower(e.Category)
					spent[key] = spent[key].Add(e.Amount)
				}
			}

			var records []budgetRecord
			for _, b := range s.state.Budgets() {
				var r budgetRecord
				if err := b.Decode(&r); err != nil || r.Category == "" {
					s.logger.DebugContext(ctx, "Skipping unrecognized budget record", log.FieldError, err)
					continue
				}
				records = append(records, r)
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No budgets set")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "CATEGORY\tLIMIT\tSPENT %s\tREMAINING\n", now.Format("2006-01"))
			for _, r := range records {
				used := spent[strings.ToLower(r.Category)]
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					r.Category,
					s.formatMoney(r.Limit),
					s.formatMoney(used),
					s.formatMoney(r.Limit.Sub(used)))
			}
			return w.Flush()
		},
	}
}
