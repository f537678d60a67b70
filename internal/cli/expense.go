package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"spendlog/internal/core"
)

func (s *session) expenseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expense",
		Short: "Record and list expenses",
	}
	cmd.AddCommand(s.expenseAddCommand(), s.expenseListCommand(), s.expenseSummaryCommand())
	return cmd
}

func (s *session) expenseAddCommand() *cobra.Command {
	var amount, category, description, date string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a one-off expense",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := core.ParseMoney(amount)
			if err != nil {
				return fmt.Errorf("amount %q: %w", amount, err)
			}

			now := s.opts.now()
			when := now
			if date != "" {
				when, err = time.ParseInLocation(dateLayout, date, now.Location())
				if err != nil {
					return fmt.Errorf("date %q: expected YYYY-MM-DD", date)
				}
			}

			e := core.Expense{
				ID:          s.opts.newID(),
				Amount:      m,
				Category:    strings.TrimSpace(category),
				Description: strings.TrimSpace(description),
				Date:        when,
				CreatedAt:   now,
			}
			if err := s.state.AppendExpense(cmd.Context(), e); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s in %s (%s)\n", s.formatMoney(m), e.Category, e.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "amount spent, e.g. 12.50 or 12,50")
	cmd.Flags().StringVar(&category, "category", "", "expense category")
	cmd.Flags().StringVar(&description, "description", "", "free-text description")
	cmd.Flags().StringVar(&date, "date", "", "date of the expense (YYYY-MM-DD, default today)")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func (s *session) expenseListCommand() *cobra.Command {
	var category, month string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded expenses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var period time.Time
			if month != "" {
				var err error
				period, err = time.Parse("2006-01", month)
				if err != nil {
					return fmt.Errorf("month %q: expected YYYY-MM", month)
				}
			}

			var (
				rows  []core.Expense
				total core.Money
			)
			for _, e := range s.state.Expenses() {
				if category != "" && !strings.EqualFold(e.Category, category) {
					continue
				}
				if !period.IsZero() && !sameMonth(e.Date, period) {
					continue
				}
				rows = append(rows, e)
				total = total.Add(e.Amount)
			}

			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, "No expenses recorded")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tCATEGORY\tAMOUNT\tDESCRIPTION")
			for _, e := range rows {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Date.Format(dateLayout), e.Category, s.formatMoney(e.Amount), e.Description)
			}
			fmt.Fprintf(w, "\t\t%s\t%d expense(s)\n", s.formatMoney(total), len(rows))
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only show this category")
	cmd.Flags().StringVar(&month, "month", "", "only show this month (YYYY-MM)")
	return cmd
}

func (s *session) expenseSummaryCommand() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show spending per category for a month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			period := s.opts.now()
			if month != "" {
				var err error
				period, err = time.Parse("2006-01", month)
				if err != nil {
					return fmt.Errorf("month %q: expected YYYY-MM", month)
				}
			}

			ov := core.NewMonthOverview(s.state.Expenses(), period.Year(), int(period.Month()))
			out := cmd.OutOrStdout()
			if len(ov.ByCategory) == 0 {
				fmt.Fprintf(out, "No expenses in %04d-%02d\n", ov.Year, ov.Month)
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "CATEGORY\tAMOUNT %04d-%02d\n", ov.Year, ov.Month)
			for _, c := range ov.ByCategory {
				fmt.Fprintf(w, "%s\t%s\n", c.Name, s.formatMoney(c.Amount))
			}
			fmt.Fprintf(w, "TOTAL\t%s\n", s.formatMoney(ov.Total))
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "month to summarize (YYYY-MM, default current)")
	return cmd
}

func sameMonth(t, month time.Time) bool {
	return t.Year() == month.Year() && t.Month() == month.Month()
}
