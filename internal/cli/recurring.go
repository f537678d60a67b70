package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"spendlog/internal/core"
	"spendlog/internal/log"
	"spendlog/internal/services"
)

func (s *session) recurringCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recurring",
		Short: "Manage expenses that repeat on a schedule",
	}
	cmd.AddCommand(
		s.recurringAddCommand(),
		s.recurringListCommand(),
		s.recurringToggleCommand("pause", "Stop logging a recurring expense", false),
		s.recurringToggleCommand("resume", "Resume logging a paused recurring expense", true),
	)
	return cmd
}

func (s *session) recurringAddCommand() *cobra.Command {
	var amount, category, description, frequency string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a recurring expense",
		Long: "Add a recurring expense. The first occurrence is logged once a full\n" +
			"period has elapsed since it was added.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := core.ParseMoney(amount)
			if err != nil {
				return fmt.Errorf("amount %q: %w", amount, err)
			}

			tpl := core.RecurringTemplate{
				ID:          s.opts.newID(),
				Amount:      m,
				Category:    strings.TrimSpace(category),
				Description: strings.TrimSpace(description),
				Frequency:   core.Frequency(strings.ToLower(strings.TrimSpace(frequency))),
				IsActive:    true,
				CreatedAt:   s.opts.now(),
			}
			if err := s.state.AppendTemplate(cmd.Context(), tpl); err != nil {
				return err
			}

			s.logger.InfoContext(cmd.Context(), "Recurring expense added",
				log.NewFields().
					WithOperation(log.OpAppend).
					WithTemplate(tpl.ID, tpl.Category, tpl.Amount.String(), tpl.Frequency.String()).
					ToSlice()...)
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s in %s (%s)\n", tpl.Frequency, s.formatMoney(m), tpl.Category, tpl.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "amount per occurrence")
	cmd.Flags().StringVar(&category, "category", "", "expense category")
	cmd.Flags().StringVar(&description, "description", "", "description copied to every logged expense")
	cmd.Flags().StringVar(&frequency, "frequency", string(core.Monthly), "daily, weekly or monthly")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("description")
	return cmd
}

func (s *session) recurringListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recurring expenses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			templates := s.state.Recurring()
			out := cmd.OutOrStdout()
			if len(templates) == 0 {
				fmt.Fprintln(out, "No recurring expenses")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tFREQUENCY\tCATEGORY\tAMOUNT\tSTATUS\tNEXT DUE\tDESCRIPTION")
			for _, tpl := range templates {
				status := "active"
				if !tpl.IsActive {
					status = "paused"
				}
				next := "never"
				if at, ok := services.NextDue(tpl); ok {
					next = at.Format(dateLayout)
				}
				id := tpl.ID
				if id == "" {
					id = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					id, tpl.Frequency, tpl.Category, s.formatMoney(tpl.Amount), status, next, tpl.Description)
			}
			return w.Flush()
		},
	}
}

func (s *session) recurringToggleCommand(use, short string, active bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.state.SetTemplateActive(cmd.Context(), args[0], active); err != nil {
				return err
			}
			verb := "Paused"
			if active {
				verb = "Resumed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", verb, args[0])
			return nil
		},
	}
}
