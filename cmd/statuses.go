package cmd

import (
	"fmt"
	"strings"

	"laundry/internal/core/domain/model/order"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var (
	accent      = lipgloss.Color("#0EA5E9")
	dim         = lipgloss.Color("#6B7280")
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent).MarginTop(1)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(accent).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func newStatusesCmd() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "statuses",
		Short: "Show the status and service vocabulary",
		Long:  "Lists every canonical order status, line status and service type with the spellings accepted for it.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), renderVocabulary(plain))
			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "render ASCII tables without styling")
	return cmd
}

func renderVocabulary(plain bool) string {
	statuses := make([][]string, 0, len(order.Statuses()))
	for _, s := range order.Statuses() {
		statuses = append(statuses, []string{s.String(), joinStatuses(s.AllowedTransitions()), strings.Join(order.StatusSpellings(s), ", ")})
	}
	items := make([][]string, 0, len(order.ItemStatuses()))
	for _, s := range order.ItemStatuses() {
		items = append(items, []string{s.String(), strings.Join(order.ItemStatusSpellings(s), ", ")})
	}
	services := make([][]string, 0, len(order.ServiceTypes()))
	for _, s := range order.ServiceTypes() {
		services = append(services, []string{s.String(), strings.Join(order.ServiceTypeSpellings(s), ", ")})
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		renderTable("Order statuses", []string{"status", "next", "accepted spellings"}, statuses, plain),
		renderTable("Line statuses", []string{"status", "accepted spellings"}, items, plain),
		renderTable("Services", []string{"service", "accepted spellings"}, services, plain),
	)
}

func renderTable(title string, headers []string, rows [][]string, plain bool) string {
	t := table.New().Headers(headers...).Rows(rows...)
	if plain {
		t = t.Border(lipgloss.ASCIIBorder()).StyleFunc(func(_, _ int) lipgloss.Style { return cellStyle })
		return lipgloss.JoinVertical(lipgloss.Left, "", title, t.Render())
	}

	t = t.Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(dim)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), t.Render())
}

func joinStatuses(statuses []order.Status) string {
	if len(statuses) == 0 {
		return "-"
	}
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = s.String()
	}
	return strings.Join(names, ", ")
}
