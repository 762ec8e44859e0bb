package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"leaseflex/internal/underwriting"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderAnalysis(out io.Writer, title string, a underwriting.Assumptions, results []underwriting.TierAnalysis) error {
	fmt.Fprintln(out, titleStyle.Render(title))
	claimRate := underwriting.AnnualClaimRate(a)
	fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf(
		"annual claim rate %.2f%%  target loss ratio %.0f%%  deductible $%.0f",
		claimRate*100, a.TargetLossRatio*100, a.Deductible)))
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		headerStyle.Render("Tier"),
		headerStyle.Render("Price"),
		headerStyle.Render("Cap"),
		headerStyle.Render("Avg payout"),
		headerStyle.Render("Loss ratio"),
		headerStyle.Render("Break-even"),
		headerStyle.Render("Max safe claim rate")); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		strings.Repeat("─", 16),
		strings.Repeat("─", 6),
		strings.Repeat("─", 8),
		strings.Repeat("─", 10),
		strings.Repeat("─", 10),
		strings.Repeat("─", 10),
		strings.Repeat("─", 19)); err != nil {
		return fmt.Errorf("write separator: %w", err)
	}

	for _, r := range results {
		lossRatio := fmt.Sprintf("%.1f%%", r.LossRatio*100)
		if r.LossRatio > a.TargetLossRatio {
			lossRatio = warnStyle.Render(lossRatio)
		}
		if _, err := fmt.Fprintf(w, "%s\t$%.0f\t$%.0f\t$%.0f\t%s\t$%.0f\t%s\n",
			r.Tier.Label,
			r.Tier.CurrentPrice,
			r.CoverageCap,
			r.AvgPayout,
			lossRatio,
			r.BreakEvenPrice,
			formatRate(r.MaxSafeClaimRate)); err != nil {
			return fmt.Errorf("write tier row: %w", err)
		}
	}
	return w.Flush()
}

func formatRate(rate *float64) string {
	if rate == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", *rate*100)
}
