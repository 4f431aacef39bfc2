package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"

	"github.com/joseph-ayodele/visiting-cards/internal/entity"
	"github.com/joseph-ayodele/visiting-cards/internal/pipeline"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(12)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

var cardHeaders = []string{"Name", "Email", "Phone", "Company", "Designation", "Address"}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func cardRow(c *entity.Card) []string {
	return []string{c.Name, c.Email, c.Phone, c.Company, c.Designation, c.Address}
}

// printCards renders a bordered table on terminals and TSV otherwise.
func printCards(w io.Writer, cards []*entity.Card, styled bool) {
	if !styled {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(cardHeaders, "\t"))
		for _, c := range cards {
			fmt.Fprintln(tw, strings.Join(cardRow(c), "\t"))
		}
		_ = tw.Flush()
		return
	}
	if len(cards) == 0 {
		fmt.Fprintln(w, "No contacts stored.")
		return
	}

	rows := make([][]string, 0, len(cards))
	for _, c := range cards {
		rows = append(rows, cardRow(c))
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(cardHeaders...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	fmt.Fprintln(w, t.Render())
	fmt.Fprintf(w, "%d contact(s)\n", len(cards))
}

func printScan(w io.Writer, res pipeline.Result, showText bool) {
	status := okStyle.Render("saved")
	switch {
	case res.Deduplicated:
		status = warnStyle.Render("already stored")
	case !res.Saved:
		status = "preview"
	}
	if res.NeedsReview {
		status += " " + warnStyle.Render(fmt.Sprintf("(review, confidence %.2f)", res.Confidence))
	}
	fmt.Fprintf(w, "%s  %s\n", res.Path, status)

	if showText && res.Text != "" {
		fmt.Fprintln(w, labelStyle.Render("text"))
		for _, l := range strings.Split(res.Text, "\n") {
			fmt.Fprintf(w, "  %s\n", l)
		}
	}
	fields := [][2]string{
		{"name", res.Record.Name},
		{"email", res.Record.Email},
		{"phone", res.Record.Phone},
		{"company", res.Record.Company},
		{"designation", res.Record.Designation},
		{"address", res.Record.Address},
	}
	for _, f := range fields {
		if f[1] == "" {
			continue
		}
		fmt.Fprintf(w, "  %s%s\n", labelStyle.Render(f[0]), f[1])
	}
	for _, warn := range res.Warnings {
		fmt.Fprintf(w, "  %s\n", warnStyle.Render("warning: "+warn))
	}
}
