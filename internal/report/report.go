// Package report renders a run as a human-readable console summary.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"taxjoin/internal/lineage"
	"taxjoin/internal/output"
)

var rankPlural = map[lineage.Rank]string{
	lineage.Kingdom: "Kingdoms",
	lineage.Phylum:  "Phyla",
	lineage.Class:   "Classes",
	lineage.Order:   "Orders",
	lineage.Family:  "Families",
	lineage.Genus:   "Genera",
	lineage.Species: "Species",
}

// labelWidth keeps values aligned in one column.
const labelWidth = 22

type styles struct {
	title   lipgloss.Style
	section lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	muted   lipgloss.Style
	warn    lipgloss.Style
}

// newStyles binds styles to w so color is only emitted for terminals.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(lipgloss.Color("#374151")),
		section: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#10B981")).MarginTop(1),
		label:   r.NewStyle().Width(labelWidth).PaddingLeft(2),
		value:   r.NewStyle().Bold(true),
		muted:   r.NewStyle().Foreground(lipgloss.Color("#9CA3AF")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("#F59E0B")),
	}
}

// Write renders rep to w.
func Write(w io.Writer, rep output.Report) error {
	st := newStyles(w)
	var b strings.Builder

	line := func(label, value string) {
		b.WriteString(st.label.Render(label))
		b.WriteString(st.value.Render(value))
		b.WriteByte('\n')
	}
	section := func(name string) {
		b.WriteString(st.section.Render(name))
		b.WriteByte('\n')
	}

	b.WriteString(st.title.Render("DESCRIPTIVE STATISTICS"))
	b.WriteByte('\n')

	s := rep.Summary
	section("Records")
	line("Total records", comma(s.TotalRecords))
	line("Unique sequences", comma(s.UniqueSequences))

	section("Unique taxa")
	for i, r := range lineage.Ranks {
		line(rankPlural[r], comma(s.UniqueTaxa[i]))
	}

	section("Sequence lengths")
	line("Mean", bases(s.Length.Mean, 2))
	line("Median", bases(s.Length.Median, 2))
	line("Minimum", bases(s.Length.Min, 0))
	line("Maximum", bases(s.Length.Max, 0))
	line("Std deviation", bases(s.Length.StdDev, 2))

	j := rep.Result.Join
	section("Join")
	line("Sequences", comma(j.Sequences))
	line("Lineage rows", comma(j.Lineages))
	line("Joined rows", comma(j.JoinedRows))
	line("Match rate", Percent(j.MatchRate))
	if skipped := rep.Result.Lineage.Malformed + rep.Result.Lineage.SegmentsSkipped; skipped > 0 {
		b.WriteString(st.label.Render(""))
		b.WriteString(st.muted.Render(fmt.Sprintf("%s malformed lineage lines, %s unparsed segments",
			comma(rep.Result.Lineage.Malformed), comma(rep.Result.Lineage.SegmentsSkipped))))
		b.WriteByte('\n')
	}
	if j.JoinedRows == 0 {
		b.WriteString(st.label.Render(""))
		b.WriteString(st.warn.Render("no records joined"))
		b.WriteByte('\n')
	}

	if len(rep.Aggregates.TopValues) > 0 && s.TotalRecords > 0 {
		section("Most frequent values")
		for _, rc := range rep.Aggregates.TopValues {
			if len(rc.Values) == 0 {
				continue
			}
			parts := make([]string, 0, len(rc.Values))
			for _, vc := range rc.Values {
				name := vc.Value
				if name == "" {
					name = "(none)"
				}
				parts = append(parts, fmt.Sprintf("%s %s", name, st.muted.Render("("+comma(vc.Count)+")")))
			}
			line(string(rc.Rank), strings.Join(parts, ", "))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func comma(n int) string { return humanize.Comma(int64(n)) }

func bases(v float64, prec int) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return humanize.FormatFloat(numberFormat(prec), v) + " bases"
}

func numberFormat(prec int) string {
	if prec <= 0 {
		return "#,###."
	}
	return "#,###." + strings.Repeat("#", prec)
}

// Percent formats a ratio, or "n/a" when undefined.
func Percent(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", v*100)
}
