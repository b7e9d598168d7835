package services

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"airbnb-merger/models"
	"airbnb-merger/utils"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	valueStyle   = lipgloss.NewStyle().Bold(true)
	goodStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	numberPrinter = message.NewPrinter(language.English)
)

// ReportService summarises the merged table for the console.
type ReportService struct {
	logger *utils.Logger
}

func NewReportService(logger *utils.Logger) *ReportService {
	return &ReportService{logger: logger}
}

// Generate computes the report. It never modifies t.
func (s *ReportService) Generate(t *models.Table, stats models.MergeStats, sourceColumn string, previewRows int, runID string) *models.Report {
	report := &models.Report{
		RunID:        runID,
		TotalRows:    t.Len(),
		TotalColumns: len(t.Columns),
		Columns:      append([]string(nil), t.Columns...),
		Stats:        stats,
	}

	if labels := t.Values(sourceColumn); labels != nil {
		counts := make(map[string]int)
		for _, v := range labels {
			if v.Valid {
				counts[v.String]++
			}
		}
		for label, n := range counts {
			report.RowsBySource = append(report.RowsBySource, models.SourceCount{Label: label, Rows: n})
		}
		sort.Slice(report.RowsBySource, func(i, j int) bool {
			a, b := report.RowsBySource[i], report.RowsBySource[j]
			if a.Rows != b.Rows {
				return a.Rows > b.Rows
			}
			return a.Label < b.Label
		})
		report.SourceCount = len(counts)
	}

	for idx, col := range t.Columns {
		missing := 0
		for _, r := range t.Rows {
			if !r[idx].Valid {
				missing++
			}
		}
		var pct float64
		if t.Len() > 0 {
			pct = round2(float64(missing) * 100 / float64(t.Len()))
		}
		report.Missing = append(report.Missing, models.ColumnMissing{Column: col, Missing: missing, Percent: pct})
	}

	if previewRows > 0 {
		n := previewRows
		if n > t.Len() {
			n = t.Len()
		}
		preview := models.NewTable(t.Columns)
		preview.Rows = append(preview.Rows, t.Rows[:n]...)
		report.Preview = preview
	}

	s.logger.Debug("[report] %d rows, %d columns, %d sources", report.TotalRows, report.TotalColumns, report.SourceCount)
	return report
}

// Print renders r to w.
func (s *ReportService) Print(w io.Writer, r *models.Report) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Fprintf(w, "\n%s\n", titleStyle.Render(sep))
	fmt.Fprintf(w, "%s\n", titleStyle.Render("  📊 MERGED DATA SUMMARY"))
	fmt.Fprintf(w, "%s\n\n", titleStyle.Render(sep))

	fmt.Fprintf(w, "%s\n  %s\n", headingStyle.Render("  Overview"), thin)
	if r.RunID != "" {
		fmt.Fprintf(w, "  Run ID          : %s\n", r.RunID)
	}
	fmt.Fprintf(w, "  Total rows      : %s\n", valueStyle.Render(formatInt(r.TotalRows)))
	fmt.Fprintf(w, "  Total columns   : %s\n", valueStyle.Render(formatInt(r.TotalColumns)))
	fmt.Fprintf(w, "  Sources         : %s\n\n", valueStyle.Render(formatInt(r.SourceCount)))

	st := r.Stats
	fmt.Fprintf(w, "%s\n  %s\n", headingStyle.Render("  Merge Statistics"), thin)
	fmt.Fprintf(w, "  Files loaded    : %d of %d (%d skipped)\n", st.FilesLoaded, st.FilesFound, st.FilesSkipped)
	fmt.Fprintf(w, "  Original rows   : %s\n", formatInt(st.OriginalRows))
	if st.IDColumn != "" {
		fmt.Fprintf(w, "  Dedup key       : %s\n", st.IDColumn)
	} else {
		fmt.Fprintf(w, "  Dedup key       : full row\n")
	}
	fmt.Fprintf(w, "  Duplicates      : %s\n", countStyle(st.DuplicatesRemoved).Render(formatInt(st.DuplicatesRemoved)))
	fmt.Fprintf(w, "  Empty rows      : %s\n", countStyle(st.EmptyRowsRemoved).Render(formatInt(st.EmptyRowsRemoved)))
	fmt.Fprintf(w, "  Text columns    : %d trimmed\n", st.TextColumnsClean)
	fmt.Fprintf(w, "  Final rows      : %s\n\n", valueStyle.Render(formatInt(st.FinalRows)))

	fmt.Fprintf(w, "%s\n  %s\n", headingStyle.Render("  Rows per Source"), thin)
	if len(r.RowsBySource) == 0 {
		fmt.Fprintf(w, "  No source labels\n")
	}
	for _, sc := range r.RowsBySource {
		fmt.Fprintf(w, "  %-30s %s\n", truncate(sc.Label, 28), formatInt(sc.Rows))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s\n  %s\n", headingStyle.Render("  Columns"), thin)
	for i, col := range r.Columns {
		fmt.Fprintf(w, "  %2d. %s\n", i+1, col)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s\n  %s\n", headingStyle.Render("  Missing Values"), thin)
	hasMissing := false
	for _, m := range r.Missing {
		if m.Missing == 0 {
			continue
		}
		hasMissing = true
		fmt.Fprintf(w, "  %-30s %8s (%.2f%%)\n", truncate(m.Column, 28), formatInt(m.Missing), m.Percent)
	}
	if !hasMissing {
		fmt.Fprintf(w, "  %s\n", goodStyle.Render("No missing values"))
	}
	fmt.Fprintln(w)

	if r.Preview != nil && r.Preview.Len() > 0 {
		fmt.Fprintf(w, "%s\n  %s\n", headingStyle.Render(fmt.Sprintf("  First %d Rows", r.Preview.Len())), thin)
		for i, row := range r.Preview.Rows {
			fields := make([]string, 0, len(row))
			for j, v := range row {
				val := "NaN"
				if v.Valid {
					val = v.String
				}
				fields = append(fields, r.Preview.Columns[j]+"="+truncate(val, 24))
			}
			fmt.Fprintf(w, "  %d. %s\n", i+1, strings.Join(fields, " | "))
		}
	}

	fmt.Fprintf(w, "\n%s\n\n", titleStyle.Render(sep))
}

func countStyle(n int) lipgloss.Style {
	if n > 0 {
		return warnStyle
	}
	return goodStyle
}

// formatInt renders n with thousands separators.
func formatInt(n int) string {
	return numberPrinter.Sprintf("%d", n)
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
