package commands

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	upStyle     = cellStyle.Foreground(lipgloss.Color("#E5534B"))
	downStyle   = cellStyle.Foreground(lipgloss.Color("#8BC34A"))
)

// renderTable draws rows under headers. Columns listed in diffCols are
// coloured by sign.
func renderTable(title string, headers []string, rows [][]string, diffCols ...int) string {
	isDiff := make(map[int]bool, len(diffCols))
	for _, c := range diffCols {
		isDiff[c] = true
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if isDiff[col] && row >= 0 && row < len(rows) && col < len(rows[row]) {
				switch v := rows[row][col]; {
				case len(v) > 0 && v[0] == '+':
					return upStyle
				case len(v) > 0 && v[0] == '-' && v != "-":
					return downStyle
				}
			}
			return cellStyle
		})

	if title == "" {
		return t.String()
	}
	return titleStyle.Render(title) + "\n" + t.String()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatKg(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *v)
}

func formatDiff(v *float64) string {
	if v == nil {
		return "-"
	}
	switch {
	case *v == 0:
		return "0.0"
	case *v > 0:
		return fmt.Sprintf("+%.1f", *v)
	}
	return fmt.Sprintf("%.1f", *v)
}

func optional(v *float64, format func(float64) string) string {
	if v == nil {
		return "no data"
	}
	return format(*v)
}
