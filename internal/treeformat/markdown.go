package treeformat

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
)

var (
	tableRowPattern = regexp.MustCompile(`<[^>]+>.*<[^>]+>`)
	tableCellExpr   = regexp.MustCompile(`<([^>]*)>`)
)

// ConvertTableTags rewrites the angle-bracket table rows found in preview
// text (`<a><b><c>` per line) into markdown tables. Runs of consecutive
// tagged lines form one table; everything else passes through unchanged.
// Only the PrvText fallback needs this — structural extraction produces
// real grids.
func ConvertTableTags(text string) string {
	var out []string
	var rows [][]string

	flush := func() {
		if len(rows) > 0 {
			out = append(out, rowsToMarkdown(rows)...)
			rows = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		if tableRowPattern.MatchString(line) {
			var cells []string
			for _, m := range tableCellExpr.FindAllStringSubmatch(line, -1) {
				cells = append(cells, m[1])
			}
			if len(cells) > 0 {
				rows = append(rows, cells)
				continue
			}
		}
		flush()
		out = append(out, line)
	}
	flush()

	return strings.Join(out, "\n")
}

func rowsToMarkdown(rows [][]string) []string {
	colCount := 0
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}

	widths := make([]int, colCount)
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(strings.TrimSpace(cell)); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var lines []string
	for i, row := range rows {
		padded := make([]string, colCount)
		for j := 0; j < colCount; j++ {
			cell := ""
			if j < len(row) {
				cell = strings.TrimSpace(row[j])
			}
			padded[j] = runewidth.FillRight(cell, widths[j])
		}
		lines = append(lines, "| "+strings.Join(padded, " | ")+" |")

		if i == 0 {
			seps := make([]string, colCount)
			for j, w := range widths {
				seps[j] = strings.Repeat("-", max(3, w))
			}
			lines = append(lines, "| "+strings.Join(seps, " | ")+" |")
		}
	}
	return lines
}
