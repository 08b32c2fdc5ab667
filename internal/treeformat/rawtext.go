package treeformat

import (
	"strings"

	"github.com/seunghyuoffice-design/hwp2yaml/internal/document"
)

// Flatten produces the raw_text view: for each section, top-level paragraph
// text joined by newline, with each table interleaved as a tab-delimited
// dump at the paragraph it occurred in. Tables with no anchor paragraph are
// appended after the section's paragraphs.
func Flatten(doc *document.Document) string {
	var parts []string

	for _, section := range doc.Sections {
		emitted := make([]bool, len(section.Tables))

		for _, p := range section.Paragraphs {
			if p.Text != "" {
				parts = append(parts, p.Text)
			}
			if p.TableRef >= 0 && p.TableRef < len(section.Tables) && !emitted[p.TableRef] {
				parts = append(parts, dumpTable(section.Tables[p.TableRef]))
				emitted[p.TableRef] = true
			}
		}

		for i, t := range section.Tables {
			if !emitted[i] {
				parts = append(parts, dumpTable(t))
			}
		}
	}

	return strings.Join(parts, "\n")
}

// dumpTable renders a table as newline-separated rows of tab-delimited
// cells. Embedded newlines inside a cell become spaces so every table row
// stays on one output line.
func dumpTable(t *document.Table) string {
	rows := make([]string, 0, len(t.Data))
	for _, row := range t.Data {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = strings.ReplaceAll(cell, "\n", " ")
		}
		rows = append(rows, strings.Join(cells, "\t"))
	}
	return strings.Join(rows, "\n")
}
