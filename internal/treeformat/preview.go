package treeformat

import (
	"io"

	"github.com/clipperhouse/uax29/v2/words"
	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"

	"github.com/seunghyuoffice-design/hwp2yaml/internal/document"
)

// previewCellWidth caps how wide one cell may render in a terminal preview.
const previewCellWidth = 40

// RenderTablePreview prints a table's grid as an ASCII table for terminal
// inspection. Cell text is truncated at word boundaries to keep rows
// readable; CJK display width is accounted for.
func RenderTablePreview(w io.Writer, t *document.Table) error {
	tw := tablewriter.NewTable(w)

	if len(t.Data) == 0 {
		return nil
	}

	header := make([]string, t.Cols)
	for i, cell := range t.Data[0] {
		header[i] = TruncateWords(cell, previewCellWidth)
	}
	tw.Header(header)

	for _, row := range t.Data[1:] {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = TruncateWords(cell, previewCellWidth)
		}
		if err := tw.Append(cells); err != nil {
			return err
		}
	}

	return tw.Render()
}

// TruncateWords shortens s to at most maxWidth display columns, cutting at
// UAX#29 word boundaries so it never splits a word or a multi-unit
// grapheme. Width is display width, so CJK text truncates at half the rune
// count of Latin text.
func TruncateWords(s string, maxWidth int) string {
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}

	var out string
	width := 0
	tokens := words.FromString(s)
	for tokens.Next() {
		token := tokens.Value()
		tokenWidth := runewidth.StringWidth(token)
		if width+tokenWidth > maxWidth-1 {
			break
		}
		out += token
		width += tokenWidth
	}
	return out + "…"
}
