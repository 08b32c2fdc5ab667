// Package document defines the structural tree shared by every extraction
// path (hwpv5, hwpx, convert3x): a Document owns an ordered list of
// Sections, each holding paragraphs and tables in the shape the rest of the
// system (batch, treeformat) consumes.
package document

import "fmt"

// Version is the four-part HWP file-format version number, stored in the
// order the FileHeader's packed version word is documented: major, minor,
// rev, build.
type Version struct {
	Major byte
	Minor byte
	Rev   byte
	Build byte
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v.Major, v.Minor, v.Rev, v.Build)
}

// Document is the root of one extracted file. Ownership is tree-shaped:
// nothing below a Document is shared with or referenced by another
// Document.
type Document struct {
	Version     Version
	Compressed  bool
	Encrypted   bool
	Distributed bool
	Sections    []*Section

	// Summary holds the container's property-set summary stream (title,
	// author, dates) when one is present. Purely decorative metadata.
	Summary map[string]string
}

// Section corresponds to one BodyText/Section{n} stream (or, for HWPX, one
// Contents/section{n}.xml entry). Index is the numeric suffix of the
// source stream name.
type Section struct {
	Index      int
	Paragraphs []*Paragraph
	Tables     []*Table
}

// Paragraph is plain decoded text plus its outline nesting level. TableRef
// is the index into the owning Section's Tables of a table that occurred
// inside this paragraph, or -1: it records the table's position in the
// paragraph flow without introducing a back-reference.
type Paragraph struct {
	Text     string
	Level    int
	TableRef int
}

// NewParagraph returns an empty paragraph at the given outline level with
// no table occurrence recorded.
func NewParagraph(level int) *Paragraph {
	return &Paragraph{Level: level, TableRef: -1}
}

// Table holds a dense Rows×Cols grid. Data[r][c] is always present — missing
// cells are empty strings, never absent, and overflow cells beyond the
// declared (Rows, Cols) are dropped rather than expanding the grid.
type Table struct {
	Rows int
	Cols int
	Data [][]string
}

// NewTable allocates a Rows×Cols grid of empty strings.
func NewTable(rows, cols int) *Table {
	data := make([][]string, rows)
	for r := range data {
		data[r] = make([]string, cols)
	}
	return &Table{Rows: rows, Cols: cols, Data: data}
}

// Set writes text into cell (r, c), dropping it silently if it falls
// outside the declared grid (defensive against malformed documents, per
// the source's overflow-cell behavior).
func (t *Table) Set(r, c int, text string) {
	if r < 0 || r >= t.Rows || c < 0 || c >= t.Cols {
		return
	}
	t.Data[r][c] = text
}
