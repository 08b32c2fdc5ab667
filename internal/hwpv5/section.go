package hwpv5

import (
	"encoding/binary"
	"strings"

	"github.com/seunghyuoffice-design/hwp2yaml/internal/document"
)

// scopeKind tags the three shapes a scope frame can take per spec §4.4.2.
type scopeKind int

const (
	scopeKindSection scopeKind = iota
	scopeKindTable
	scopeKindCell
)

// scopeFrame is one entry of the assembler's scope stack. Only the fields
// relevant to its kind are populated: scopeKindTable owns the Table being
// filled in and the next cell index to assign; scopeKindCell references
// that same Table plus the (row, col) it writes to and the paragraph texts
// accumulated so far. level is the record-header level at which the scope
// was opened — the sole signal §4.4.3 uses to decide when it closes.
type scopeFrame struct {
	kind  scopeKind
	level uint16

	table     *document.Table     // scopeKindTable: table under construction. scopeKindCell: owning table.
	cellIndex int                 // scopeKindTable only
	anchor    *document.Paragraph // scopeKindTable: paragraph that introduced the table, if any

	row, col int      // scopeKindCell only
	texts    []string // scopeKindCell only
}

// sectionAssembler is the stateful core of §4.4: it turns one section's flat
// record sequence into a Section tree by tracking a stack of scopes and the
// paragraph currently being coalesced.
type sectionAssembler struct {
	section *document.Section
	stack   []*scopeFrame

	curPara      *document.Paragraph
	curParaFrame *scopeFrame

	awaitTableGeometry bool
}

func newSectionAssembler(index int) *sectionAssembler {
	return &sectionAssembler{
		section: &document.Section{Index: index},
		stack:   []*scopeFrame{{kind: scopeKindSection}},
	}
}

// run consumes every record in records and returns the assembled section.
// A MalformedRecord from the record reader is section-fatal per spec §7: it
// stops decoding this section's remaining records but is never propagated
// to the document assembler, so whatever was assembled up to that point is
// returned as-is.
func (a *sectionAssembler) run(records *RecordReader) *document.Section {
	for {
		rec, ok, err := records.Next()
		if err != nil || !ok {
			break
		}
		a.process(rec)
	}
	a.finish()
	return a.section
}

func (a *sectionAssembler) process(rec Record) {
	a.closeScopes(rec)

	switch rec.Tag {
	case TagParaHeader:
		a.flushParagraph()
		a.curPara = document.NewParagraph(int(rec.Level))
		a.curParaFrame = a.insertionFrame()

	case TagParaText:
		if a.curPara != nil {
			a.curPara.Text += decodeParaText(rec.Payload)
		}

	case TagCtrlHeader:
		// Only a table control arms the next TABLE record; any other
		// control supersedes a pending one.
		a.awaitTableGeometry = isTableFourCC(rec.Payload)

	case TagTable:
		if a.awaitTableGeometry {
			a.openTable(rec)
		}
		a.awaitTableGeometry = false

	case TagListHeader:
		a.openCell(rec)

	// TagParaCharShape, TagParaLineSeg, and every other tag are opaque to
	// the assembler: they still advance the record reader but contribute
	// nothing to the tree (§4.4.1).
	default:
	}
}

// closeScopes applies T7/T8: it pops cell and table scopes whose closing
// condition rec satisfies, repeating until the top of the stack no longer
// wants to close. This is what lets a single record close several nested
// scopes at once (e.g. a section-level paragraph arriving right after the
// last cell of a table).
func (a *sectionAssembler) closeScopes(rec Record) {
	for {
		top := a.stack[len(a.stack)-1]
		switch top.kind {
		case scopeKindCell:
			if !a.cellCloses(top, rec) {
				return
			}
			a.popCell()
		case scopeKindTable:
			if !a.tableCloses(top, rec) {
				return
			}
			a.popTable()
		default:
			return
		}
	}
}

// cellCloses implements T7: a cell ends on a sibling LIST_HEADER at its own
// level or shallower (T7b), or on any record that drops strictly below the
// level its own LIST_HEADER was seen at (T7a). A record at exactly the
// cell's level that isn't a LIST_HEADER is the cell's own paragraph stream
// continuing, not a close.
func (a *sectionAssembler) cellCloses(cell *scopeFrame, rec Record) bool {
	if rec.Tag == TagListHeader && rec.Level <= cell.level {
		return true
	}
	return rec.Level < cell.level
}

// tableCloses implements T8: a table ends when a record drops strictly
// below its opening level, when a PARA_HEADER arrives at or below that
// level (the sibling-paragraph case), or when every cell has been filled
// and something else arrives at that same level instead of a new cell.
func (a *sectionAssembler) tableCloses(tbl *scopeFrame, rec Record) bool {
	if rec.Level < tbl.level {
		return true
	}
	if rec.Level > tbl.level {
		return false
	}
	if rec.Tag == TagParaHeader {
		return true
	}
	return tbl.cellIndex >= tbl.table.Rows*tbl.table.Cols
}

func (a *sectionAssembler) popCell() {
	a.flushParagraph()
	frame := a.stack[len(a.stack)-1]
	a.stack = a.stack[:len(a.stack)-1]
	frame.table.Set(frame.row, frame.col, strings.Join(frame.texts, "\n"))
}

func (a *sectionAssembler) popTable() {
	a.flushParagraph()
	frame := a.stack[len(a.stack)-1]
	a.stack = a.stack[:len(a.stack)-1]
	a.section.Tables = append(a.section.Tables, frame.table)
	// Anchor the table to the paragraph that introduced it, so the
	// flattened-text view can interleave it at its position of occurrence.
	if frame.anchor != nil && frame.anchor.TableRef < 0 {
		frame.anchor.TableRef = len(a.section.Tables) - 1
	}
}

// openTable implements T4: rows/cols live 8 bytes into the payload, after
// the flags block §4.4.1 describes.
func (a *sectionAssembler) openTable(rec Record) {
	if len(rec.Payload) < 12 {
		return
	}
	rows := int(binary.LittleEndian.Uint16(rec.Payload[8:10]))
	cols := int(binary.LittleEndian.Uint16(rec.Payload[10:12]))
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	a.stack = append(a.stack, &scopeFrame{
		kind:   scopeKindTable,
		level:  rec.Level,
		table:  document.NewTable(rows, cols),
		anchor: a.curPara,
	})
}

// openCell implements T5/T6: a LIST_HEADER only starts a cell while the
// innermost scope is a table; anywhere else it is a no-op (the historical
// phantom-cell-counter bug §4.4.2 calls out). Overflow indices are dropped
// rather than grown into, per §4.4.2's defensive clause.
func (a *sectionAssembler) openCell(rec Record) {
	top := a.stack[len(a.stack)-1]
	if top.kind != scopeKindTable {
		return
	}
	total := top.table.Rows * top.table.Cols
	if top.cellIndex >= total {
		return
	}
	row := top.cellIndex / top.table.Cols
	col := top.cellIndex % top.table.Cols
	top.cellIndex++
	a.stack = append(a.stack, &scopeFrame{
		kind:  scopeKindCell,
		level: rec.Level,
		table: top.table,
		row:   row,
		col:   col,
	})
}

// insertionFrame implements §4.4.4: the innermost scope that accepts
// paragraphs is the nearest non-table frame, walking outward from the top.
// The section sentinel at stack[0] always satisfies this, so the search
// never falls through.
func (a *sectionAssembler) insertionFrame() *scopeFrame {
	for i := len(a.stack) - 1; i >= 0; i-- {
		if a.stack[i].kind != scopeKindTable {
			return a.stack[i]
		}
	}
	return a.stack[0]
}

// flushParagraph implements §4.4.5's terminal step: whatever text was
// coalesced goes to the frame remembered at PARA_HEADER time, not whatever
// frame is current now — the stack may have grown (entered a table) since
// the paragraph was opened.
func (a *sectionAssembler) flushParagraph() {
	if a.curPara == nil {
		return
	}
	text := trimParagraphText(a.curPara.Text)
	a.curPara.Text = text
	if a.curParaFrame != nil && a.curParaFrame.kind == scopeKindCell {
		a.curParaFrame.texts = append(a.curParaFrame.texts, text)
	} else {
		a.section.Paragraphs = append(a.section.Paragraphs, a.curPara)
	}
	a.curPara = nil
	a.curParaFrame = nil
}

// finish implements T9: flush whatever paragraph is still open, then close
// every remaining scope in stack order.
func (a *sectionAssembler) finish() {
	a.flushParagraph()
	for len(a.stack) > 1 {
		switch a.stack[len(a.stack)-1].kind {
		case scopeKindCell:
			a.popCell()
		case scopeKindTable:
			a.popTable()
		default:
			a.stack = a.stack[:len(a.stack)-1]
		}
	}
}

// isTableFourCC matches a CTRL_HEADER payload against the table control's
// FourCC. The source stores it little-endian, so the ASCII literal "tbl "
// appears byte-reversed in the payload (§4.4.1, §9).
func isTableFourCC(payload []byte) bool {
	return len(payload) >= 4 &&
		payload[0] == ' ' && payload[1] == 'l' && payload[2] == 'b' && payload[3] == 't'
}

// trimParagraphText drops trailing null and whitespace runs from decoded
// paragraph text. '\n' survives: it stands for an explicit inline
// line-break control, not incidental padding.
func trimParagraphText(s string) string {
	return strings.TrimRight(s, "\x00 \t\r\v\f")
}
