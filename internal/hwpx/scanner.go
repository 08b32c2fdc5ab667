package hwpx

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/seunghyuoffice-design/hwp2yaml/internal/document"
)

// parseSection streams one section XML and builds the Section tree. Element
// lookup goes by local name only, so it tolerates any namespace prefix the
// producer chose (hp:, hs:, or none).
func parseSection(r io.Reader, index int) (*document.Section, error) {
	section := &document.Section{Index: index}
	decoder := xml.NewDecoder(r)

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return section, nil
		}
		if err != nil {
			return nil, fmt.Errorf("XML parse error: %w", err)
		}

		elem, ok := token.(xml.StartElement)
		if !ok {
			continue
		}

		switch elem.Name.Local {
		case "p":
			var para paragraphElement
			if err := decoder.DecodeElement(&para, &elem); err != nil {
				return nil, fmt.Errorf("decode paragraph: %w", err)
			}
			appendParagraph(section, &para)
		case "tbl":
			// A table sitting directly in the section body, outside any
			// paragraph. It has no anchor in the paragraph flow.
			var tbl tableElement
			if err := decoder.DecodeElement(&tbl, &elem); err != nil {
				return nil, fmt.Errorf("decode table: %w", err)
			}
			if table := buildTable(&tbl); table != nil {
				section.Tables = append(section.Tables, table)
			}
		}
	}
}

// appendParagraph converts one top-level <p> element into a Paragraph,
// materializing any table found in its runs into Section.Tables and
// anchoring it to the paragraph by index.
func appendParagraph(section *document.Section, para *paragraphElement) {
	p := document.NewParagraph(0)
	p.Text = para.extractText()

	for _, run := range para.Runs {
		if run.Table == nil {
			continue
		}
		table := buildTable(run.Table)
		if table == nil {
			continue
		}
		section.Tables = append(section.Tables, table)
		if p.TableRef < 0 {
			p.TableRef = len(section.Tables) - 1
		}
	}

	if p.Text == "" && p.TableRef < 0 {
		return
	}
	section.Paragraphs = append(section.Paragraphs, p)
}

// buildTable flattens a <tbl> element into the dense rowCnt×colCnt grid.
// Each cell's text lands at its cellAddr anchor; spans collapse into the
// anchor cell and addresses outside the declared grid are dropped.
func buildTable(tbl *tableElement) *document.Table {
	if tbl.RowCnt < 1 || tbl.ColCnt < 1 {
		return nil
	}

	table := document.NewTable(tbl.RowCnt, tbl.ColCnt)
	for _, tr := range tbl.Rows {
		for _, tc := range tr.Cells {
			var parts []string
			for _, p := range tc.SubList.Paragraphs {
				if text := p.extractText(); text != "" {
					parts = append(parts, text)
				}
			}
			table.Set(tc.CellAddr.RowAddr, tc.CellAddr.ColAddr, strings.Join(parts, "\n"))
		}
	}
	return table
}

// XML element shapes. Field tags carry local names only; the decoder
// matches them regardless of namespace.

type paragraphElement struct {
	XMLName xml.Name `xml:"p"`
	ID      string   `xml:"id,attr"`
	Runs    []run    `xml:"run"`
}

func (p *paragraphElement) extractText() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.extractText())
	}
	return sb.String()
}

type run struct {
	XMLName   xml.Name      `xml:"run"`
	TextNodes []textNode    `xml:"t"`
	LineBreak *lineBreak    `xml:"lineBreak"`
	Table     *tableElement `xml:"tbl"`
}

func (r *run) extractText() string {
	var sb strings.Builder
	for _, t := range r.TextNodes {
		sb.WriteString(t.Text)
	}
	if r.LineBreak != nil {
		sb.WriteByte('\n')
	}
	return sb.String()
}

type textNode struct {
	XMLName xml.Name `xml:"t"`
	Text    string   `xml:",chardata"`
}

type lineBreak struct {
	XMLName xml.Name `xml:"lineBreak"`
}

type tableElement struct {
	XMLName xml.Name   `xml:"tbl"`
	ID      string     `xml:"id,attr"`
	RowCnt  int        `xml:"rowCnt,attr"`
	ColCnt  int        `xml:"colCnt,attr"`
	Rows    []tableRow `xml:"tr"`
}

type tableRow struct {
	XMLName xml.Name    `xml:"tr"`
	Cells   []tableCell `xml:"tc"`
}

type tableCell struct {
	XMLName  xml.Name `xml:"tc"`
	Name     string   `xml:"name,attr"`
	SubList  subList  `xml:"subList"`
	CellAddr cellAddr `xml:"cellAddr"`
	CellSpan cellSpan `xml:"cellSpan"`
}

type subList struct {
	XMLName    xml.Name           `xml:"subList"`
	Paragraphs []paragraphElement `xml:"p"`
}

type cellAddr struct {
	XMLName xml.Name `xml:"cellAddr"`
	ColAddr int      `xml:"colAddr,attr"`
	RowAddr int      `xml:"rowAddr,attr"`
}

type cellSpan struct {
	XMLName xml.Name `xml:"cellSpan"`
	ColSpan int      `xml:"colSpan,attr"`
	RowSpan int      `xml:"rowSpan,attr"`
}
