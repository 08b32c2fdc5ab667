package hwpx

import (
	"strings"
	"testing"
)

const sectionXML = `<?xml version="1.0" encoding="UTF-8"?>
<hs:sec xmlns:hs="http://www.hancom.co.kr/hwpml/2011/section"
        xmlns:hp="http://www.hancom.co.kr/hwpml/2011/paragraph">
  <hp:p id="1">
    <hp:run><hp:t>Hello </hp:t><hp:t>world</hp:t></hp:run>
  </hp:p>
  <hp:p id="2">
    <hp:run>
      <hp:tbl id="t1" rowCnt="2" colCnt="2">
        <hp:tr>
          <hp:tc name="A1">
            <hp:subList><hp:p><hp:run><hp:t>a</hp:t></hp:run></hp:p></hp:subList>
            <hp:cellAddr colAddr="0" rowAddr="0"/>
            <hp:cellSpan colSpan="1" rowSpan="1"/>
          </hp:tc>
          <hp:tc name="B1">
            <hp:subList><hp:p><hp:run><hp:t>b</hp:t></hp:run></hp:p></hp:subList>
            <hp:cellAddr colAddr="1" rowAddr="0"/>
            <hp:cellSpan colSpan="1" rowSpan="1"/>
          </hp:tc>
        </hp:tr>
        <hp:tr>
          <hp:tc name="A2">
            <hp:subList><hp:p><hp:run><hp:t>c</hp:t></hp:run></hp:p></hp:subList>
            <hp:cellAddr colAddr="0" rowAddr="1"/>
            <hp:cellSpan colSpan="1" rowSpan="1"/>
          </hp:tc>
          <hp:tc name="B2">
            <hp:subList><hp:p><hp:run><hp:t>d1</hp:t></hp:run></hp:p>
                        <hp:p><hp:run><hp:t>d2</hp:t></hp:run></hp:p></hp:subList>
            <hp:cellAddr colAddr="1" rowAddr="1"/>
            <hp:cellSpan colSpan="1" rowSpan="1"/>
          </hp:tc>
        </hp:tr>
      </hp:tbl>
    </hp:run>
  </hp:p>
  <hp:p id="3">
    <hp:run><hp:t>line one</hp:t><hp:lineBreak/></hp:run>
  </hp:p>
</hs:sec>`

func TestParseSection(t *testing.T) {
	section, err := parseSection(strings.NewReader(sectionXML), 3)
	if err != nil {
		t.Fatalf("parseSection: %v", err)
	}

	if section.Index != 3 {
		t.Errorf("index = %d, want 3", section.Index)
	}

	if len(section.Paragraphs) != 3 {
		t.Fatalf("got %d paragraphs: %+v", len(section.Paragraphs), section.Paragraphs)
	}
	if section.Paragraphs[0].Text != "Hello world" {
		t.Errorf("paragraph 0 = %q", section.Paragraphs[0].Text)
	}
	if section.Paragraphs[2].Text != "line one\n" {
		t.Errorf("paragraph 2 = %q", section.Paragraphs[2].Text)
	}

	if len(section.Tables) != 1 {
		t.Fatalf("got %d tables", len(section.Tables))
	}
	table := section.Tables[0]
	if table.Rows != 2 || table.Cols != 2 {
		t.Fatalf("table shape %dx%d", table.Rows, table.Cols)
	}
	want := [][]string{{"a", "b"}, {"c", "d1\nd2"}}
	for r := range want {
		for c := range want[r] {
			if table.Data[r][c] != want[r][c] {
				t.Errorf("data[%d][%d] = %q, want %q", r, c, table.Data[r][c], want[r][c])
			}
		}
	}

	// The table-bearing paragraph anchors the table.
	if section.Paragraphs[1].TableRef != 0 {
		t.Errorf("TableRef = %d, want 0", section.Paragraphs[1].TableRef)
	}
}

func TestParseSectionOutOfRangeCellDropped(t *testing.T) {
	xml := `<sec><p><run>
	  <tbl rowCnt="1" colCnt="1">
	    <tr>
	      <tc><subList><p><run><t>keep</t></run></p></subList>
	          <cellAddr colAddr="0" rowAddr="0"/></tc>
	      <tc><subList><p><run><t>drop</t></run></p></subList>
	          <cellAddr colAddr="5" rowAddr="5"/></tc>
	    </tr>
	  </tbl>
	</run></p></sec>`

	section, err := parseSection(strings.NewReader(xml), 0)
	if err != nil {
		t.Fatalf("parseSection: %v", err)
	}
	table := section.Tables[0]
	if table.Rows != 1 || table.Cols != 1 || table.Data[0][0] != "keep" {
		t.Errorf("table = %+v", table)
	}
}

func TestParseSectionEmptyParagraphSkipped(t *testing.T) {
	xml := `<sec><p><run><t></t></run></p><p><run><t>x</t></run></p></sec>`
	section, err := parseSection(strings.NewReader(xml), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(section.Paragraphs) != 1 || section.Paragraphs[0].Text != "x" {
		t.Errorf("paragraphs = %+v", section.Paragraphs)
	}
}
