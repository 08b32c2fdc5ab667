package document

import "testing"

func TestNewTableShape(t *testing.T) {
	table := NewTable(3, 2)
	if len(table.Data) != 3 {
		t.Fatalf("rows = %d", len(table.Data))
	}
	for r, row := range table.Data {
		if len(row) != 2 {
			t.Errorf("row %d has %d cols", r, len(row))
		}
		for c, cell := range row {
			if cell != "" {
				t.Errorf("cell (%d,%d) not empty: %q", r, c, cell)
			}
		}
	}
}

func TestTableSetBounds(t *testing.T) {
	table := NewTable(2, 2)
	table.Set(0, 1, "ok")
	table.Set(2, 0, "dropped")
	table.Set(0, 2, "dropped")
	table.Set(-1, 0, "dropped")

	if table.Data[0][1] != "ok" {
		t.Errorf("in-range write lost")
	}
	for r, row := range table.Data {
		for c, cell := range row {
			if cell == "dropped" {
				t.Errorf("out-of-range write landed at (%d,%d)", r, c)
			}
		}
	}
}

func TestNewParagraph(t *testing.T) {
	p := NewParagraph(2)
	if p.Level != 2 || p.TableRef != -1 || p.Text != "" {
		t.Errorf("paragraph = %+v", p)
	}
}
