package treeformat

import (
	"strings"
	"testing"
)

func TestConvertTableTags(t *testing.T) {
	in := strings.Join([]string{
		"before",
		"<구 분><계약일자><계약자>",
		"<보험><2003.6.20><홍길동>",
		"after",
	}, "\n")

	got := ConvertTableTags(in)
	lines := strings.Split(got, "\n")

	if lines[0] != "before" || lines[len(lines)-1] != "after" {
		t.Fatalf("surrounding text damaged:\n%s", got)
	}
	if !strings.HasPrefix(lines[1], "| 구 분") {
		t.Errorf("header row = %q", lines[1])
	}
	if !strings.Contains(lines[2], "---") {
		t.Errorf("separator row = %q", lines[2])
	}
	if !strings.Contains(lines[3], "홍길동") {
		t.Errorf("data row = %q", lines[3])
	}
}

func TestConvertTableTagsPassThrough(t *testing.T) {
	in := "no tables here\njust text with < and > scattered\n"
	if got := ConvertTableTags(in); got != in {
		t.Errorf("plain text changed: %q", got)
	}
}

func TestConvertTableTagsTrailingTable(t *testing.T) {
	in := "text\n<a><b>"
	got := ConvertTableTags(in)
	if !strings.Contains(got, "| a") || !strings.Contains(got, "| b") {
		t.Errorf("trailing table not converted: %q", got)
	}
}
