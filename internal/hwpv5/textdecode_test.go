package hwpv5

import (
	"encoding/binary"
	"testing"
)

func units(vals ...uint16) []byte {
	out := make([]byte, 0, len(vals)*2)
	for _, v := range vals {
		out = binary.LittleEndian.AppendUint16(out, v)
	}
	return out
}

func TestDecodeParaTextLiteral(t *testing.T) {
	got := decodeParaText(utf16le("Hi!"))
	if got != "Hi!" {
		t.Errorf("decoded %q, want %q", got, "Hi!")
	}
}

func TestDecodeParaTextKorean(t *testing.T) {
	got := decodeParaText(utf16le("한글 문서"))
	if got != "한글 문서" {
		t.Errorf("decoded %q, want %q", got, "한글 문서")
	}
}

func TestDecodeParaTextLineBreaks(t *testing.T) {
	for _, code := range []uint16{0, 10, 13} {
		payload := append(units('A'), units(code)...)
		payload = append(payload, units('B')...)
		got := decodeParaText(payload)
		if got != "A\nB" {
			t.Errorf("code %d: decoded %q, want %q", code, got, "A\nB")
		}
	}
}

func TestDecodeParaTextExtendedControlConsumesSevenUnits(t *testing.T) {
	// Control code 2 is followed by 7 parameter units. If the decoder
	// miscounts, the trailing text decodes as garbage.
	payload := units('X')
	payload = append(payload, units(2, 100, 200, 300, 400, 500, 600, 700)...)
	payload = append(payload, units('Y')...)

	got := decodeParaText(payload)
	if got != "XY" {
		t.Errorf("decoded %q, want %q", got, "XY")
	}
}

func TestDecodeParaTextAllExtendedControls(t *testing.T) {
	for code := range extendedControlCodes {
		payload := units(code, 0, 0, 0, 0, 0, 0, 0)
		payload = append(payload, units('Z')...)
		if got := decodeParaText(payload); got != "Z" {
			t.Errorf("code %d: decoded %q, want %q", code, got, "Z")
		}
	}
}

func TestDecodeParaTextBareControl(t *testing.T) {
	// 25..31 are below 32 but not in the extended set: consumed alone.
	payload := units('A', 25, 'B', 31, 'C')
	if got := decodeParaText(payload); got != "ABC" {
		t.Errorf("decoded %q, want %q", got, "ABC")
	}
}

func TestDecodeParaTextSurrogatePair(t *testing.T) {
	// U+1F600 as a UTF-16 surrogate pair.
	payload := units(0xD83D, 0xDE00)
	if got := decodeParaText(payload); got != "\U0001F600" {
		t.Errorf("decoded %q, want %q", got, "\U0001F600")
	}
}

func TestDecodeParaTextTruncatedExtendedControl(t *testing.T) {
	// An extended control whose parameters run off the end of the payload
	// must not panic; it just ends the text.
	payload := units('A', 3, 1, 2)
	if got := decodeParaText(payload); got != "A" {
		t.Errorf("decoded %q, want %q", got, "A")
	}
}

func TestTrimParagraphText(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"text  \x00\x00", "text"},
		{"text\t \r", "text"},
		{"P\n", "P\n"}, // explicit line breaks survive
		{"", ""},
	}
	for _, c := range cases {
		if got := trimParagraphText(c.in); got != c.want {
			t.Errorf("trimParagraphText(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
