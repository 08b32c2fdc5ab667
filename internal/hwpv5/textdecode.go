package hwpv5

import (
	"encoding/binary"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// extendedControlCodes are the inline control codes (spec §4.5) that are
// followed by 7 extra 16-bit units of parameter data the decoder must
// consume and discard. Other values below 32, apart from the line-break
// codes 0, 10 and 13, are consumed one unit at a time and emit nothing.
var extendedControlCodes = map[uint16]bool{
	1: true, 2: true, 3: true, 4: true, 5: true, 6: true, 7: true, 8: true,
	9: true, 11: true, 12: true, 14: true, 15: true, 16: true, 17: true,
	18: true, 19: true, 20: true, 21: true, 23: true, 24: true,
}

// decodeParaText turns a PARA_TEXT payload (16-bit LE code units) into a
// plain Unicode string per spec §4.5: literal runs are handed to the
// UTF-16LE decoder, line/paragraph breaks become '\n', and inline control
// codes are stripped — consuming their trailing parameter units where the
// code calls for it.
func decodeParaText(payload []byte) string {
	var sb strings.Builder
	var run []uint16

	flush := func() {
		if len(run) == 0 {
			return
		}
		sb.WriteString(decodeUTF16LE(run))
		run = run[:0]
	}

	n := len(payload) / 2
	i := 0
	for i < n {
		unit := binary.LittleEndian.Uint16(payload[i*2 : i*2+2])
		i++

		switch {
		case unit >= 32:
			run = append(run, unit)
		case unit == 0 || unit == 10 || unit == 13:
			flush()
			sb.WriteByte('\n')
		case extendedControlCodes[unit]:
			flush()
			i += 7
		default:
			flush()
			// consumed, nothing emitted
		}
	}
	flush()
	return sb.String()
}

// decodeUTF16LE decodes a run of literal code units (no control codes,
// possibly including surrogate pairs) into UTF-8 text.
func decodeUTF16LE(units []uint16) string {
	buf := make([]byte, len(units)*2)
	for i, u := range units {
		binary.LittleEndian.PutUint16(buf[i*2:], u)
	}
	dec := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	out, err := dec.Bytes(buf)
	if err != nil {
		return string(buf)
	}
	return string(out)
}
