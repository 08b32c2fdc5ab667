package hwpv5

import (
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

const prvTextStream = "PrvText"

// PrvText returns the document's pre-rendered preview text, an uncompressed
// UTF-16LE stream holding roughly the first 4KB of the body. It is used as
// a text-only fallback when structural extraction yields nothing; an empty
// string with a nil error means the stream is absent or empty.
func (r *Reader) PrvText() (string, error) {
	stream, _, err := r.openStream(prvTextStream)
	if err != nil {
		return "", nil
	}

	raw, err := io.ReadAll(stream)
	if err != nil || len(raw) == 0 {
		return "", nil
	}

	dec := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	out, err := dec.Bytes(raw)
	if err != nil {
		return "", nil
	}

	text := strings.ReplaceAll(string(out), "\x00", "")
	return strings.TrimSpace(text), nil
}
