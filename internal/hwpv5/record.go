package hwpv5

import (
	"encoding/binary"
	"fmt"
)

// Known body-record tag ids (spec §4.4.1). Tag ids not listed here are
// opaque and are surfaced to the assembler as unrecognized — still
// carrying their raw payload so the assembler can skip over them
// correctly.
const (
	TagParaHeader    uint16 = 66
	TagParaText      uint16 = 67
	TagParaCharShape uint16 = 68
	TagParaLineSeg   uint16 = 69
	TagCtrlHeader    uint16 = 71
	TagTable         uint16 = 72
	TagListHeader    uint16 = 73
)

const extendedSizeMarker = 0xFFF

// Record is one decoded (tag_id, level, payload) triple. Payload is a view
// into the decompressed section buffer — the reader never copies.
type Record struct {
	Tag     uint16
	Level   uint16
	Payload []byte
}

// RecordReader is a lazy, single-pass cursor over one decompressed section
// buffer, yielding Records per the wire format of spec §4.3.
type RecordReader struct {
	buf []byte
	pos int
}

// NewRecordReader wraps a fully decompressed section buffer.
func NewRecordReader(buf []byte) *RecordReader {
	return &RecordReader{buf: buf}
}

// Next returns the next record. ok is false with a nil error when fewer
// than 4 bytes remain — a partial trailing header is benign padding, not a
// failure (spec §4.3). err is non-nil only for ErrMalformedRecord, which is
// fatal to the enclosing section, not the whole document.
func (r *RecordReader) Next() (rec Record, ok bool, err error) {
	if len(r.buf)-r.pos < 4 {
		return Record{}, false, nil
	}

	header := binary.LittleEndian.Uint32(r.buf[r.pos : r.pos+4])
	r.pos += 4

	tag := uint16(header & 0x3FF)
	level := uint16((header >> 10) & 0x3FF)
	size := uint32((header >> 20) & 0xFFF)

	if size == extendedSizeMarker {
		if len(r.buf)-r.pos < 4 {
			return Record{}, false, nil
		}
		size = binary.LittleEndian.Uint32(r.buf[r.pos : r.pos+4])
		r.pos += 4
		if uint64(r.pos)+uint64(size) > uint64(len(r.buf)) {
			return Record{}, false, fmt.Errorf("tag %d declares extended size %d with only %d bytes remaining: %w",
				tag, size, len(r.buf)-r.pos, ErrMalformedRecord)
		}
	}

	end := r.pos + int(size)
	if end > len(r.buf) {
		// Non-extended size overrunning the buffer: the source stream is
		// truncated. This is tolerated per §4.3's "no record" rule by
		// taking what remains rather than erroring, mirroring the benign
		// trailing-padding case.
		end = len(r.buf)
	}

	payload := r.buf[r.pos:end]
	r.pos = end

	return Record{Tag: tag, Level: level, Payload: payload}, true, nil
}
