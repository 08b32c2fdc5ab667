package hwpv5

import (
	"errors"
	"fmt"
	"io"

	"github.com/seunghyuoffice-design/hwp2yaml/internal/document"
)

// ExtractDocument opens an HWP 5.x file and assembles its full structural
// tree per §4.6: each body section is decompressed and run through the
// section assembler independently, then aggregated in natural numeric
// section order.
func ExtractDocument(ra io.ReaderAt) (*document.Document, error) {
	r, err := OpenReader(ra)
	if err != nil {
		return nil, err
	}
	return r.Document()
}

// Document assembles the structural tree from the reader's body sections.
func (r *Reader) Document() (*document.Document, error) {
	doc := &document.Document{
		Version:     document.Version(r.Header.Version),
		Compressed:  r.Header.Properties.Compressed(),
		Distributed: r.Header.Properties.Distributed(),
	}
	doc.Summary, _ = r.Summary()

	for _, index := range r.SectionIndices() {
		section, err := r.assembleSection(index)
		if err != nil {
			return nil, fmt.Errorf("section %d: %w", index, err)
		}
		doc.Sections = append(doc.Sections, section)
	}

	return doc, nil
}

func (r *Reader) assembleSection(index int) (*document.Section, error) {
	stream, err := r.OpenSection(index)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	buf, err := io.ReadAll(stream)
	if err != nil {
		if errors.Is(err, ErrDecodeLimit) {
			return nil, err
		}
		return nil, fmt.Errorf("read section stream: %w", ErrIOError)
	}

	records := NewRecordReader(buf)
	return newSectionAssembler(index).run(records), nil
}
