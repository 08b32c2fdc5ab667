// Package hwp2yaml extracts structured text from Korean HWP word-processor
// documents and serializes it as a YAML tree.
//
// Both the binary HWP 5.x format (.hwp, OLE compound container) and the
// XML-based HWPX format (.hwpx, ZIP container) are supported. Extraction
// produces a tree of sections holding paragraphs and dense table grids,
// which is then emitted as a YAML document with a metadata block and a
// flattened raw-text view.
//
// # Example Usage
//
//	file, err := os.Open("document.hwp")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer file.Close()
//
//	// Auto-detect format and write the YAML tree to stdout
//	if err := hwp2yaml.Read(file, os.Stdout); err != nil {
//		log.Fatal(err)
//	}
//
// # Supported Formats
//
// HWP v5 (.hwp): Binary format with OLE Compound File container
//   - Paragraph and table structure reconstruction from the record stream
//   - AES-128 ECB decryption for distribution documents
//   - UTF-16LE text decoding, PrvText preview fallback
//
// HWPX (.hwpx): XML-based format with ZIP container
//   - OWPML parsing, namespace-tolerant
//   - Tables flattened to dense row×col grids
//   - Numeric section ordering
package hwp2yaml

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/seunghyuoffice-design/hwp2yaml/internal/batch"
	"github.com/seunghyuoffice-design/hwp2yaml/internal/document"
	"github.com/seunghyuoffice-design/hwp2yaml/internal/hwpv5"
	"github.com/seunghyuoffice-design/hwp2yaml/internal/hwpx"
	"github.com/seunghyuoffice-design/hwp2yaml/internal/treeformat"
)

// ReadHWP extracts a binary HWP 5.x file and writes its YAML tree to out.
//
// The input must be an *os.File because the OLE compound container needs
// random access.
func ReadHWP(in io.Reader, out io.Writer) error {
	file, ok := in.(*os.File)
	if !ok {
		return fmt.Errorf("input must be an *os.File for HWP format")
	}

	doc, err := hwpv5.ExtractDocument(file)
	if err != nil {
		return fmt.Errorf("failed to parse HWP file: %w", err)
	}

	return writeTree(file.Name(), batch.MethodBodyText, doc, out)
}

// ReadHWPX extracts an XML-based HWPX file and writes its YAML tree to out.
// The input must implement io.ReaderAt for ZIP extraction, and size must be
// the file size.
func ReadHWPX(in io.ReaderAt, size int64, out io.Writer) error {
	doc, err := hwpx.Extract(in, size)
	if err != nil {
		return fmt.Errorf("failed to parse HWPX file: %w", err)
	}

	name := ""
	if f, ok := in.(*os.File); ok {
		name = f.Name()
	}
	return writeTree(name, batch.MethodHWPX, doc, out)
}

// Read detects the file's format by its content, extracts it through the
// matching path, and writes the YAML tree to out. This is the recommended
// entry point: it handles HWP 5.x, HWPX, and (when the external converter
// chain is installed) legacy HWP 3.x files.
func Read(file *os.File, out io.Writer) error {
	doc, method, err := batch.ExtractFile(context.Background(), file.Name())
	if err != nil {
		return err
	}
	return writeTree(file.Name(), method, doc, out)
}

func writeTree(source, method string, doc *document.Document, out io.Writer) error {
	meta := treeformat.Metadata{
		Source:      source,
		Method:      method,
		ExtractedAt: time.Now().UTC(),
		Version:     treeformat.VersionString(doc.Version),
		Compressed:  doc.Compressed,
		Summary:     doc.Summary,
	}
	return treeformat.Encode(out, treeformat.Build(doc, meta))
}
