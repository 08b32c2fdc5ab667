package batch

import (
	"context"
	"fmt"
	"os"

	"github.com/seunghyuoffice-design/hwp2yaml/internal/convert3x"
	"github.com/seunghyuoffice-design/hwp2yaml/internal/document"
	"github.com/seunghyuoffice-design/hwp2yaml/internal/hwpv5"
	"github.com/seunghyuoffice-design/hwp2yaml/internal/hwpx"
	"github.com/seunghyuoffice-design/hwp2yaml/internal/treeformat"
	"github.com/seunghyuoffice-design/hwp2yaml/internal/triage"
)

// Method tags recorded in exported metadata, naming which path produced
// the document.
const (
	MethodBodyText = "bodytext"
	MethodPrvText  = "prvtext"
	MethodHWPX     = "hwpx"
	MethodConvert  = "hwp3-convert"
)

// ExtractFile triages one file and runs it through the matching extraction
// path. The returned string is the method tag. For HWP 5.x, structural
// extraction is attempted first; a document with no text at all falls back
// to the PrvText preview stream.
func ExtractFile(ctx context.Context, path string) (*document.Document, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	switch triage.Detect(path) {
	case triage.HWP5x:
		return extractHWP5(path)
	case triage.HWPX:
		return extractHWPX(path)
	case triage.HWP3x:
		conv := &convert3x.Converter{}
		doc, err := conv.Convert(ctx, path)
		if err != nil {
			return nil, MethodConvert, err
		}
		return doc, MethodConvert, nil
	default:
		return nil, "", fmt.Errorf("%s: unrecognized file format", path)
	}
}

func extractHWP5(path string) (*document.Document, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	r, err := hwpv5.OpenReader(f)
	if err != nil {
		return nil, "", err
	}

	doc, err := r.Document()
	if err != nil {
		return nil, "", err
	}
	if hasText(doc) {
		return doc, MethodBodyText, nil
	}

	preview, _ := r.PrvText()
	if preview == "" {
		return doc, MethodBodyText, nil
	}
	fallback := convert3x.DocumentFromText(treeformat.ConvertTableTags(preview))
	fallback.Version = doc.Version
	fallback.Compressed = doc.Compressed
	fallback.Summary = doc.Summary
	return fallback, MethodPrvText, nil
}

func extractHWPX(path string) (*document.Document, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, "", err
	}

	doc, err := hwpx.Extract(f, info.Size())
	if err != nil {
		return nil, MethodHWPX, err
	}
	return doc, MethodHWPX, nil
}

func hasText(doc *document.Document) bool {
	for _, section := range doc.Sections {
		for _, p := range section.Paragraphs {
			if p.Text != "" {
				return true
			}
		}
		for _, t := range section.Tables {
			for _, row := range t.Data {
				for _, cell := range row {
					if cell != "" {
						return true
					}
				}
			}
		}
	}
	return false
}
