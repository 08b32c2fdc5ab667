// Package convert3x handles legacy HWP 3.x files by shelling out to an
// external converter chain: libreoffice renders the document to PDF, then
// pdftotext recovers the text. The result is a flat single-section document
// — the 3.x path cannot produce real structure.
package convert3x

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/seunghyuoffice-design/hwp2yaml/internal/document"
)

// Converter runs the external conversion chain. The zero value uses the
// tools' default names resolved from PATH.
type Converter struct {
	LibreOffice string
	PDFToText   string
}

func (c *Converter) libreoffice() string {
	if c.LibreOffice != "" {
		return c.LibreOffice
	}
	return "libreoffice"
}

func (c *Converter) pdftotext() string {
	if c.PDFToText != "" {
		return c.PDFToText
	}
	return "pdftotext"
}

// Convert converts one HWP 3.x file and returns a document with a single
// section holding one paragraph per non-blank text line. Both external
// commands run under ctx, so a caller timeout kills the whole chain.
func (c *Converter) Convert(ctx context.Context, path string) (*document.Document, error) {
	tmpDir, err := os.MkdirTemp("", "hwp3convert-")
	if err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	cmd := exec.CommandContext(ctx, c.libreoffice(),
		"--headless", "--convert-to", "pdf", "--outdir", tmpDir, path)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("libreoffice convert failed: %v: %s", err, strings.TrimSpace(string(out)))
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	pdfPath := filepath.Join(tmpDir, base+".pdf")
	txtPath := filepath.Join(tmpDir, base+".txt")

	cmd = exec.CommandContext(ctx, c.pdftotext(), "-layout", pdfPath, txtPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("pdftotext failed: %v: %s", err, strings.TrimSpace(string(out)))
	}

	text, err := os.ReadFile(txtPath)
	if err != nil {
		return nil, fmt.Errorf("read converted text: %w", err)
	}

	return DocumentFromText(string(text)), nil
}

// DocumentFromText wraps converter output as a single unstructured section,
// one paragraph per non-blank line.
func DocumentFromText(text string) *document.Document {
	section := &document.Section{Index: 0}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t\r\f")
		if line == "" {
			continue
		}
		p := document.NewParagraph(0)
		p.Text = line
		section.Paragraphs = append(section.Paragraphs, p)
	}

	return &document.Document{Sections: []*document.Section{section}}
}
