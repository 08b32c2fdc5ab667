// Package treeformat serializes an extracted document tree into the YAML
// tree format consumed downstream: a metadata block plus the structure,
// tables, and flattened raw_text views.
package treeformat

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/seunghyuoffice-design/hwp2yaml/internal/document"
)

// Metadata is the provenance block at the top of every exported document.
type Metadata struct {
	Source      string            `yaml:"source"`
	Method      string            `yaml:"method"`
	ExtractedAt time.Time         `yaml:"extracted_at"`
	Version     string            `yaml:"version,omitempty"`
	Compressed  bool              `yaml:"compressed"`
	Summary     map[string]string `yaml:"summary,omitempty"`
	External    map[string]any    `yaml:"external,omitempty"`
}

// Export is the serialized form of one extracted document.
type Export struct {
	Metadata  Metadata      `yaml:"metadata"`
	Structure []SectionNode `yaml:"structure"`
	Tables    []TableNode   `yaml:"tables"`
	RawText   string        `yaml:"raw_text"`
}

// SectionNode mirrors document.Section in serializable form.
type SectionNode struct {
	Index      int             `yaml:"index"`
	Paragraphs []ParagraphNode `yaml:"paragraphs"`
	Tables     []TableNode     `yaml:"tables"`
}

// ParagraphNode carries a paragraph's text and outline level.
type ParagraphNode struct {
	Text  string `yaml:"text"`
	Level int    `yaml:"level"`
}

// TableNode carries a table's declared shape and its dense cell grid.
type TableNode struct {
	Rows int        `yaml:"rows"`
	Cols int        `yaml:"cols"`
	Data [][]string `yaml:"data"`
}

// Build assembles the Export for one document. The tables field enumerates
// every table of every section in document order, independent of the
// per-section lists inside structure.
func Build(doc *document.Document, meta Metadata) Export {
	export := Export{
		Metadata: meta,
		RawText:  Flatten(doc),
	}

	for _, section := range doc.Sections {
		node := SectionNode{
			Index:      section.Index,
			Paragraphs: make([]ParagraphNode, 0, len(section.Paragraphs)),
			Tables:     make([]TableNode, 0, len(section.Tables)),
		}
		for _, p := range section.Paragraphs {
			node.Paragraphs = append(node.Paragraphs, ParagraphNode{Text: p.Text, Level: p.Level})
		}
		for _, t := range section.Tables {
			tn := TableNode{Rows: t.Rows, Cols: t.Cols, Data: t.Data}
			node.Tables = append(node.Tables, tn)
			export.Tables = append(export.Tables, tn)
		}
		export.Structure = append(export.Structure, node)
	}

	return export
}

// Encode writes the export as YAML.
func Encode(w io.Writer, export Export) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(export); err != nil {
		return fmt.Errorf("encode YAML: %w", err)
	}
	return enc.Close()
}

// VersionString renders the four-part file version the way the metadata
// block expects it.
func VersionString(v document.Version) string {
	return v.String()
}
