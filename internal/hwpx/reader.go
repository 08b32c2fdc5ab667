package hwpx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"

	"github.com/seunghyuoffice-design/hwp2yaml/internal/document"
)

const hwpxMimetype = "application/hwp+zip"

var sectionEntryPattern = regexp.MustCompile(`^Contents/section([0-9]+)\.xml$`)

// Reader provides access to the sections of an HWPX (ZIP+XML) document.
type Reader struct {
	zipReader *zip.Reader
	version   Version
	sections  []sectionEntry
}

// Version is the HWPX container format version from version.xml.
type Version struct {
	Major       int
	Minor       int
	Micro       int
	BuildNumber int
	XMLVersion  string
}

type sectionEntry struct {
	index int
	name  string
}

// Open opens an HWPX file and returns a Reader. The mimetype entry must
// declare application/hwp+zip; section entries are enumerated by the
// numeric suffix of Contents/section{n}.xml, ordered numerically.
func Open(r io.ReaderAt, size int64) (*Reader, error) {
	zipReader, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("open HWPX as ZIP: %w", err)
	}

	reader := &Reader{zipReader: zipReader}

	if err := reader.validateMimetype(); err != nil {
		return nil, err
	}
	if err := reader.parseVersion(); err != nil {
		return nil, err
	}
	if err := reader.loadSections(); err != nil {
		return nil, err
	}

	return reader, nil
}

func (r *Reader) validateMimetype() error {
	file, err := r.zipReader.Open("mimetype")
	if err != nil {
		return fmt.Errorf("mimetype entry not found: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read mimetype: %w", err)
	}
	if string(data) != hwpxMimetype {
		return fmt.Errorf("invalid mimetype %q, want %q", string(data), hwpxMimetype)
	}
	return nil
}

func (r *Reader) parseVersion() error {
	file, err := r.zipReader.Open("version.xml")
	if err != nil {
		return fmt.Errorf("version.xml not found: %w", err)
	}
	defer file.Close()

	var versionDoc struct {
		XMLName     xml.Name `xml:"HCFVersion"`
		Major       int      `xml:"major,attr"`
		Minor       int      `xml:"minor,attr"`
		Micro       int      `xml:"micro,attr"`
		BuildNumber int      `xml:"buildNumber,attr"`
		XMLVersion  string   `xml:"xmlVersion,attr"`
	}
	if err := xml.NewDecoder(file).Decode(&versionDoc); err != nil {
		return fmt.Errorf("parse version.xml: %w", err)
	}

	r.version = Version{
		Major:       versionDoc.Major,
		Minor:       versionDoc.Minor,
		Micro:       versionDoc.Micro,
		BuildNumber: versionDoc.BuildNumber,
		XMLVersion:  versionDoc.XMLVersion,
	}
	return nil
}

func (r *Reader) loadSections() error {
	for _, file := range r.zipReader.File {
		m := sectionEntryPattern.FindStringSubmatch(file.Name)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		r.sections = append(r.sections, sectionEntry{index: n, name: file.Name})
	}

	if len(r.sections) == 0 {
		return fmt.Errorf("no Contents/section entries found")
	}

	sort.Slice(r.sections, func(i, j int) bool {
		return r.sections[i].index < r.sections[j].index
	})
	return nil
}

// Document parses every section and assembles the structural tree, sections
// in numeric order.
func (r *Reader) Document() (*document.Document, error) {
	doc := &document.Document{
		Version: document.Version{
			Major: byte(r.version.Major),
			Minor: byte(r.version.Minor),
			Rev:   byte(r.version.Micro),
			Build: byte(r.version.BuildNumber),
		},
	}

	for _, entry := range r.sections {
		file, err := r.zipReader.Open(entry.name)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", entry.name, err)
		}
		section, err := parseSection(file, entry.index)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", entry.name, err)
		}
		doc.Sections = append(doc.Sections, section)
	}

	return doc, nil
}

// Extract opens an HWPX file and returns its structural tree in one call.
func Extract(r io.ReaderAt, size int64) (*document.Document, error) {
	reader, err := Open(r, size)
	if err != nil {
		return nil, err
	}
	return reader.Document()
}
