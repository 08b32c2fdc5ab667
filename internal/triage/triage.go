// Package triage classifies input files by HWP generation before any
// extractor runs: magic-byte sniffing plus container confirmation.
package triage

import (
	"archive/zip"
	"bytes"
	"io"
	"os"

	"github.com/richardlehane/mscfb"
)

// Format is the detected file generation.
type Format int

const (
	Unknown Format = iota
	HWP3x          // standalone binary format from the 1990s
	HWP5x          // OLE2 compound container
	HWPX           // ZIP + XML container
)

func (f Format) String() string {
	switch f {
	case HWP3x:
		return "hwp3"
	case HWP5x:
		return "hwp5"
	case HWPX:
		return "hwpx"
	default:
		return "unknown"
	}
}

// Processable reports whether a built-in extractor exists for this format.
// HWP 3.x reports false: it is handled only through the external converter
// path.
func (f Format) Processable() bool {
	return f == HWP5x || f == HWPX
}

var (
	ole2Signature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
	zipSignature  = []byte("PK\x03\x04")
	hwpSignature  = []byte("HWP Document File")
)

// Result is the classification of one file.
type Result struct {
	Path   string
	Format Format
	Size   int64
	Note   string
}

// Detect classifies a file. An unreadable file is Unknown, not an error:
// triage is a filter, and callers decide what to do with the leftovers.
func Detect(path string) Format {
	f, err := os.Open(path)
	if err != nil {
		return Unknown
	}
	defer f.Close()

	var head [32]byte
	n, _ := io.ReadFull(f, head[:])
	if n < 8 {
		return Unknown
	}

	switch {
	case bytes.HasPrefix(head[:n], zipSignature):
		if isHWPXContainer(f) {
			return HWPX
		}
		return Unknown

	case bytes.HasPrefix(head[:n], ole2Signature):
		// Check the HWP signature inside the container. A FileHeader that
		// reads cleanly with a foreign signature means some other OLE2
		// document; an unreadable container is still assumed 5.x so the
		// extractor produces the real diagnosis.
		if ok, decided := confirmHWP5(f); decided && !ok {
			return Unknown
		}
		return HWP5x

	case bytes.HasPrefix(head[:n], hwpSignature):
		return HWP3x

	default:
		return Unknown
	}
}

// TriageFile classifies one file and records its size alongside.
func TriageFile(path string) Result {
	format := Detect(path)

	var size int64
	if info, err := os.Stat(path); err == nil {
		size = info.Size()
	}

	notes := map[Format]string{
		HWP3x:   "legacy 3.x format, external converter required",
		HWP5x:   "extractable",
		HWPX:    "extractable",
		Unknown: "unrecognized format",
	}

	return Result{Path: path, Format: format, Size: size, Note: notes[format]}
}

// Summary aggregates a triage pass over many files.
type Summary struct {
	Total       int
	Counts      map[Format]int
	Processable int
	Skipped     int
	Results     []Result
}

// TriageFiles classifies every path and aggregates the counts.
func TriageFiles(paths []string) Summary {
	summary := Summary{Counts: make(map[Format]int)}
	for _, path := range paths {
		result := TriageFile(path)
		summary.Results = append(summary.Results, result)
		summary.Counts[result.Format]++
		summary.Total++
		if result.Format.Processable() {
			summary.Processable++
		} else {
			summary.Skipped++
		}
	}
	return summary
}

func isHWPXContainer(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	zr, err := zip.NewReader(f, info.Size())
	if err != nil {
		return false
	}

	if mt, err := zr.Open("mimetype"); err == nil {
		data, readErr := io.ReadAll(mt)
		mt.Close()
		if readErr == nil && string(data) == "application/hwp+zip" {
			return true
		}
	}

	for _, entry := range zr.File {
		if entry.Name == "Contents/section0.xml" || entry.Name == "Contents/content.hpf" {
			return true
		}
	}
	return false
}

// confirmHWP5 reports whether the container's FileHeader carries the HWP
// signature. decided is false when the container or stream could not be
// read at all, leaving the caller to give the file the benefit of the
// doubt.
func confirmHWP5(f *os.File) (ok, decided bool) {
	doc, err := mscfb.New(f)
	if err != nil {
		return false, false
	}
	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		if entry.Name != "FileHeader" || len(entry.Path) != 0 {
			continue
		}
		var sig [17]byte
		if _, err := io.ReadFull(doc, sig[:]); err != nil {
			return false, false
		}
		return bytes.Equal(sig[:], hwpSignature), true
	}
	return false, false
}
