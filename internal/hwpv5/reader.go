package hwpv5

import (
	"compress/flate"
	"crypto/aes"
	"encoding/binary"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"

	"github.com/richardlehane/mscfb"
)

// defaultMaxExpansionRatio bounds how far a section stream may expand under
// DEFLATE before decompression is aborted with ErrDecodeLimit (§4.2).
const defaultMaxExpansionRatio = 100

var sectionStreamPattern = regexp.MustCompile(`^(BodyText|ViewText)/Section([0-9]+)$`)

// Reader wraps an open HWP 5.x document: the parsed FileHeader plus the set
// of body-section streams the container actually exposes.
type Reader struct {
	ra                io.ReaderAt
	Header            FileHeader
	sectionIndices    []int
	streamPrefix      string
	maxExpansionRatio int64
}

// OpenReader opens an HWP 5.x file and returns a Reader. It fails fast per
// §4.1/§7 on a bad signature or an encrypted document; the distributed flag
// is not fatal, it only changes which stream prefix sections are read from.
func OpenReader(ra io.ReaderAt) (*Reader, error) {
	r := &Reader{ra: ra, maxExpansionRatio: defaultMaxExpansionRatio}

	headerStream, _, err := r.openStream("FileHeader")
	if err != nil {
		return nil, fmt.Errorf("open FileHeader: %w", err)
	}
	r.Header, err = readFileHeader(headerStream)
	if err != nil {
		return nil, fmt.Errorf("read FileHeader: %w", err)
	}

	if r.Header.Properties.Distributed() {
		r.streamPrefix = "ViewText"
	} else {
		r.streamPrefix = "BodyText"
	}

	indices, err := r.listSectionIndices()
	if err != nil {
		return nil, err
	}
	if len(indices) == 0 {
		return nil, fmt.Errorf("no %s/Section streams found: %w", r.streamPrefix, ErrNotHWP5)
	}
	r.sectionIndices = indices

	return r, nil
}

// SetMaxExpansionRatio overrides the default 100x decompression guard.
func (r *Reader) SetMaxExpansionRatio(ratio int64) {
	if ratio > 0 {
		r.maxExpansionRatio = ratio
	}
}

// SectionIndices returns the natural-numeric section suffixes present in
// the container, ascending (§4.6) — not the lexicographic stream-name order
// the underlying container iterates in.
func (r *Reader) SectionIndices() []int {
	return r.sectionIndices
}

func (r *Reader) listSectionIndices() ([]int, error) {
	doc, err := mscfb.New(r.ra)
	if err != nil {
		return nil, fmt.Errorf("open container: %w", ErrIOError)
	}

	var names []string
	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		names = append(names, entryPath(entry))
	}
	return sectionIndicesFromNames(names, r.streamPrefix), nil
}

// sectionIndicesFromNames extracts the numeric suffixes of every
// <prefix>/Section{n} stream name and returns them ascending by numeric
// value — Section10 sorts after Section9, not after Section1 (§4.6).
func sectionIndicesFromNames(names []string, prefix string) []int {
	seen := make(map[int]bool)
	for _, name := range names {
		m := sectionStreamPattern.FindStringSubmatch(name)
		if m == nil || m[1] != prefix {
			continue
		}
		n, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		seen[n] = true
	}

	indices := make([]int, 0, len(seen))
	for n := range seen {
		indices = append(indices, n)
	}
	sort.Ints(indices)
	return indices
}

// openStream opens a named stream from the OLE container. The returned
// *mscfb.File carries the stream's raw byte length, used to bound
// decompression expansion.
func (r *Reader) openStream(name string) (io.Reader, *mscfb.File, error) {
	doc, err := mscfb.New(r.ra)
	if err != nil {
		return nil, nil, fmt.Errorf("open container: %w", ErrIOError)
	}

	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		if entryPath(entry) == name {
			return doc, entry, nil
		}
	}
	return nil, nil, fmt.Errorf("stream %s not found: %w", name, ErrIOError)
}

func entryPath(entry *mscfb.File) string {
	full := ""
	for _, p := range entry.Path {
		full += p + "/"
	}
	return full + entry.Name
}

// OpenSection opens a section stream by its numeric index, transparently
// decrypting a distribution document's ViewText stream and decompressing
// it per the FileHeader's compressed flag (§4.2).
func (r *Reader) OpenSection(index int) (io.ReadCloser, error) {
	streamName := fmt.Sprintf("%s/Section%d", r.streamPrefix, index)

	rawStream, entry, err := r.openStream(streamName)
	if err != nil {
		return nil, err
	}

	var currentReader io.Reader = rawStream

	if r.streamPrefix == "ViewText" {
		var hBuf [4]byte
		if _, err := io.ReadFull(currentReader, hBuf[:]); err != nil {
			return nil, fmt.Errorf("read distribution header: %w", ErrTruncated)
		}
		tagVal := binary.LittleEndian.Uint32(hBuf[:])
		tagID := uint16(tagVal & 0x3FF)
		size := tagVal >> 20

		const hwpTagDistributeDocData = 0x1C
		if tagID != hwpTagDistributeDocData || size != 256 {
			return nil, fmt.Errorf("invalid distribution document stream (tag=0x%x, size=%d): %w", tagID, size, ErrMalformedRecord)
		}

		distData := make([]byte, 256)
		if _, err := io.ReadFull(currentReader, distData); err != nil {
			return nil, fmt.Errorf("read distribution data: %w", ErrTruncated)
		}

		key, err := deriveDistKey(distData)
		if err != nil {
			return nil, fmt.Errorf("derive distribution key: %w", err)
		}
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("create cipher: %w", err)
		}
		currentReader = &distDecryptReader{src: currentReader, block: block}
	}

	if !r.Header.Properties.Compressed() {
		return io.NopCloser(currentReader), nil
	}

	inflated := flate.NewReader(currentReader)
	limit := int64(entry.Size) * r.maxExpansionRatio
	if limit <= 0 {
		limit = 1 << 20 * r.maxExpansionRatio
	}
	return &limitedCloser{r: inflated, closer: inflated, remaining: limit}, nil
}

// limitedCloser wraps a decompressing reader and fails with ErrDecodeLimit
// once more than `remaining` bytes have been produced, bounding pathological
// expansion ratios per §4.2.
type limitedCloser struct {
	r         io.Reader
	closer    io.Closer
	remaining int64
}

func (l *limitedCloser) Read(p []byte) (int, error) {
	if l.remaining <= 0 {
		// Output of exactly the limit is allowed; only a further byte fails.
		var probe [1]byte
		if _, err := io.ReadFull(l.r, probe[:]); err == io.EOF {
			return 0, io.EOF
		}
		return 0, fmt.Errorf("decompressed section exceeded expansion limit: %w", ErrDecodeLimit)
	}
	if int64(len(p)) > l.remaining {
		p = p[:l.remaining]
	}
	n, err := l.r.Read(p)
	l.remaining -= int64(n)
	return n, err
}

func (l *limitedCloser) Close() error {
	return l.closer.Close()
}
