package hwpv5

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/seunghyuoffice-design/hwp2yaml/internal/document"
)

const (
	signatureText   = "HWP Document File"
	fileHeaderBytes = 256
)

// Version is an alias of the shared document.Version so callers never have
// to convert between packages.
type Version = document.Version

// FileProperties exposes the flags carried in the FileHeader stream: bit 0
// compressed, bit 1 encrypted, bit 2 distributed.
type FileProperties struct {
	Raw uint32
}

func (p FileProperties) Compressed() bool  { return p.Raw&0x1 != 0 }
func (p FileProperties) Encrypted() bool   { return p.Raw&0x2 != 0 }
func (p FileProperties) Distributed() bool { return p.Raw&0x4 != 0 }

// FileHeader mirrors the 256-byte FileHeader stream.
type FileHeader struct {
	Signature       string
	Version         Version
	Properties      FileProperties
	SecondFlags     uint32
	EncryptVersion  uint32
	KoglLicenseCode byte
	Reserved        [207]byte
}

// readFileHeader decodes the fixed 256-byte FileHeader stream. The version
// word packs (build, rev, minor, major) from low byte to high byte.
func readFileHeader(r io.Reader) (FileHeader, error) {
	var hdr FileHeader

	var sig [32]byte
	if _, err := io.ReadFull(r, sig[:]); err != nil {
		return hdr, fmt.Errorf("read signature: %w", ErrIOError)
	}
	hdr.Signature = string(bytes.TrimRight(sig[:], "\x00"))
	if hdr.Signature != signatureText {
		return hdr, fmt.Errorf("signature %q: %w", hdr.Signature, ErrNotHWP5)
	}

	var ver uint32
	if err := binary.Read(r, binary.LittleEndian, &ver); err != nil {
		return hdr, fmt.Errorf("read version: %w", ErrTruncated)
	}
	hdr.Version = Version{
		Major: byte(ver >> 24),
		Minor: byte(ver >> 16),
		Rev:   byte(ver >> 8),
		Build: byte(ver),
	}

	if err := binary.Read(r, binary.LittleEndian, &hdr.Properties.Raw); err != nil {
		return hdr, fmt.Errorf("read properties: %w", ErrTruncated)
	}
	if err := binary.Read(r, binary.LittleEndian, &hdr.SecondFlags); err != nil {
		return hdr, fmt.Errorf("read second properties: %w", ErrTruncated)
	}
	if err := binary.Read(r, binary.LittleEndian, &hdr.EncryptVersion); err != nil {
		return hdr, fmt.Errorf("read encrypt version: %w", ErrTruncated)
	}
	if err := binary.Read(r, binary.LittleEndian, &hdr.KoglLicenseCode); err != nil {
		return hdr, fmt.Errorf("read kogl: %w", ErrTruncated)
	}
	if _, err := io.ReadFull(r, hdr.Reserved[:]); err != nil {
		return hdr, fmt.Errorf("read reserved: %w", ErrTruncated)
	}

	if hdr.Properties.Encrypted() {
		return hdr, ErrEncrypted
	}

	return hdr, nil
}
