package nds

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bodgit/ndsboot/region"
)

const (
	// HeaderSize is the size of the part of the header that is decoded
	HeaderSize = 0x30
	// TitleLength is the length of the game title, it is zero-padded to
	// this size
	TitleLength = 12
)

// Header represents the first 48 bytes of a cartridge image. The fields
// are in on-disk order and no field is padded, so it is decoded with a
// single binary.Read. ARM9Size counts 64-bit words of boot code, not bytes
type Header struct {
	Title          [TitleLength]byte
	GameCode       uint32
	MakerCode      uint16
	Unit           Unit
	EncryptionSeed uint8
	DeviceCapacity uint8
	Reserved       [8]byte
	Region         region.Region
	Version        uint8
	Autostart      uint8
	ARM9Offset     uint32
	ARM9Entry      uint32
	ARM9Address    uint32
	ARM9Size       uint32
}

// ReadHeader decodes the header from the start of r
func ReadHeader(r io.ReadSeeker) (*Header, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	h := new(Header)
	if err := binary.Read(r, binary.LittleEndian, h); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("header: %w", ErrTruncatedInput)
		}
		return nil, err
	}

	return h, nil
}

// MarshalBinary encodes the header into binary form and returns the result
func (h *Header) MarshalBinary() ([]byte, error) {
	b := new(bytes.Buffer)
	// Writes to bytes.Buffer never error
	_ = binary.Write(b, binary.LittleEndian, h)

	return b.Bytes(), nil
}

// UnmarshalBinary decodes the header from binary form
func (h *Header) UnmarshalBinary(b []byte) error {
	hdr, err := ReadHeader(bytes.NewReader(b))
	if err != nil {
		return err
	}
	*h = *hdr

	return nil
}

// TitleString returns the game title with any padding removed
func (h *Header) TitleString() string {
	return strings.TrimRight(string(h.Title[:]), "\x00")
}

// Code returns the four character game code
func (h *Header) Code() string {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, h.GameCode)

	return string(b)
}

// Maker returns the two character maker code
func (h *Header) Maker() string {
	return string([]byte{byte(h.MakerCode), byte(h.MakerCode >> 8)})
}

func (h Header) String() string {
	return fmt.Sprintf("%s, %s, %s, %s", h.TitleString(), h.Code(), h.Maker(), h.Unit)
}
