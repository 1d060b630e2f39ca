package nds

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/bodgit/plumbing"
)

const (
	// SecureAreaStart is the lowest boot code offset that has a secure area
	SecureAreaStart = 0x4000
	// SecureAreaEnd is the first boot code offset past the secure area range
	SecureAreaEnd = 0x8000
	// SecureAreaSize is the size of the secure area in bytes
	SecureAreaSize = 0x800
	// Sentinel is the first word of a secure area that has been decrypted
	Sentinel uint64 = 0xe7ffdeffe7ffdeff
)

const (
	crcOffset = 0x0e
	crcStart  = 0x10
)

// BootCode is the ARM9 boot code as read from the cartridge image
type BootCode struct {
	Words               []uint64
	SecureAreaPresent   bool
	SecureAreaEncrypted bool
}

// NewBootCode returns boot code for words read from offset, classifying the
// secure area
func NewBootCode(offset uint32, words []uint64) *BootCode {
	return &BootCode{
		Words:               words,
		SecureAreaPresent:   offset >= SecureAreaStart && offset < SecureAreaEnd,
		SecureAreaEncrypted: len(words) > 0 && words[0] != Sentinel,
	}
}

// ReadBootCode reads the boot code described by h from r. Only boot code
// starting exactly at SecureAreaStart is supported
func ReadBootCode(h *Header, r io.ReadSeeker) (*BootCode, error) {
	if h.ARM9Offset != SecureAreaStart {
		return nil, fmt.Errorf("%w: ARM9 offset %#x", ErrUnsupportedLayout, h.ARM9Offset)
	}

	end, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}

	if end < int64(h.ARM9Offset)+int64(h.ARM9Size)*8 {
		return nil, fmt.Errorf("boot code: %w", ErrTruncatedInput)
	}

	if _, err := r.Seek(int64(h.ARM9Offset), io.SeekStart); err != nil {
		return nil, err
	}

	words := make([]uint64, h.ARM9Size)
	if err := binary.Read(r, binary.LittleEndian, words); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("boot code: %w", ErrTruncatedInput)
		}
		return nil, err
	}

	return NewBootCode(h.ARM9Offset, words), nil
}

// Bytes returns the boot code as little-endian bytes
func (b *BootCode) Bytes() []byte {
	buf := make([]byte, len(b.Words)*8)
	for i, w := range b.Words {
		binary.LittleEndian.PutUint64(buf[i*8:], w)
	}

	return buf
}

// WriteTo writes the boot code to w exactly as it would appear in the
// cartridge image
func (b *BootCode) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.Bytes())

	return int64(n), err
}

// SecureArea returns the first SecureAreaSize bytes of the boot code. Boot
// code shorter than that is padded with zeroes
func (b *BootCode) SecureArea() []byte {
	// Reads from bytes.Reader never error
	sa, _ := ioutil.ReadAll(plumbing.PaddedReader(bytes.NewReader(b.Bytes()), SecureAreaSize, 0))

	return sa
}

// Checksum returns the checksum stored in the secure area
func (b *BootCode) Checksum() uint16 {
	return binary.LittleEndian.Uint16(b.SecureArea()[crcOffset:])
}

// VerifyChecksum reports whether the stored checksum matches the contents
// of the secure area, along with the correct value
func (b *BootCode) VerifyChecksum() (bool, uint16) {
	sa := b.SecureArea()

	return CheckSecureAreaCRC(binary.LittleEndian.Uint16(sa[crcOffset:]), sa[crcStart:])
}

// FixChecksum stores the correct checksum in the secure area and returns it
func (b *BootCode) FixChecksum() uint16 {
	_, crc := b.VerifyChecksum()

	// The checksum is the top 16 bits of the second word
	if len(b.Words) > 1 {
		b.Words[1] = b.Words[1]&^(0xffff<<48) | uint64(crc)<<48
	}

	return crc
}
