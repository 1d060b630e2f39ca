/*
Package key1 implements the KEY1 cipher used to protect the secure area of
Nintendo DS cartridges. It is a Blowfish variant keyed by a table of 1042
words that is normally dumped from the console BIOS and then personalised
for each title.
*/
package key1

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

const (
	// Words is the number of 32-bit words in a key table
	Words = 1042
	// Size is the size of a key table in bytes
	Size = Words * 4
)

// Offsets of the P-array and the four S-boxes within a key table
const (
	pArray = 0x000
	sBox0  = 0x012
	sBox1  = 0x112
	sBox2  = 0x212
	sBox3  = 0x312
)

// ErrTruncatedInput is returned when a source holds fewer bytes than required
var ErrTruncatedInput = errors.New("truncated input")

// KeyTable is the P-array followed by the four S-boxes
type KeyTable [Words]uint32

// Load reads a key table from the start of r
func Load(r io.Reader) (*KeyTable, error) {
	t := new(KeyTable)
	if err := binary.Read(r, binary.LittleEndian, t); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrTruncatedInput
		}
		return nil, err
	}

	return t, nil
}

// MarshalBinary encodes the table into binary form and returns the result
func (t *KeyTable) MarshalBinary() ([]byte, error) {
	b := new(bytes.Buffer)
	// Writes to bytes.Buffer never error
	_ = binary.Write(b, binary.LittleEndian, t)

	return b.Bytes(), nil
}

// UnmarshalBinary decodes the table from binary form
func (t *KeyTable) UnmarshalBinary(b []byte) error {
	if len(b) < Size {
		return ErrTruncatedInput
	}

	for i := range t {
		t[i] = binary.LittleEndian.Uint32(b[i*4:])
	}

	return nil
}
