package nds

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

// secureArea returns a secure area filled with a fixed pattern and the
// checksum stored at 0x0e
func secureArea(crc uint16) []uint64 {
	b := make([]byte, SecureAreaSize)
	for i := range b {
		b[i] = byte(i*7 + 3)
	}
	binary.LittleEndian.PutUint64(b, Sentinel)
	binary.LittleEndian.PutUint16(b[crcOffset:], crc)

	words := make([]uint64, SecureAreaSize/8)
	for i := range words {
		words[i] = binary.LittleEndian.Uint64(b[i*8:])
	}

	return words
}

func TestCRC16(t *testing.T) {
	assert.Equal(t, uint16(0x4b37), CRC16([]byte("123456789")))
}

func TestCheckSecureAreaCRC(t *testing.T) {
	b := make([]byte, SecureAreaSize-crcStart)
	for i := range b {
		b[i] = byte(i)
	}

	ok, crc := CheckSecureAreaCRC(0xd128, b)
	assert.True(t, ok)
	assert.Equal(t, uint16(0xd128), crc)

	ok, crc = CheckSecureAreaCRC(0x1234, b)
	assert.False(t, ok)
	assert.Equal(t, uint16(0xd128), crc)
}

func TestCheckSecureAreaCRCLength(t *testing.T) {
	for _, n := range []int{0, SecureAreaSize - crcStart - 1, SecureAreaSize - crcStart + 1, SecureAreaSize} {
		assert.Panics(t, func() {
			CheckSecureAreaCRC(0, make([]byte, n))
		}, n)
	}
}

func TestVerifyChecksum(t *testing.T) {
	b := NewBootCode(SecureAreaStart, secureArea(0x4add))
	ok, crc := b.VerifyChecksum()
	assert.True(t, ok)
	assert.Equal(t, uint16(0x4add), crc)

	b = NewBootCode(SecureAreaStart, secureArea(0x0000))
	ok, crc = b.VerifyChecksum()
	assert.False(t, ok)
	assert.Equal(t, uint16(0x4add), crc)
}

func TestFixChecksum(t *testing.T) {
	b := NewBootCode(SecureAreaStart, secureArea(0x0000))
	second := b.Words[1]

	assert.Equal(t, uint16(0x4add), b.FixChecksum())
	assert.Equal(t, uint16(0x4add), b.Checksum())
	assert.Equal(t, second&0x0000ffffffffffff, b.Words[1]&0x0000ffffffffffff)

	ok, _ := b.VerifyChecksum()
	assert.True(t, ok)
}
