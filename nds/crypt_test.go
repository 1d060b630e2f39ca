package nds

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const testCode = 0x45505841

// plainBootCode returns decrypted boot code extending past the secure area
func plainBootCode() []uint64 {
	words := make([]uint64, 0x110)
	words[0] = Sentinel
	for i := 1; i < len(words); i++ {
		words[i] = uint64(i) * 0x0101010101010101
	}

	return words
}

func TestDecryptSecureArea(t *testing.T) {
	kt := loadTable(t)

	words := plainBootCode()
	words[0] = 0xaee4b7b0cab4f850
	words[1] = 0xa9483a723bfbd33b
	words[0xff] = 0x5301b0f9247c3fa3

	b := NewBootCode(SecureAreaStart, words)
	assert.True(t, b.SecureAreaEncrypted)

	// Blocks are independent so only the pinned words are checked
	assert.True(t, b.DecryptSecureArea(kt, testCode))
	assert.False(t, b.SecureAreaEncrypted)
	assert.Equal(t, Sentinel, b.Words[0])
	assert.Equal(t, uint64(0x0101010101010101), b.Words[1])
	assert.Equal(t, uint64(0xff)*0x0101010101010101, b.Words[0xff])
	assert.Equal(t, plainBootCode()[0x100], b.Words[0x100])
}

func TestSecureAreaRoundTrip(t *testing.T) {
	kt := loadTable(t)
	before := *kt

	b := NewBootCode(SecureAreaStart, plainBootCode())
	assert.False(t, b.SecureAreaEncrypted)

	b.EncryptSecureArea(kt, testCode)
	assert.True(t, b.SecureAreaEncrypted)
	assert.Equal(t, uint64(0xaee4b7b0cab4f850), b.Words[0])
	assert.Equal(t, uint64(0xa9483a723bfbd33b), b.Words[1])
	assert.Equal(t, uint64(0x5301b0f9247c3fa3), b.Words[0xff])
	// Past the secure area is untouched
	assert.Equal(t, plainBootCode()[0x100:], b.Words[0x100:])

	assert.True(t, b.DecryptSecureArea(kt, testCode))
	assert.Equal(t, plainBootCode(), b.Words)

	assert.Equal(t, before, *kt)
}

func TestDecryptSecureAreaWrongCode(t *testing.T) {
	kt := loadTable(t)

	b := NewBootCode(SecureAreaStart, plainBootCode())
	b.EncryptSecureArea(kt, testCode)
	encrypted := append([]uint64(nil), b.Words...)

	assert.False(t, b.DecryptSecureArea(kt, testCode+1))
	assert.True(t, b.SecureAreaEncrypted)
	assert.Equal(t, encrypted, b.Words)

	// The right code still works afterwards
	assert.True(t, b.DecryptSecureArea(kt, testCode))
	assert.Equal(t, plainBootCode(), b.Words)
}

func TestDecryptSecureAreaSkipped(t *testing.T) {
	kt := loadTable(t)

	// Already decrypted
	b := NewBootCode(SecureAreaStart, plainBootCode())
	assert.False(t, b.DecryptSecureArea(kt, testCode))
	assert.Equal(t, plainBootCode(), b.Words)

	// No secure area
	b = NewBootCode(0x3000, []uint64{1, 2, 3})
	assert.False(t, b.DecryptSecureArea(kt, testCode))
	assert.Equal(t, []uint64{1, 2, 3}, b.Words)

	b.EncryptSecureArea(kt, testCode)
	assert.Equal(t, []uint64{1, 2, 3}, b.Words)
}

func TestSecureAreaShortBootCode(t *testing.T) {
	kt := loadTable(t)

	words := []uint64{Sentinel, 0x1111111111111111, 0x2222222222222222}
	b := NewBootCode(SecureAreaStart, append([]uint64(nil), words...))

	b.EncryptSecureArea(kt, testCode)
	assert.NotEqual(t, words, b.Words)

	assert.True(t, b.DecryptSecureArea(kt, testCode))
	assert.Equal(t, words, b.Words)
}
