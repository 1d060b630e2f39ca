package key1

// Direction selects whether Crypt encrypts or decrypts
type Direction bool

// Encrypt and Decrypt are the two directions of the cipher
const (
	Encrypt Direction = true
	Decrypt Direction = false
)

func (d Direction) String() string {
	if d == Encrypt {
		return "encrypt"
	}
	return "decrypt"
}

func (t *KeyTable) round(x, y uint32, p uint32) (uint32, uint32) {
	z := p ^ x
	x = t[sBox0+(z>>24)&0xff]
	x = t[sBox1+(z>>16)&0xff] + x
	x = t[sBox2+(z>>8)&0xff] ^ x
	x = t[sBox3+z&0xff] + x

	return y ^ x, z
}

// Crypt transforms a single 64-bit block in the given direction. The low
// 32 bits of the block feed the first round
func (t *KeyTable) Crypt(block uint64, d Direction) uint64 {
	x, y := uint32(block), uint32(block>>32)

	if d == Encrypt {
		for i := 0; i < 16; i++ {
			x, y = t.round(x, y, t[pArray+i])
		}
		// P16 goes on x, the half last produced by a round, or decryption
		// can't invert it
		x ^= t[pArray+16]
		y ^= t[pArray+17]
	} else {
		for i := 17; i > 1; i-- {
			x, y = t.round(x, y, t[pArray+i])
		}
		x ^= t[pArray+1]
		y ^= t[pArray+0]
	}

	return uint64(y) | uint64(x)<<32
}

// Encrypt encrypts a single 64-bit block
func (t *KeyTable) Encrypt(block uint64) uint64 {
	return t.Crypt(block, Encrypt)
}

// Decrypt decrypts a single 64-bit block
func (t *KeyTable) Decrypt(block uint64) uint64 {
	return t.Crypt(block, Decrypt)
}
