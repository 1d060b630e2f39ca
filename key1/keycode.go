package key1

import "math/bits"

// Keycode is the title-specific seed derived from a cartridge game code
type Keycode [3]uint32

// NewKeycode returns the keycode for the game code
func NewKeycode(code uint32) Keycode {
	return Keycode{code, code >> 1, code << 1}
}

// slot returns the overlapping 64-bit block starting at word i
func (k *Keycode) slot(i int) uint64 {
	return uint64(k[i]) | uint64(k[i+1])<<32
}

func (k *Keycode) setSlot(i int, v uint64) {
	k[i], k[i+1] = uint32(v), uint32(v>>32)
}

// Apply mutates the table using the keycode. The keycode is also modified
// as a side effect
func (t *KeyTable) Apply(k *Keycode) {
	// The two blocks share word 1
	k.setSlot(1, t.Encrypt(k.slot(1)))
	k.setSlot(0, t.Encrypt(k.slot(0)))

	for i := 0; i < 12; i++ {
		t[pArray+i] ^= bits.ReverseBytes32(k[i%2])
	}

	var scratch uint64
	for i := 0; i <= 130; i += 2 {
		scratch = t.Encrypt(scratch)
		t[i], t[i+1] = uint32(scratch>>32), uint32(scratch)
	}
}

// Schedule returns a copy of base personalised for the game code at the
// given level. Level 1 and 2 apply the keycode once and twice respectively,
// level 3 adjusts the keycode and applies it a third time
func Schedule(base *KeyTable, code uint32, level int) *KeyTable {
	t := new(KeyTable)
	*t = *base

	k := NewKeycode(code)

	if level >= 1 {
		t.Apply(&k)
	}
	if level >= 2 {
		t.Apply(&k)
	}

	if level >= 3 {
		k[1] <<= 1
		k[2] >>= 1
		t.Apply(&k)
	}

	return t
}
