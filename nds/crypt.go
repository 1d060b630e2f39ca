package nds

import "github.com/bodgit/ndsboot/key1"

// magic is "encryObj", the first word of a correctly decrypted secure area
// before it is replaced with Sentinel
const magic uint64 = 0x6a624f7972636e65

func (b *BootCode) secureBlocks() int {
	if n := SecureAreaSize / 8; len(b.Words) > n {
		return n
	}
	return len(b.Words)
}

// DecryptSecureArea decrypts the secure area in place using base, the
// unmodified key table, personalised with the game code. The first block is
// decrypted with the level 2 schedule and then the whole area with the
// level 3 schedule. The result is only kept if it carries the expected
// magic, in which case the first block is replaced with Sentinel and true
// is returned; otherwise the boot code is left untouched. Nothing is done
// if there is no secure area or it is already decrypted
func (b *BootCode) DecryptSecureArea(base *key1.KeyTable, code uint32) bool {
	if !b.SecureAreaPresent || !b.SecureAreaEncrypted || len(b.Words) == 0 {
		return false
	}

	sa := make([]uint64, b.secureBlocks())
	copy(sa, b.Words)

	level2 := key1.Schedule(base, code, 2)
	sa[0] = level2.Decrypt(sa[0])

	level3 := key1.Schedule(base, code, 3)
	for i := range sa {
		sa[i] = level3.Decrypt(sa[i])
	}

	if sa[0] != magic {
		return false
	}

	sa[0] = Sentinel
	copy(b.Words, sa)
	b.SecureAreaEncrypted = false

	return true
}

// EncryptSecureArea is the inverse of DecryptSecureArea
func (b *BootCode) EncryptSecureArea(base *key1.KeyTable, code uint32) {
	if !b.SecureAreaPresent || b.SecureAreaEncrypted || len(b.Words) == 0 {
		return
	}

	if b.Words[0] == Sentinel {
		b.Words[0] = magic
	}

	level3 := key1.Schedule(base, code, 3)
	for i := 0; i < b.secureBlocks(); i++ {
		b.Words[i] = level3.Encrypt(b.Words[i])
	}

	level2 := key1.Schedule(base, code, 2)
	b.Words[0] = level2.Encrypt(b.Words[0])

	b.SecureAreaEncrypted = b.Words[0] != Sentinel
}
