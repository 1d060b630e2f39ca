package nds

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/ndsboot/key1"
	"github.com/stretchr/testify/require"
)

// buildImage returns a cartridge image with the boot code placed at offset
func buildImage(offset uint32, words []uint64) []byte {
	b := make([]byte, int(offset)+len(words)*8)

	copy(b[0x00:0x0c], "POKEMON D")
	copy(b[0x0c:0x10], "ADAE")
	copy(b[0x10:0x12], "01")
	b[0x12] = byte(NDS)
	binary.LittleEndian.PutUint32(b[0x20:], offset)
	binary.LittleEndian.PutUint32(b[0x24:], 0x02000800)
	binary.LittleEndian.PutUint32(b[0x28:], 0x02000000)
	binary.LittleEndian.PutUint32(b[0x2c:], uint32(len(words)))

	for i, w := range words {
		binary.LittleEndian.PutUint64(b[int(offset)+i*8:], w)
	}

	return b
}

func loadTable(t *testing.T) *key1.KeyTable {
	t.Helper()

	f, err := os.Open(filepath.Join("testdata", "encr_data.bin"))
	require.NoError(t, err)
	defer f.Close()

	kt, err := key1.Load(f)
	require.NoError(t, err)

	return kt
}
