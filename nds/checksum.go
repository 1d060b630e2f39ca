package nds

import (
	"fmt"

	"github.com/sigurn/crc16"
)

// The BIOS GetCRC16 routine is CRC-16/MODBUS
var crcTable = crc16.MakeTable(crc16.CRC16_MODBUS)

// CRC16 returns the checksum of b as computed by the console BIOS
func CRC16(b []byte) uint16 {
	return crc16.Checksum(b, crcTable)
}

// CheckSecureAreaCRC compares crc against the checksum of b, which must be
// bytes 0x10 to 0x800 of the secure area. The correct checksum is returned
// either way so it can be written back when repacking
func CheckSecureAreaCRC(crc uint16, b []byte) (bool, uint16) {
	if len(b) != SecureAreaSize-crcStart {
		panic(fmt.Sprintf("nds: secure area checksum needs %#x bytes, got %#x", SecureAreaSize-crcStart, len(b)))
	}

	actual := CRC16(b)

	return actual == crc, actual
}
