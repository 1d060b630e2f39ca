// Package region defines the region codes found in a Nintendo DS cartridge
// header
package region

// Region is the region byte at offset 0x1D of the header
type Region uint8

// These are the values used by retail cartridges. Anything else is treated
// as normal by the console
const (
	Normal Region = 0x00
	Korea  Region = 0x40
	China  Region = 0x80
)

func (r Region) String() string {
	strings := map[Region]string{
		Normal: "Normal",
		Korea:  "Korea",
		China:  "China",
	}

	if s, ok := strings[r]; ok {
		return s
	}

	return "Unknown"
}

// Locked reports whether the console only boots the cartridge in its own
// region
func (r Region) Locked() bool {
	return r == Korea || r == China
}
