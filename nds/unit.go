package nds

// Unit is the console family the cartridge targets
type Unit uint8

// These are the unit codes seen in cartridge headers
const (
	NDS    Unit = 0x00
	NDSDSi Unit = 0x02
	DSi    Unit = 0x03
)

func (u Unit) String() string {
	strings := map[Unit]string{
		NDS:    "NDS",
		NDSDSi: "NDS+DSi",
		DSi:    "DSi",
	}

	if s, ok := strings[u]; ok {
		return s
	}

	return "Unknown"
}
