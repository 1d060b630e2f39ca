/*
Package nds reads the header and ARM9 boot code of a Nintendo DS cartridge
image, and handles the KEY1 encrypted secure area at the start of the boot
code.
*/
package nds

import (
	"errors"

	"github.com/bodgit/ndsboot/key1"
)

const (
	// Extension is the conventional file extension used
	Extension = ".nds"
)

var (
	// ErrTruncatedInput is returned when the image is shorter than the
	// header or the boot code it declares
	ErrTruncatedInput = key1.ErrTruncatedInput
	// ErrUnsupportedLayout is returned when the boot code does not start
	// at the one supported offset
	ErrUnsupportedLayout = errors.New("unsupported layout")

	errROMNotFound = errors.New("nds: no " + Extension + " file in archive")
)
