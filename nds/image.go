package nds

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Image is a decoded cartridge image
type Image struct {
	Header   *Header
	BootCode *BootCode
}

// Read decodes the header and boot code from r
func Read(r io.ReadSeeker) (*Image, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}

	b, err := ReadBootCode(h, r)
	if err != nil {
		return nil, err
	}

	return &Image{
		Header:   h,
		BootCode: b,
	}, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

type imageOpener interface {
	open() (io.ReadSeeker, io.Closer, error)
}

type zipOpener struct {
	path string
}

func (zo zipOpener) open() (io.ReadSeeker, io.Closer, error) {
	z, err := zip.OpenReader(zo.path)
	if err != nil {
		return nil, nil, err
	}
	defer z.Close()

	for _, f := range z.File {
		if !strings.EqualFold(filepath.Ext(f.Name), Extension) {
			continue
		}

		t, err := f.Open()
		if err != nil {
			return nil, nil, err
		}
		defer t.Close()

		// Archive members can't seek
		b := new(bytes.Buffer)

		if _, err := io.Copy(b, t); err != nil {
			return nil, nil, err
		}

		return bytes.NewReader(b.Bytes()), nopCloser{}, nil
	}

	return nil, nil, errROMNotFound
}

type fileOpener struct {
	path string
}

func (fo fileOpener) open() (io.ReadSeeker, io.Closer, error) {
	f, err := os.Open(fo.path)
	if err != nil {
		return nil, nil, err
	}

	return f, f, nil
}

// Open decodes the cartridge image at path, which is either a raw image or
// a zip file containing one
func Open(path string) (*Image, error) {
	mime, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, err
	}

	var o imageOpener

	switch mime.Extension() {
	case ".zip":
		o = zipOpener{path}
	default:
		o = fileOpener{path}
	}

	r, c, err := o.open()
	if err != nil {
		return nil, err
	}
	defer c.Close()

	return Read(r)
}
