// Package ogg parses the page layer of an Ogg container. A physical
// stream is a sequence of pages, each carrying a CRC-protected header, a
// lacing table, and the segment payloads the table describes.
package ogg

import (
	"github.com/Brecert/kaitai-impl/runtime"
)

var capturePattern = []byte{0x4f, 0x67, 0x67, 0x53} // "OggS"

// File is a whole physical stream: pages until end of input.
type File struct {
	Pages []*Page

	io     *runtime.Stream
	parent interface{}
	root   interface{}
}

// NewFile creates an empty file node; Read fills it.
func NewFile() *File {
	return &File{}
}

// Read parses pages until the stream is exhausted.
func (f *File) Read(io *runtime.Stream, parent, root interface{}) error {
	if root == nil {
		root = f
	}
	f.io, f.parent, f.root = io, parent, root
	for !io.IsEOF() {
		page := NewPage()
		if err := page.Read(io, f, root); err != nil {
			return err
		}
		f.Pages = append(f.Pages, page)
	}
	return nil
}

// Page is one Ogg page: header, lacing table, segment payloads.
type Page struct {
	Version       uint8
	Continuation  bool // payload continues a packet from the previous page
	FirstPage     bool // beginning of stream
	LastPage      bool // end of stream
	GranulePos    int64
	SerialNumber  uint32
	SequenceIndex uint32
	Checksum      uint32
	LacingSizes   []uint8
	Segments      [][]byte

	io     *runtime.Stream
	parent interface{}
	root   interface{}
}

// NewPage creates an empty page node; Read fills it.
func NewPage() *Page {
	return &Page{}
}

// Read parses one page starting at the capture pattern.
func (p *Page) Read(io *runtime.Stream, parent, root interface{}) error {
	if root == nil {
		root = p
	}
	p.io, p.parent, p.root = io, parent, root

	if _, err := io.EnsureFixedContents(capturePattern); err != nil {
		return err
	}
	version, err := io.ReadUint8()
	if err != nil {
		return err
	}
	p.Version = version

	// Header type flags occupy the low three bits of the next byte.
	cont, err := io.ReadBitsIntLe(1)
	if err != nil {
		return err
	}
	first, err := io.ReadBitsIntLe(1)
	if err != nil {
		return err
	}
	last, err := io.ReadBitsIntLe(1)
	if err != nil {
		return err
	}
	if _, err := io.ReadBitsIntLe(5); err != nil {
		return err
	}
	io.AlignToByte()
	p.Continuation = cont != 0
	p.FirstPage = first != 0
	p.LastPage = last != 0

	if p.GranulePos, err = io.ReadInt64(runtime.LittleEndian); err != nil {
		return err
	}
	if p.SerialNumber, err = io.ReadUint32(runtime.LittleEndian); err != nil {
		return err
	}
	if p.SequenceIndex, err = io.ReadUint32(runtime.LittleEndian); err != nil {
		return err
	}
	if p.Checksum, err = io.ReadUint32(runtime.LittleEndian); err != nil {
		return err
	}
	numSegments, err := io.ReadUint8()
	if err != nil {
		return err
	}
	p.LacingSizes = make([]uint8, numSegments)
	for i := range p.LacingSizes {
		if p.LacingSizes[i], err = io.ReadUint8(); err != nil {
			return err
		}
	}
	p.Segments = make([][]byte, numSegments)
	for i, size := range p.LacingSizes {
		if p.Segments[i], err = io.ReadBytes(int(size)); err != nil {
			return err
		}
	}
	return nil
}
