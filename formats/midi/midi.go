// Package midi parses Standard MIDI Files: a header chunk followed by
// track chunks, each track a sequence of delta-timed events. Delta times
// and meta lengths use the base-128 variable-length quantity with the
// most significant group first.
package midi

import (
	"fmt"

	"github.com/Brecert/kaitai-impl/formats/vlq"
	"github.com/Brecert/kaitai-impl/runtime"
)

var (
	headerMagic = []byte{0x4d, 0x54, 0x68, 0x64} // "MThd"
	trackMagic  = []byte{0x4d, 0x54, 0x72, 0x6b} // "MTrk"
)

// Meta event types this package gives names to; the full set lives in the
// SMF specification and unknown types pass through as raw bodies.
const (
	MetaEndOfTrack = 0x2f
	MetaTempo      = 0x51
	MetaTimeSig    = 0x58
)

// File is a whole Standard MIDI File.
type File struct {
	Format    uint16
	NumTracks uint16
	Division  int16
	Tracks    []*Track

	io     *runtime.Stream
	parent interface{}
	root   interface{}
}

// NewFile creates an empty file node; Read fills it.
func NewFile() *File {
	return &File{}
}

// Read parses the header chunk and every track chunk it announces.
func (f *File) Read(io *runtime.Stream, parent, root interface{}) error {
	if root == nil {
		root = f
	}
	f.io, f.parent, f.root = io, parent, root

	if _, err := io.EnsureFixedContents(headerMagic); err != nil {
		return err
	}
	headerLen, err := io.ReadUint32(runtime.BigEndian)
	if err != nil {
		return err
	}
	if headerLen < 6 {
		return &runtime.ValidationLessThanError{Min: uint32(6), Actual: headerLen}
	}
	if f.Format, err = io.ReadUint16(runtime.BigEndian); err != nil {
		return err
	}
	if f.NumTracks, err = io.ReadUint16(runtime.BigEndian); err != nil {
		return err
	}
	if f.Division, err = io.ReadInt16(runtime.BigEndian); err != nil {
		return err
	}
	// Headers longer than 6 bytes are legal; the excess is ignored.
	if _, err := io.ReadBytes(int(headerLen) - 6); err != nil {
		return err
	}

	f.Tracks = make([]*Track, f.NumTracks)
	for i := range f.Tracks {
		track := NewTrack()
		if err := track.Read(io, f, root); err != nil {
			return err
		}
		f.Tracks[i] = track
	}
	return nil
}

// Track is one MTrk chunk. Its events are parsed from a sub-stream over
// the chunk body, so a malformed event cannot run into the next chunk.
type Track struct {
	Events []*Event

	io     *runtime.Stream
	parent interface{}
	root   interface{}
}

// NewTrack creates an empty track node; Read fills it.
func NewTrack() *Track {
	return &Track{}
}

// Read parses the chunk header and the event list it frames.
func (t *Track) Read(io *runtime.Stream, parent, root interface{}) error {
	if root == nil {
		root = t
	}
	t.io, t.parent, t.root = io, parent, root

	if _, err := io.EnsureFixedContents(trackMagic); err != nil {
		return err
	}
	length, err := io.ReadUint32(runtime.BigEndian)
	if err != nil {
		return err
	}
	body, err := io.ReadBytes(int(length))
	if err != nil {
		return err
	}

	events := runtime.NewStream(body)
	var running byte
	for !events.IsEOF() {
		event := &Event{}
		if err := event.read(events, t, root, &running); err != nil {
			return err
		}
		t.Events = append(t.Events, event)
	}
	return nil
}

// Event is one delta-timed track event. Channel messages carry their
// data bytes in Data; meta and sysex events carry their payload in Body.
type Event struct {
	DeltaTime uint64
	Status    byte
	Channel   byte   // channel messages only
	Data      []byte // channel message data bytes
	MetaType  byte   // meta events only
	Body      []byte // meta and sysex payload
}

// channelDataLen returns the number of data bytes a channel message
// status implies. Program change and channel pressure take one; the rest
// take two.
func channelDataLen(status byte) int {
	switch status & 0xf0 {
	case 0xc0, 0xd0:
		return 1
	default:
		return 2
	}
}

func (e *Event) read(io *runtime.Stream, parent, root interface{}, running *byte) error {
	delta := vlq.NewVlqBase128Be()
	if err := delta.Read(io, parent, root); err != nil {
		return err
	}
	e.DeltaTime = delta.Value()

	b, err := io.ReadUint8()
	if err != nil {
		return err
	}

	switch {
	case b == 0xff:
		*running = 0
		return e.readMeta(io)
	case b == 0xf0 || b == 0xf7:
		*running = 0
		e.Status = b
		e.Body, err = readPrefixed(io, parent, root)
		return err
	case b >= 0x80:
		*running = b
		e.Status = b
		e.Channel = b & 0x0f
		e.Data, err = io.ReadBytes(channelDataLen(b))
		return err
	default:
		// Running status: b is already the first data byte of a repeated
		// channel message.
		if *running == 0 {
			return fmt.Errorf("midi: data byte 0x%02x with no running status", b)
		}
		e.Status = *running
		e.Channel = *running & 0x0f
		rest, err := io.ReadBytes(channelDataLen(*running) - 1)
		if err != nil {
			return err
		}
		e.Data = append([]byte{b}, rest...)
		return nil
	}
}

func (e *Event) readMeta(io *runtime.Stream) error {
	e.Status = 0xff
	metaType, err := io.ReadUint8()
	if err != nil {
		return err
	}
	e.MetaType = metaType
	e.Body, err = readPrefixed(io, nil, nil)
	return err
}

// readPrefixed reads a VLQ length followed by that many payload bytes.
func readPrefixed(io *runtime.Stream, parent, root interface{}) ([]byte, error) {
	length := vlq.NewVlqBase128Be()
	if err := length.Read(io, parent, root); err != nil {
		return nil, err
	}
	return io.ReadBytes(int(length.Value()))
}
