// Package vlq decodes variable-length quantities in the base-128
// encoding: groups of one continuation bit and seven value bits, repeated
// while the continuation bit is set. Both group orders are provided —
// most significant group first (MIDI, DWARF forms) and least significant
// group first (protobuf varints, DWARF LEB128).
package vlq

import (
	"fmt"

	"github.com/Brecert/kaitai-impl/runtime"
)

// MaxGroups bounds a quantity to 8 groups, 56 value bits. A ninth
// continuation group fails the read.
const MaxGroups = 8

// Group is one byte of a quantity: a continuation flag in the high bit
// and seven value bits below it.
type Group struct {
	raw byte
}

// HasNext reports whether another group follows this one.
func (g Group) HasNext() bool {
	return g.raw&0x80 != 0
}

// ValueBits returns the seven data bits of the group.
func (g Group) ValueBits() byte {
	return g.raw & 0x7f
}

func readGroups(io *runtime.Stream) ([]Group, error) {
	var groups []Group
	for {
		b, err := io.ReadUint8()
		if err != nil {
			return nil, err
		}
		groups = append(groups, Group{raw: b})
		if b&0x80 == 0 {
			return groups, nil
		}
		if len(groups) == MaxGroups {
			return nil, fmt.Errorf("vlq: quantity exceeds %d groups", MaxGroups)
		}
	}
}

// VlqBase128Be is a quantity whose first group carries the most
// significant bits.
type VlqBase128Be struct {
	Groups []Group

	io     *runtime.Stream
	parent interface{}
	root   interface{}
}

// NewVlqBase128Be creates an empty quantity; Read fills it.
func NewVlqBase128Be() *VlqBase128Be {
	return &VlqBase128Be{}
}

// Read pulls groups from the stream until one without a continuation bit.
func (v *VlqBase128Be) Read(io *runtime.Stream, parent, root interface{}) error {
	if root == nil {
		root = v
	}
	v.io, v.parent, v.root = io, parent, root
	groups, err := readGroups(io)
	if err != nil {
		return err
	}
	v.Groups = groups
	return nil
}

// Value returns the decoded quantity.
func (v *VlqBase128Be) Value() uint64 {
	var out uint64
	for _, g := range v.Groups {
		out = (out << 7) | uint64(g.ValueBits())
	}
	return out
}

// VlqBase128Le is a quantity whose first group carries the least
// significant bits.
type VlqBase128Le struct {
	Groups []Group

	io     *runtime.Stream
	parent interface{}
	root   interface{}
}

// NewVlqBase128Le creates an empty quantity; Read fills it.
func NewVlqBase128Le() *VlqBase128Le {
	return &VlqBase128Le{}
}

// Read pulls groups from the stream until one without a continuation bit.
func (v *VlqBase128Le) Read(io *runtime.Stream, parent, root interface{}) error {
	if root == nil {
		root = v
	}
	v.io, v.parent, v.root = io, parent, root
	groups, err := readGroups(io)
	if err != nil {
		return err
	}
	v.Groups = groups
	return nil
}

// Value returns the decoded quantity.
func (v *VlqBase128Le) Value() uint64 {
	var out uint64
	for i, g := range v.Groups {
		out |= uint64(g.ValueBits()) << (7 * i)
	}
	return out
}
