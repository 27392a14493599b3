package vkscript

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
)

// BufferRole classifies what a buffer is attached to. Declaration order
// within a role is meaningful: the executor locates buffers by role plus
// declaration order, never by name.
type BufferRole uint8

// Buffer roles.
const (
	RoleUnknown BufferRole = iota
	RoleColor
	RoleDepth
	RoleIndex
	RoleVertex
	RoleStorage
	RoleUniform
)

// String returns the role name.
func (r BufferRole) String() string {
	switch r {
	case RoleColor:
		return "color"
	case RoleDepth:
		return "depth"
	case RoleIndex:
		return "index"
	case RoleVertex:
		return "vertex"
	case RoleStorage:
		return "storage"
	case RoleUniform:
		return "uniform"
	}
	return "unknown"
}

// Buffer owns a contiguous byte store laid out by a Format. Buffers are
// created by the parser for script-declared data and by the executor for
// capture targets; they are written with the SetData family and checked
// with the comparison methods. The byte store only ever grows: a write
// smaller than a previous allocation keeps the larger footprint.
type Buffer struct {
	role           BufferRole
	format         *Format
	location       uint32
	width          uint32
	height         uint32
	elementCount   uint32
	maxSizeInBytes uint32
	bytes          []byte
}

// NewBuffer creates an empty buffer with the given role.
func NewBuffer(role BufferRole) *Buffer {
	return &Buffer{role: role}
}

// Role returns the buffer's role.
func (b *Buffer) Role() BufferRole { return b.role }

// SetRole reclassifies the buffer.
func (b *Buffer) SetRole(role BufferRole) { b.role = role }

// Format returns the buffer's element format.
func (b *Buffer) Format() *Format { return b.format }

// SetFormat sets the buffer's element format.
func (b *Buffer) SetFormat(f *Format) { b.format = f }

// Location returns the vertex attribute location.
func (b *Buffer) Location() uint32 { return b.location }

// SetLocation sets the vertex attribute location.
func (b *Buffer) SetLocation(loc uint32) { b.location = loc }

// Width returns the width for image-shaped buffers.
func (b *Buffer) Width() uint32 { return b.width }

// SetWidth sets the width for image-shaped buffers.
func (b *Buffer) SetWidth(w uint32) { b.width = w }

// Height returns the height for image-shaped buffers.
func (b *Buffer) Height() uint32 { return b.height }

// SetHeight sets the height for image-shaped buffers.
func (b *Buffer) SetHeight(h uint32) { b.height = h }

// Extent returns the buffer's image extent for texture creation.
func (b *Buffer) Extent() gputypes.Extent3D {
	return gputypes.Extent3D{Width: b.width, Height: b.height, DepthOrArrayLayers: 1}
}

// ElementCount returns the number of format-sized elements stored.
func (b *Buffer) ElementCount() uint32 { return b.elementCount }

// ValueCount returns the number of input values the stored elements
// were built from.
func (b *Buffer) ValueCount() uint32 {
	if b.format == nil {
		return 0
	}
	if b.format.IsPacked() {
		return b.elementCount
	}
	return b.elementCount * b.format.InputNeededPerElement()
}

// setValueCount derives the element count from an input value count.
func (b *Buffer) setValueCount(count uint32) {
	if b.format.IsPacked() {
		b.elementCount = count
		return
	}
	b.elementCount = count / b.format.InputNeededPerElement()
}

// SizeInBytes returns the byte size covered by the stored elements.
func (b *Buffer) SizeInBytes() uint32 {
	if b.format == nil {
		return 0
	}
	return b.elementCount * b.format.SizeInBytes()
}

// MaxSizeInBytes returns the explicit size floor if one was set,
// otherwise the current element-derived size.
func (b *Buffer) MaxSizeInBytes() uint32 {
	if b.maxSizeInBytes != 0 {
		return b.maxSizeInBytes
	}
	return b.SizeInBytes()
}

// SetMaxSizeInBytes sets an explicit size floor. Once set, data writes
// grow the store up to or past the floor but never below it.
func (b *Buffer) SetMaxSizeInBytes(n uint32) {
	b.maxSizeInBytes = n
}

// Bytes returns the raw byte store.
func (b *Buffer) Bytes() []byte { return b.bytes }

// SetSizeInElements resizes the store to hold count elements. The store
// only grows; asking for fewer elements than are allocated keeps the
// existing footprint.
func (b *Buffer) SetSizeInElements(count uint32) {
	if count > b.elementCount {
		b.elementCount = count
	}
	b.grow(b.elementCount * b.format.SizeInBytes())
}

// SetSizeInBytes resizes the store to the given byte size, which must be
// a multiple of the format's element size. Growth-only, like all
// mutating buffer operations.
func (b *Buffer) SetSizeInBytes(n uint32) {
	if n%b.format.SizeInBytes() != 0 {
		panic("vkscript: buffer size is not a multiple of the element size")
	}
	if n/b.format.SizeInBytes() > b.elementCount {
		b.elementCount = n / b.format.SizeInBytes()
	}
	b.grow(b.elementCount * b.format.SizeInBytes())
}

// grow extends the byte store to at least n bytes. Shrinks never happen;
// a smaller n leaves the store untouched.
func (b *Buffer) grow(n uint32) {
	if int(n) <= len(b.bytes) {
		return
	}
	logger().Debug("buffer grow", "role", b.role.String(), "from", len(b.bytes), "to", n)
	grown := make([]byte, n)
	copy(grown, b.bytes)
	b.bytes = grown
}

// SetData packs the values into the byte store starting at offset 0.
func (b *Buffer) SetData(values []Value) error {
	return b.SetDataWithOffset(values, 0)
}

// RecalculateMaxSizeInBytes raises the size floor to cover the given
// input, without writing anything. Used when the final buffer size must
// be known before data arrives.
func (b *Buffer) RecalculateMaxSizeInBytes(values []Value, offset uint32) {
	valueCount := (offset/b.format.SizeInBytes())*b.format.InputNeededPerElement() +
		uint32(len(values))
	elementCount := valueCount
	if !b.format.IsPacked() {
		elementCount = valueCount / b.format.InputNeededPerElement()
	}
	if b.MaxSizeInBytes() < elementCount*b.format.SizeInBytes() {
		b.SetMaxSizeInBytes(elementCount * b.format.SizeInBytes())
	}
}

// SetDataWithOffset packs the values into the byte store starting at the
// given byte offset. Values are consumed left-to-right, walking the
// format's segments once per element; padding segments consume no values
// but advance the output cursor. The store grows to cover the computed
// element count and only the newly written span is zeroed first.
func (b *Buffer) SetDataWithOffset(values []Value, offset uint32) error {
	// The offset is translated to values through the input needed per
	// element, since that is the multiplier the value count carries.
	valueCount := (offset/b.format.SizeInBytes())*b.format.InputNeededPerElement() +
		uint32(len(values))

	// Only resize upward. A previous explicit sizing is honoured until
	// a write actually needs more room.
	if valueCount > b.ValueCount() {
		b.setValueCount(valueCount)
	}

	// Even when the value count is unchanged this may be the first
	// write, so make sure the store is allocated.
	b.grow(b.SizeInBytes())

	newSpace := (uint32(len(values)) / b.format.InputNeededPerElement()) *
		b.format.SizeInBytes()
	if newSpace+offset > b.SizeInBytes() {
		panic("vkscript: buffer write span exceeds allocated size")
	}
	for i := offset; i < offset+newSpace; i++ {
		b.bytes[i] = 0
	}

	if uint32(len(values)) > b.elementCount*b.format.InputNeededPerElement() {
		return fmt.Errorf("mismatched number of items in buffer")
	}

	ptr := b.bytes[offset:]
	segments := b.format.Segments()
	for i := 0; i < len(values); {
		for _, seg := range segments {
			if seg.IsPadding() {
				ptr = ptr[seg.PaddingBytes():]
				continue
			}
			n := writeValueFromComponent(values[i], seg.Mode(), seg.NumBits(), ptr)
			ptr = ptr[n:]
			i++
		}
	}
	return nil
}

// SetDataFromBuffer raw-copies src's bytes into this buffer at the given
// byte offset, growing the store as needed, and recounts elements using
// this buffer's own format. The source format is irrelevant once the
// bytes are copied, which permits reinterpreting a raw blob under a
// different layout.
func (b *Buffer) SetDataFromBuffer(src *Buffer, offset uint32) error {
	b.grow(offset + uint32(len(src.bytes)))
	copy(b.bytes[offset:], src.bytes)
	b.elementCount = uint32(len(b.bytes)) / b.format.SizeInBytes()
	return nil
}

// CopyTo replaces dst's byte store with a copy of this buffer's bytes.
// The two buffers must agree on width, height and element count; the
// formats need not match.
func (b *Buffer) CopyTo(dst *Buffer) error {
	if dst.width != b.width {
		return fmt.Errorf("buffers have a different width")
	}
	if dst.height != b.height {
		return fmt.Errorf("buffers have a different height")
	}
	if dst.elementCount != b.elementCount {
		return fmt.Errorf("buffers have a different size")
	}
	dst.bytes = make([]byte, len(b.bytes))
	copy(dst.bytes, b.bytes)
	return nil
}

// writeValueFromComponent writes value into out using the component's
// mode and bit width, returning the bytes written. Dispatch is on the
// (mode, bits) pair, not on the value's own kind: an integer literal can
// land in a float slot and vice versa through the typed accessors.
//
// Sub-byte packed float widths (10/11 bits) only occur inside packed
// pixel formats and are not writable per component; reaching them here
// is an engine coverage gap and aborts.
func writeValueFromComponent(value Value, mode FormatMode, numBits uint32, out []byte) uint32 {
	switch mode {
	case FormatModeSInt, FormatModeSNorm:
		switch numBits {
		case 8:
			out[0] = byte(value.AsInt8())
			return 1
		case 16:
			binary.LittleEndian.PutUint16(out, uint16(value.AsInt16()))
			return 2
		case 32:
			binary.LittleEndian.PutUint32(out, uint32(value.AsInt32()))
			return 4
		case 64:
			binary.LittleEndian.PutUint64(out, uint64(value.AsInt64()))
			return 8
		}
	case FormatModeUInt, FormatModeUNorm:
		switch numBits {
		case 8:
			out[0] = value.AsUint8()
			return 1
		case 16:
			binary.LittleEndian.PutUint16(out, value.AsUint16())
			return 2
		case 32:
			binary.LittleEndian.PutUint32(out, value.AsUint32())
			return 4
		case 64:
			binary.LittleEndian.PutUint64(out, value.AsUint64())
			return 8
		}
	case FormatModeSFloat, FormatModeUFloat:
		switch numBits {
		case 16:
			binary.LittleEndian.PutUint16(out, float16FromFloat32(value.AsFloat32()))
			return 2
		case 32:
			binary.LittleEndian.PutUint32(out, math.Float32bits(value.AsFloat32()))
			return 4
		case 64:
			binary.LittleEndian.PutUint64(out, math.Float64bits(value.AsFloat64()))
			return 8
		}
	}
	panic(fmt.Sprintf("vkscript: no component writer for %s%d", mode, numBits))
}
