package vkscript

// FormatMode describes how a component's bits encode a number.
type FormatMode uint8

// Component encoding modes. SNorm/UNorm map the integer range onto
// [-1,1] / [0,1] on the device; on the CPU side they pack exactly like
// their integer counterparts.
const (
	FormatModeSInt FormatMode = iota
	FormatModeUInt
	FormatModeSNorm
	FormatModeUNorm
	FormatModeSFloat
	FormatModeUFloat
)

// String returns the mode's name as used in Vulkan format strings.
func (m FormatMode) String() string {
	switch m {
	case FormatModeSInt:
		return "SINT"
	case FormatModeUInt:
		return "UINT"
	case FormatModeSNorm:
		return "SNORM"
	case FormatModeUNorm:
		return "UNORM"
	case FormatModeSFloat:
		return "SFLOAT"
	case FormatModeUFloat:
		return "UFLOAT"
	}
	return "UNKNOWN"
}

// isFloat reports whether the mode stores an IEEE-754 encoding.
func (m FormatMode) isFloat() bool {
	return m == FormatModeSFloat || m == FormatModeUFloat
}

// Component is one named channel of a format, as declared in the format
// string. For packed formats the components describe the sub-fields of
// the pack; the write path sees only the pack-wide segment.
type Component struct {
	Name string // R, G, B, A, D, S or X
	Mode FormatMode
	Bits uint32
}

// Segment is one layout unit of a format element: either a padding run
// or a single typed component slot. Non-padding segments consume one
// Value from the input stream; padding segments consume none but still
// advance the output cursor.
type Segment struct {
	mode    FormatMode
	numBits uint32
	padding bool
}

// newComponentSegment returns a segment holding one typed component.
func newComponentSegment(mode FormatMode, numBits uint32) Segment {
	return Segment{mode: mode, numBits: numBits}
}

// newPaddingSegment returns a segment that skips the given byte count.
func newPaddingSegment(numBytes uint32) Segment {
	return Segment{numBits: numBytes * 8, padding: true}
}

// IsPadding reports whether the segment is a padding run.
func (s Segment) IsPadding() bool { return s.padding }

// PaddingBytes returns the byte count skipped by a padding segment.
func (s Segment) PaddingBytes() uint32 { return s.numBits / 8 }

// Mode returns the segment's component mode. Meaningless for padding.
func (s Segment) Mode() FormatMode { return s.mode }

// NumBits returns the segment's bit width.
func (s Segment) NumBits() uint32 { return s.numBits }

// SizeInBytes returns the bytes the segment occupies in an element.
func (s Segment) SizeInBytes() uint32 { return s.numBits / 8 }

// Format describes the binary layout of one buffer element as an ordered
// segment list. A packed format stores all components in a single
// pack-wide integer slot, so it needs one literal per element where an
// unpacked format needs one per component.
type Format struct {
	name       string
	components []Component
	segments   []Segment
	packBits   uint32 // 0 when not packed
}

// newFormat builds a format from its canonical name and components.
// packBits is the pack width in bits for packed formats, 0 otherwise.
func newFormat(name string, comps []Component, packBits uint32) *Format {
	f := &Format{name: name, components: comps, packBits: packBits}
	if packBits > 0 {
		// The whole pack is written as one unsigned integer; the
		// component list is kept for introspection only.
		f.segments = []Segment{newComponentSegment(FormatModeUInt, packBits)}
		return f
	}
	for _, c := range comps {
		f.segments = append(f.segments, newComponentSegment(c.Mode, c.Bits))
	}
	return f
}

// NewFormatWithSegments builds a format from an explicit segment list,
// including padding runs. Callers use this for layouts the format-string
// grammar cannot express, such as std140-padded element types.
func NewFormatWithSegments(name string, segments []Segment) *Format {
	f := &Format{name: name, segments: segments}
	for _, s := range segments {
		if !s.padding {
			f.components = append(f.components, Component{Mode: s.mode, Bits: s.numBits})
		}
	}
	return f
}

// Name returns the canonical Vulkan-style format name.
func (f *Format) Name() string { return f.name }

// Components returns the declared components in order.
func (f *Format) Components() []Component { return f.components }

// Segments returns the layout segments in write order.
func (f *Format) Segments() []Segment { return f.segments }

// IsPacked reports whether multiple components share one integer slot.
func (f *Format) IsPacked() bool { return f.packBits > 0 }

// PackBits returns the pack width in bits, 0 for unpacked formats.
func (f *Format) PackBits() uint32 { return f.packBits }

// SizeInBytes returns the byte size of one element, padding included.
func (f *Format) SizeInBytes() uint32 {
	var n uint32
	for _, s := range f.segments {
		n += s.SizeInBytes()
	}
	return n
}

// ValuesPerElement returns the number of component slots per element.
func (f *Format) ValuesPerElement() uint32 {
	return uint32(len(f.components))
}

// InputNeededPerElement returns how many literal values a script line
// must supply for one element. Packed formats take a single pack-wide
// literal regardless of their component count.
func (f *Format) InputNeededPerElement() uint32 {
	if f.IsPacked() {
		return 1
	}
	var n uint32
	for _, s := range f.segments {
		if !s.padding {
			n++
		}
	}
	return n
}

// Equal reports whether both formats describe the identical layout.
func (f *Format) Equal(o *Format) bool {
	if f == nil || o == nil {
		return f == o
	}
	if f.packBits != o.packBits || len(f.segments) != len(o.segments) {
		return false
	}
	for i, s := range f.segments {
		if s != o.segments[i] {
			return false
		}
	}
	if len(f.components) != len(o.components) {
		return false
	}
	for i, c := range f.components {
		if c != o.components[i] {
			return false
		}
	}
	return true
}
