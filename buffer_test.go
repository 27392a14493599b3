package vkscript

import (
	"encoding/binary"
	"math"
	"testing"
)

func mustFormat(t *testing.T, name string) *Format {
	t.Helper()
	f, err := ParseFormat(name)
	if err != nil {
		t.Fatalf("ParseFormat(%s) error: %v", name, err)
	}
	return f
}

func floatValues(vs ...float64) []Value {
	out := make([]Value, len(vs))
	for i, v := range vs {
		out[i] = NewFloatValue(v)
	}
	return out
}

func intValues(vs ...uint64) []Value {
	out := make([]Value, len(vs))
	for i, v := range vs {
		out[i] = NewIntValue(v)
	}
	return out
}

func TestBufferSetData(t *testing.T) {
	b := NewBuffer(RoleVertex)
	b.SetFormat(mustFormat(t, "R32G32_SFLOAT"))
	if err := b.SetData(floatValues(1, 2, 3, 4)); err != nil {
		t.Fatalf("SetData() error: %v", err)
	}
	if b.ElementCount() != 2 {
		t.Errorf("ElementCount() = %d, want 2", b.ElementCount())
	}
	if b.ValueCount() != 4 {
		t.Errorf("ValueCount() = %d, want 4", b.ValueCount())
	}
	if b.SizeInBytes() != 16 {
		t.Errorf("SizeInBytes() = %d, want 16", b.SizeInBytes())
	}
	for i, want := range []float32{1, 2, 3, 4} {
		got := math.Float32frombits(binary.LittleEndian.Uint32(b.Bytes()[i*4:]))
		if got != want {
			t.Errorf("value %d = %f, want %f", i, got, want)
		}
	}
}

func TestBufferSetDataMixedKinds(t *testing.T) {
	// Integer literals land in float slots through numeric conversion,
	// signed interpretation included.
	b := NewBuffer(RoleVertex)
	b.SetFormat(mustFormat(t, "R32_SFLOAT"))
	if err := b.SetData(intValues(math.MaxUint64)); err != nil { // two's-complement -1
		t.Fatalf("SetData() error: %v", err)
	}
	got := math.Float32frombits(binary.LittleEndian.Uint32(b.Bytes()))
	if got != -1 {
		t.Errorf("value = %f, want -1", got)
	}
}

func TestBufferSetDataSignedBytes(t *testing.T) {
	b := NewBuffer(RoleStorage)
	b.SetFormat(mustFormat(t, "R8G8_SINT"))
	neg3 := uint64(math.MaxUint64 - 2)
	if err := b.SetData(intValues(neg3, 5)); err != nil {
		t.Fatalf("SetData() error: %v", err)
	}
	if got := int8(b.Bytes()[0]); got != -3 {
		t.Errorf("byte 0 = %d, want -3", got)
	}
	if got := int8(b.Bytes()[1]); got != 5 {
		t.Errorf("byte 1 = %d, want 5", got)
	}
}

func TestBufferSetDataGrowthOnly(t *testing.T) {
	b := NewBuffer(RoleStorage)
	b.SetFormat(mustFormat(t, "R32_SFLOAT"))
	if err := b.SetData(floatValues(1, 2, 3, 4)); err != nil {
		t.Fatalf("SetData() error: %v", err)
	}
	if err := b.SetData(floatValues(9, 8)); err != nil {
		t.Fatalf("SetData() error: %v", err)
	}
	if b.ElementCount() != 4 {
		t.Errorf("ElementCount() = %d, want 4 (stores never shrink)", b.ElementCount())
	}
	if len(b.Bytes()) != 16 {
		t.Errorf("len(Bytes()) = %d, want 16", len(b.Bytes()))
	}
	want := []float32{9, 8, 3, 4}
	for i, w := range want {
		got := math.Float32frombits(binary.LittleEndian.Uint32(b.Bytes()[i*4:]))
		if got != w {
			t.Errorf("value %d = %f, want %f", i, got, w)
		}
	}
}

func TestBufferSetDataWithOffsetAppends(t *testing.T) {
	b := NewBuffer(RoleIndex)
	b.SetFormat(mustFormat(t, "R16_UINT"))
	if err := b.SetData(intValues(1, 2)); err != nil {
		t.Fatalf("SetData() error: %v", err)
	}
	if err := b.SetDataWithOffset(intValues(3, 4), b.SizeInBytes()); err != nil {
		t.Fatalf("SetDataWithOffset() error: %v", err)
	}
	if b.ElementCount() != 4 {
		t.Fatalf("ElementCount() = %d, want 4", b.ElementCount())
	}
	for i, want := range []uint16{1, 2, 3, 4} {
		if got := binary.LittleEndian.Uint16(b.Bytes()[i*2:]); got != want {
			t.Errorf("index %d = %d, want %d", i, got, want)
		}
	}
}

func TestBufferSetDataPartialElement(t *testing.T) {
	b := NewBuffer(RoleVertex)
	b.SetFormat(mustFormat(t, "R32G32_SFLOAT"))
	err := b.SetData(floatValues(1, 2, 3))
	if err == nil {
		t.Fatal("SetData() succeeded, want error")
	}
	if got := err.Error(); got != "mismatched number of items in buffer" {
		t.Errorf("error = %q", got)
	}
}

func TestBufferSetDataWithPadding(t *testing.T) {
	f := NewFormatWithSegments("R32_SFLOAT_PAD4", []Segment{
		newComponentSegment(FormatModeSFloat, 32),
		newPaddingSegment(4),
	})
	b := NewBuffer(RoleUniform)
	b.SetFormat(f)
	if err := b.SetData(floatValues(1.5, 2.5)); err != nil {
		t.Fatalf("SetData() error: %v", err)
	}
	if b.SizeInBytes() != 16 {
		t.Fatalf("SizeInBytes() = %d, want 16", b.SizeInBytes())
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(b.Bytes()[0:])); got != 1.5 {
		t.Errorf("element 0 = %f, want 1.5", got)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(b.Bytes()[8:])); got != 2.5 {
		t.Errorf("element 1 = %f, want 2.5", got)
	}
	for _, i := range []int{4, 5, 6, 7, 12, 13, 14, 15} {
		if b.Bytes()[i] != 0 {
			t.Errorf("padding byte %d = %d, want 0", i, b.Bytes()[i])
		}
	}
}

func TestBufferPackedSetData(t *testing.T) {
	b := NewBuffer(RoleVertex)
	b.SetFormat(mustFormat(t, "A8B8G8R8_UNORM_PACK32"))
	if err := b.SetData(intValues(0xff0000ff)); err != nil {
		t.Fatalf("SetData() error: %v", err)
	}
	if b.ElementCount() != 1 {
		t.Errorf("ElementCount() = %d, want 1", b.ElementCount())
	}
	if b.ValueCount() != 1 {
		t.Errorf("ValueCount() = %d, want 1", b.ValueCount())
	}
	if got := binary.LittleEndian.Uint32(b.Bytes()); got != 0xff0000ff {
		t.Errorf("pack = %#x, want 0xff0000ff", got)
	}
}

func TestBufferFloat16SetData(t *testing.T) {
	b := NewBuffer(RoleVertex)
	b.SetFormat(mustFormat(t, "R16G16_SFLOAT"))
	if err := b.SetData(floatValues(1.0, -2.5)); err != nil {
		t.Fatalf("SetData() error: %v", err)
	}
	if got := binary.LittleEndian.Uint16(b.Bytes()[0:]); got != 0x3c00 {
		t.Errorf("half 0 = %#x, want 0x3c00", got)
	}
	if got := binary.LittleEndian.Uint16(b.Bytes()[2:]); got != 0xc100 {
		t.Errorf("half 1 = %#x, want 0xc100", got)
	}
}

func TestBufferSetSizeInElements(t *testing.T) {
	b := NewBuffer(RoleStorage)
	b.SetFormat(mustFormat(t, "R32_UINT"))
	b.SetSizeInElements(10)
	if b.ElementCount() != 10 || len(b.Bytes()) != 40 {
		t.Fatalf("ElementCount() = %d, len = %d, want 10, 40", b.ElementCount(), len(b.Bytes()))
	}
	b.SetSizeInElements(5)
	if b.ElementCount() != 10 || len(b.Bytes()) != 40 {
		t.Errorf("after shrink request: ElementCount() = %d, len = %d, want 10, 40 unchanged",
			b.ElementCount(), len(b.Bytes()))
	}
}

func TestBufferSetSizeInBytes(t *testing.T) {
	b := NewBuffer(RoleStorage)
	b.SetFormat(mustFormat(t, "R32_UINT"))
	b.SetSizeInBytes(16)
	if b.ElementCount() != 4 || len(b.Bytes()) != 16 {
		t.Fatalf("ElementCount() = %d, len = %d, want 4, 16", b.ElementCount(), len(b.Bytes()))
	}

	defer func() {
		if recover() == nil {
			t.Error("SetSizeInBytes(6) should panic on a non-multiple")
		}
	}()
	b.SetSizeInBytes(6)
}

func TestBufferMaxSizeInBytes(t *testing.T) {
	b := NewBuffer(RoleStorage)
	b.SetFormat(mustFormat(t, "R32_UINT"))
	if b.MaxSizeInBytes() != 0 {
		t.Errorf("MaxSizeInBytes() = %d, want 0", b.MaxSizeInBytes())
	}
	b.SetMaxSizeInBytes(64)
	if err := b.SetData(intValues(1, 2)); err != nil {
		t.Fatalf("SetData() error: %v", err)
	}
	if b.MaxSizeInBytes() != 64 {
		t.Errorf("MaxSizeInBytes() = %d, want explicit floor 64", b.MaxSizeInBytes())
	}
	if b.SizeInBytes() != 8 {
		t.Errorf("SizeInBytes() = %d, want 8", b.SizeInBytes())
	}
}

func TestBufferRecalculateMaxSizeInBytes(t *testing.T) {
	b := NewBuffer(RoleStorage)
	b.SetFormat(mustFormat(t, "R32_UINT"))
	b.RecalculateMaxSizeInBytes(intValues(1, 2, 3), 4)
	if b.MaxSizeInBytes() != 16 {
		t.Errorf("MaxSizeInBytes() = %d, want 16", b.MaxSizeInBytes())
	}
	if len(b.Bytes()) != 0 {
		t.Errorf("RecalculateMaxSizeInBytes wrote %d bytes, want none", len(b.Bytes()))
	}
}

func TestBufferSetDataFromBuffer(t *testing.T) {
	src := NewBuffer(RoleStorage)
	src.SetFormat(mustFormat(t, "R16_UINT"))
	if err := src.SetData(intValues(1, 2, 3, 4)); err != nil {
		t.Fatalf("SetData() error: %v", err)
	}

	dst := NewBuffer(RoleStorage)
	dst.SetFormat(mustFormat(t, "R8G8B8A8_UNORM"))
	if err := dst.SetDataFromBuffer(src, 0); err != nil {
		t.Fatalf("SetDataFromBuffer() error: %v", err)
	}
	// 8 raw bytes recounted under the 4-byte destination layout.
	if dst.ElementCount() != 2 {
		t.Errorf("ElementCount() = %d, want 2", dst.ElementCount())
	}
	for i := range src.Bytes() {
		if dst.Bytes()[i] != src.Bytes()[i] {
			t.Errorf("byte %d = %d, want %d", i, dst.Bytes()[i], src.Bytes()[i])
		}
	}
}

func TestBufferCopyTo(t *testing.T) {
	src := NewBuffer(RoleColor)
	src.SetFormat(mustFormat(t, "R8G8B8A8_UNORM"))
	src.SetWidth(2)
	src.SetHeight(1)
	if err := src.SetData(intValues(1, 2, 3, 4, 5, 6, 7, 8)); err != nil {
		t.Fatalf("SetData() error: %v", err)
	}

	dst := NewBuffer(RoleColor)
	dst.SetFormat(mustFormat(t, "B8G8R8A8_UNORM"))
	dst.SetWidth(2)
	dst.SetHeight(1)
	dst.SetSizeInElements(2)
	if err := src.CopyTo(dst); err != nil {
		t.Fatalf("CopyTo() error: %v", err)
	}
	for i := range src.Bytes() {
		if dst.Bytes()[i] != src.Bytes()[i] {
			t.Errorf("byte %d = %d, want %d", i, dst.Bytes()[i], src.Bytes()[i])
		}
	}

	dst.SetWidth(3)
	if err := src.CopyTo(dst); err == nil {
		t.Error("CopyTo() with mismatched width should fail")
	} else if err.Error() != "buffers have a different width" {
		t.Errorf("error = %q", err)
	}
}

func TestBufferExtent(t *testing.T) {
	b := NewBuffer(RoleColor)
	b.SetWidth(250)
	b.SetHeight(120)
	e := b.Extent()
	if e.Width != 250 || e.Height != 120 || e.DepthOrArrayLayers != 1 {
		t.Errorf("Extent() = %+v", e)
	}
}

func TestBufferRoleString(t *testing.T) {
	tests := []struct {
		role BufferRole
		want string
	}{
		{RoleUnknown, "unknown"},
		{RoleColor, "color"},
		{RoleDepth, "depth"},
		{RoleIndex, "index"},
		{RoleVertex, "vertex"},
		{RoleStorage, "storage"},
		{RoleUniform, "uniform"},
	}
	for _, tt := range tests {
		if got := tt.role.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
