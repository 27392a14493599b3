package vkscript

import (
	"encoding/binary"
	"fmt"
	"math"
)

// IsEqual compares the two buffers byte for byte. Shape mismatches and
// byte differences are reported as errors; a byte difference reports the
// count of differing bytes and the index and values of the first one.
func (b *Buffer) IsEqual(other *Buffer) error {
	if !other.format.Equal(b.format) {
		return fmt.Errorf("buffers have a different format")
	}
	if other.elementCount != b.elementCount {
		return fmt.Errorf("buffers have a different size")
	}
	if other.width != b.width {
		return fmt.Errorf("buffers have a different width")
	}
	if other.height != b.height {
		return fmt.Errorf("buffers have a different height")
	}
	if len(other.bytes) != len(b.bytes) {
		return fmt.Errorf("buffers have a different number of values")
	}

	numDifferent := 0
	firstIndex := 0
	var firstLeft, firstRight byte
	for i := range b.bytes {
		if b.bytes[i] != other.bytes[i] {
			if numDifferent == 0 {
				firstIndex = i
				firstLeft = b.bytes[i]
				firstRight = other.bytes[i]
			}
			numDifferent++
		}
	}
	if numDifferent > 0 {
		return fmt.Errorf(
			"buffers have different values. %d values differed, first difference at byte %d values %d != %d",
			numDifferent, firstIndex, firstLeft, firstRight)
	}
	return nil
}

// CalculateDiffs returns this[i] - other[i] for every non-padding segment
// of every element, in write order: outer loop over elements, inner loop
// over segments. Both operands are widened to float64 before subtracting
// through the segment's (mode, bits) typed view.
func (b *Buffer) CalculateDiffs(other *Buffer) []float64 {
	diffs := make([]float64, 0, b.ValueCount())

	buf1 := b.bytes
	buf2 := other.bytes
	segments := b.format.Segments()
	for i := uint32(0); i < b.elementCount; i++ {
		for _, seg := range segments {
			if seg.IsPadding() {
				buf1 = buf1[seg.PaddingBytes():]
				buf2 = buf2[seg.PaddingBytes():]
				continue
			}
			diffs = append(diffs, segmentDiff(seg, buf1, buf2))
			buf1 = buf1[seg.SizeInBytes():]
			buf2 = buf2[seg.SizeInBytes():]
		}
	}
	return diffs
}

// segmentDiff reads one fixed-width value from each byte view using the
// segment's (mode, bits) pair and returns their float64 difference.
// 16-bit float diffing is an engine coverage gap and aborts.
func segmentDiff(seg Segment, buf1, buf2 []byte) float64 {
	switch seg.Mode() {
	case FormatModeSInt, FormatModeSNorm:
		switch seg.NumBits() {
		case 8:
			return float64(int8(buf1[0])) - float64(int8(buf2[0]))
		case 16:
			return float64(int16(binary.LittleEndian.Uint16(buf1))) -
				float64(int16(binary.LittleEndian.Uint16(buf2)))
		case 32:
			return float64(int32(binary.LittleEndian.Uint32(buf1))) -
				float64(int32(binary.LittleEndian.Uint32(buf2)))
		case 64:
			return float64(int64(binary.LittleEndian.Uint64(buf1))) -
				float64(int64(binary.LittleEndian.Uint64(buf2)))
		}
	case FormatModeUInt, FormatModeUNorm:
		switch seg.NumBits() {
		case 8:
			return float64(buf1[0]) - float64(buf2[0])
		case 16:
			return float64(binary.LittleEndian.Uint16(buf1)) -
				float64(binary.LittleEndian.Uint16(buf2))
		case 32:
			return float64(binary.LittleEndian.Uint32(buf1)) -
				float64(binary.LittleEndian.Uint32(buf2))
		case 64:
			return float64(binary.LittleEndian.Uint64(buf1)) -
				float64(binary.LittleEndian.Uint64(buf2))
		}
	case FormatModeSFloat, FormatModeUFloat:
		switch seg.NumBits() {
		case 16:
			panic("vkscript: float16 diff support not implemented")
		case 32:
			return float64(math.Float32frombits(binary.LittleEndian.Uint32(buf1))) -
				float64(math.Float32frombits(binary.LittleEndian.Uint32(buf2)))
		case 64:
			return math.Float64frombits(binary.LittleEndian.Uint64(buf1)) -
				math.Float64frombits(binary.LittleEndian.Uint64(buf2))
		}
	}
	panic(fmt.Sprintf("vkscript: no diff reader for %s%d", seg.Mode(), seg.NumBits()))
}

// CompareRMSE compares the two buffers by root-mean-square error over
// their per-component diffs and fails when the result exceeds tolerance.
func (b *Buffer) CompareRMSE(other *Buffer, tolerance float32) error {
	if !other.format.Equal(b.format) {
		return fmt.Errorf("buffers have a different format")
	}
	if other.elementCount != b.elementCount {
		return fmt.Errorf("buffers have a different size")
	}
	if other.width != b.width {
		return fmt.Errorf("buffers have a different width")
	}
	if other.height != b.height {
		return fmt.Errorf("buffers have a different height")
	}
	if other.ValueCount() != b.ValueCount() {
		return fmt.Errorf("buffers have a different number of values")
	}

	diffs := b.CalculateDiffs(other)
	sum := 0.0
	for _, d := range diffs {
		sum += d * d
	}
	sum /= float64(len(diffs))
	rmse := math.Sqrt(sum)
	if rmse > float64(tolerance) {
		return fmt.Errorf("root mean square error of %f is greater than tolerance of %f",
			rmse, tolerance)
	}
	return nil
}
