package vkscript

import "math"

// float16FromFloat32 converts a 32-bit float to its IEEE-754 binary16
// representation by truncation: the sign bit is kept, the 8-bit exponent
// is rebiased by -112 and must fit 5 bits, and the top 10 mantissa bits
// are kept with no rounding.
//
// Exponents outside the binary16 range are an engine coverage gap, not a
// script error, so they abort.
func float16FromFloat32(value float32) uint16 {
	bits := math.Float32bits(value)

	sign := uint16(bits >> 31)
	exponent := ((bits >> 23) & 0xff) - 112
	if exponent&^uint32(0x1f) != 0 {
		panic("vkscript: half-float exponent overflow")
	}
	mantissa := bits & ((1 << 23) - 1)

	return sign<<15 | uint16(exponent)<<10 | uint16(mantissa>>13)
}

// float16ToFloat32 expands a binary16 value to float32. Subnormals decode
// to zero, which is enough for image-dump purposes.
func float16ToFloat32(h uint16) float32 {
	sign := uint32(h>>15) << 31
	exponent := uint32(h>>10) & 0x1f
	mantissa := uint32(h) & 0x3ff

	switch exponent {
	case 0:
		return math.Float32frombits(sign)
	case 0x1f:
		return math.Float32frombits(sign | 0xff<<23 | mantissa<<13)
	}
	return math.Float32frombits(sign | (exponent+112)<<23 | mantissa<<13)
}
