package vkscript

import (
	"math"
	"testing"
)

func TestFloat16FromFloat32(t *testing.T) {
	tests := []struct {
		in   float32
		want uint16
	}{
		{1.0, 0x3c00},
		{-1.0, 0xbc00},
		{2.0, 0x4000},
		{-2.5, 0xc100},
		{0.5, 0x3800},
		{0.25, 0x3400},
		{1.5, 0x3e00},
		{65504, 0x7bff}, // largest normal binary16
	}
	for _, tt := range tests {
		if got := float16FromFloat32(tt.in); got != tt.want {
			t.Errorf("float16FromFloat32(%f) = %#04x, want %#04x", tt.in, got, tt.want)
		}
	}
}

func TestFloat16Truncates(t *testing.T) {
	// Mantissa bits below the kept top ten are dropped, never rounded:
	// the nearest binary16 to this value is 0x3c01 but truncation keeps
	// 0x3c00.
	in := math.Float32frombits(0x3f8017ff) // just past halfway to 0x3c01
	if got := float16FromFloat32(in); got != 0x3c00 {
		t.Errorf("float16FromFloat32(%f) = %#04x, want 0x3c00", in, got)
	}
}

func TestFloat16ExponentOverflow(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("float16FromFloat32(131072) should panic: exponent exceeds binary16 range")
		}
	}()
	float16FromFloat32(131072) // 2^17
}

func TestFloat16ToFloat32(t *testing.T) {
	tests := []struct {
		in   uint16
		want float32
	}{
		{0x3c00, 1.0},
		{0xbc00, -1.0},
		{0xc100, -2.5},
		{0x3800, 0.5},
		{0x0000, 0.0},
		{0x7bff, 65504},
	}
	for _, tt := range tests {
		if got := float16ToFloat32(tt.in); got != tt.want {
			t.Errorf("float16ToFloat32(%#04x) = %f, want %f", tt.in, got, tt.want)
		}
	}
}

func TestFloat16RoundTrip(t *testing.T) {
	// Values exactly representable in binary16 survive the round trip.
	for _, v := range []float32{1, -1, 2, -2.5, 0.5, 0.25, 1024, -0.125} {
		if got := float16ToFloat32(float16FromFloat32(v)); got != v {
			t.Errorf("round trip of %f = %f", v, got)
		}
	}
}
