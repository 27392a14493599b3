package vkscript

// Value is a scalar parsed from a script literal. It holds either an
// integer or a floating-point number; exactly one kind is active. The
// typed accessors convert numerically from the stored kind, they never
// reinterpret bits. Values are immutable once created.
type Value struct {
	isFloat  bool
	uintVal  uint64
	floatVal float64
}

// NewIntValue creates an integer Value. Signed literals are stored as
// their two's-complement bit pattern and recovered through the signed
// accessors.
func NewIntValue(v uint64) Value {
	return Value{uintVal: v}
}

// NewFloatValue creates a floating-point Value.
func NewFloatValue(v float64) Value {
	return Value{isFloat: true, floatVal: v}
}

// IsInteger reports whether the integer kind is active.
func (v Value) IsInteger() bool { return !v.isFloat }

// IsFloat reports whether the floating-point kind is active.
func (v Value) IsFloat() bool { return v.isFloat }

// AsInt8 returns the value converted to int8.
func (v Value) AsInt8() int8 {
	if v.isFloat {
		return int8(v.floatVal)
	}
	return int8(v.uintVal)
}

// AsInt16 returns the value converted to int16.
func (v Value) AsInt16() int16 {
	if v.isFloat {
		return int16(v.floatVal)
	}
	return int16(v.uintVal)
}

// AsInt32 returns the value converted to int32.
func (v Value) AsInt32() int32 {
	if v.isFloat {
		return int32(v.floatVal)
	}
	return int32(v.uintVal)
}

// AsInt64 returns the value converted to int64.
func (v Value) AsInt64() int64 {
	if v.isFloat {
		return int64(v.floatVal)
	}
	return int64(v.uintVal)
}

// AsUint8 returns the value converted to uint8.
func (v Value) AsUint8() uint8 {
	if v.isFloat {
		return uint8(v.floatVal)
	}
	return uint8(v.uintVal)
}

// AsUint16 returns the value converted to uint16.
func (v Value) AsUint16() uint16 {
	if v.isFloat {
		return uint16(v.floatVal)
	}
	return uint16(v.uintVal)
}

// AsUint32 returns the value converted to uint32.
func (v Value) AsUint32() uint32 {
	if v.isFloat {
		return uint32(v.floatVal)
	}
	return uint32(v.uintVal)
}

// AsUint64 returns the value converted to uint64.
func (v Value) AsUint64() uint64 {
	if v.isFloat {
		return uint64(v.floatVal)
	}
	return v.uintVal
}

// AsFloat32 returns the value converted to float32.
func (v Value) AsFloat32() float32 {
	if v.isFloat {
		return float32(v.floatVal)
	}
	// Integer literals may land in float slots; convert through the
	// signed interpretation so -1 stays -1.
	return float32(int64(v.uintVal))
}

// AsFloat64 returns the value converted to float64.
func (v Value) AsFloat64() float64 {
	if v.isFloat {
		return v.floatVal
	}
	return float64(int64(v.uintVal))
}
