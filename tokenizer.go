package vkscript

import (
	"strconv"
	"strings"
)

// lineScanner iterates the physical lines of a script. Line numbers are
// 1-based indices into the original input; blank and comment-only lines
// are returned like any other so callers never lose the physical number
// used in error messages.
type lineScanner struct {
	lines []string
	index int
}

func newLineScanner(source string) *lineScanner {
	return &lineScanner{lines: strings.Split(source, "\n")}
}

// Next returns the next physical line and its 1-based number.
func (s *lineScanner) Next() (text string, line int, ok bool) {
	if s.index >= len(s.lines) {
		return "", 0, false
	}
	s.index++
	return s.lines[s.index-1], s.index, true
}

// stripComment removes a trailing # comment, mid-line included.
func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		return line[:i]
	}
	return line
}

// sectionName extracts the name from a [section] header line, after
// comment stripping and trimming. ok is false when the line is not a
// header.
func sectionName(line string) (name string, ok bool) {
	t := strings.TrimSpace(stripComment(line))
	if len(t) < 2 || t[0] != '[' || t[len(t)-1] != ']' {
		return "", false
	}
	return strings.TrimSpace(t[1 : len(t)-1]), true
}

// isHexToken reports whether the token is a 0x hex literal.
func isHexToken(tok string) bool {
	return strings.HasPrefix(tok, "0x") || strings.HasPrefix(tok, "0X")
}

// parseHexToken parses a 0x hex literal into an integer Value.
func parseHexToken(tok string) (Value, bool) {
	v, err := strconv.ParseUint(tok[2:], 16, 64)
	if err != nil {
		return Value{}, false
	}
	return NewIntValue(v), true
}

// parseIntToken parses a decimal integer literal, signed or unsigned,
// into an integer Value. Negative literals keep their two's-complement
// bit pattern. The literal grammar has no leading +.
func parseIntToken(tok string) (Value, bool) {
	if strings.HasPrefix(tok, "+") {
		return Value{}, false
	}
	if i, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return NewIntValue(uint64(i)), true
	}
	// Unsigned literals above MaxInt64 fail the signed parse.
	if u, err := strconv.ParseUint(tok, 10, 64); err == nil {
		return NewIntValue(u), true
	}
	return Value{}, false
}

// parseFloatToken parses a decimal float literal into a float Value.
// Plain integer literals are also accepted and stay integers, so the
// packer can still place them exactly.
func parseFloatToken(tok string) (Value, bool) {
	if strings.HasPrefix(tok, "+") {
		return Value{}, false
	}
	if v, ok := parseIntToken(tok); ok {
		return v, true
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return Value{}, false
	}
	return NewFloatValue(f), true
}
