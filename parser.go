package vkscript

import (
	"math"
	"strconv"
	"strings"
)

// Parser turns vkscript source text into a Script. Parsing is a pure
// text-to-model transformation; the first error stops it. A Parser is
// single-use and not safe for concurrent use.
type Parser struct {
	opts   parserOptions
	script *Script
}

// NewParser creates a parser whose script starts with the implicit
// default color target at buffer index 0.
func NewParser(opts ...ParserOption) *Parser {
	o := defaultParserOptions()
	for _, opt := range opts {
		opt(&o)
	}
	p := &Parser{opts: o, script: NewScript()}
	p.script.ColorBuffer().SetWidth(o.fbWidth)
	p.script.ColorBuffer().SetHeight(o.fbHeight)
	return p
}

// Parse is a convenience wrapper that parses source with a fresh
// default-configured parser.
func Parse(source string) (*Script, error) {
	p := NewParser()
	if err := p.Parse(source); err != nil {
		return nil, err
	}
	return p.Script(), nil
}

// Script returns the parse result. Only valid after a successful Parse.
func (p *Parser) Script() *Script { return p.script }

// scriptSection is one [name] section with its body lines. Body lines
// keep their raw text and physical 1-based line numbers; comment
// stripping happens per section, since shader bodies keep their text
// verbatim.
type scriptSection struct {
	name  string
	line  int // header line
	lines []sectionLine
}

type sectionLine struct {
	num  int
	text string
}

// dataLine converts a physical line number to the number reported for
// rows of the data blocks ([require], [indices], [vertex data]): those
// diagnostics count rows from the section header line, so they sit one
// below the physical number. [test] commands report physical lines.
func (l sectionLine) dataLine() int { return l.num - 1 }

// splitSections slices the input into sections. This is the first of the
// two passes that keep physical line numbers intact for diagnostics.
func splitSections(source string) ([]scriptSection, error) {
	scanner := newLineScanner(source)
	var sections []scriptSection
	for {
		text, num, ok := scanner.Next()
		if !ok {
			break
		}
		if name, isHeader := sectionName(text); isHeader {
			sections = append(sections, scriptSection{name: name, line: num})
			continue
		}
		if len(sections) == 0 {
			if strings.TrimSpace(stripComment(text)) == "" {
				continue
			}
			return nil, parseErrorf(num, "Missing section header")
		}
		cur := &sections[len(sections)-1]
		cur.lines = append(cur.lines, sectionLine{num: num, text: text})
	}
	return sections, nil
}

// Parse parses the given script text into the parser's Script.
func (p *Parser) Parse(source string) error {
	sections, err := splitSections(source)
	if err != nil {
		return err
	}
	for _, sec := range sections {
		logger().Debug("parsing section", "name", sec.name, "line", sec.line)
		var err error
		switch sec.name {
		case "require":
			err = p.processRequire(sec)
		case "indices":
			err = p.processIndices(sec)
		case "vertex data":
			err = p.processVertexData(sec)
		case "test":
			err = p.processTest(sec)
		case "vertex shader":
			err = p.processShader(sec, ShaderVertex)
		case "vertex shader passthrough":
			err = p.processPassthrough(sec)
		case "fragment shader":
			err = p.processShader(sec, ShaderFragment)
		case "compute shader":
			err = p.processShader(sec, ShaderCompute)
		case "geometry shader":
			err = p.processShader(sec, ShaderGeometry)
		case "tessellation control shader":
			err = p.processShader(sec, ShaderTessControl)
		case "tessellation evaluation shader":
			err = p.processShader(sec, ShaderTessEval)
		default:
			err = parseErrorf(sec.line, "Unknown section: %s", sec.name)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// instanceExtensions is the fixed lookup partitioning VK_ extension
// names: these belong to the instance, everything else to the device.
var instanceExtensions = map[string]bool{
	"VK_KHR_get_physical_device_properties2": true,
	"VK_KHR_surface":                         true,
	"VK_EXT_debug_report":                    true,
	"VK_EXT_debug_utils":                     true,
}

// processRequire handles [require]: feature flags, extensions, and the
// framebuffer / depthstencil format directives.
func (p *Parser) processRequire(sec scriptSection) error {
	for _, ln := range sec.lines {
		tokens := strings.Fields(stripComment(ln.text))
		if len(tokens) == 0 {
			continue
		}
		switch tokens[0] {
		case "framebuffer":
			if len(tokens) < 2 {
				return parseErrorf(ln.dataLine(), "Missing framebuffer format")
			}
			if len(tokens) > 2 {
				return parseErrorf(ln.dataLine(), "Extra parameters after framebuffer command")
			}
			f, err := ParseFormat(tokens[1])
			if err != nil {
				return parseErrorf(ln.dataLine(), "Unknown framebuffer format: %s", tokens[1])
			}
			p.script.ColorBuffer().SetFormat(f)
		case "depthstencil":
			if len(tokens) < 2 {
				return parseErrorf(ln.dataLine(), "Missing depthstencil format")
			}
			if len(tokens) > 2 {
				return parseErrorf(ln.dataLine(), "Extra parameters after depthstencil command")
			}
			f, err := ParseFormat(tokens[1])
			if err != nil {
				return parseErrorf(ln.dataLine(), "Unknown depthstencil format: %s", tokens[1])
			}
			depth := p.script.DepthBuffer()
			if depth == nil {
				depth = NewBuffer(RoleDepth)
				depth.SetWidth(p.opts.fbWidth)
				depth.SetHeight(p.opts.fbHeight)
				p.script.AddBuffer(depth)
			}
			depth.SetFormat(f)
		default:
			if len(tokens) > 1 {
				return parseErrorf(ln.dataLine(), "Failed to parse requirements on line: %s", tokens[0])
			}
			if strings.HasPrefix(tokens[0], "VK_") {
				if instanceExtensions[tokens[0]] {
					p.script.AddRequiredInstanceExtension(tokens[0])
				} else {
					p.script.AddRequiredDeviceExtension(tokens[0])
				}
			} else {
				p.script.AddRequiredFeature(tokens[0])
			}
		}
	}
	return nil
}

// processIndices handles [indices]: whitespace-separated unsigned 16-bit
// integer literals appended to the script's index buffer.
func (p *Parser) processIndices(sec scriptSection) error {
	var values []Value
	for _, ln := range sec.lines {
		for _, tok := range strings.Fields(stripComment(ln.text)) {
			v, err := strconv.ParseUint(tok, 10, 64)
			if err != nil {
				return parseErrorf(ln.dataLine(), "Invalid value in indices block: %s", tok)
			}
			if v > math.MaxUint16 {
				return parseErrorf(ln.dataLine(), "Value too large in indices block: %s", tok)
			}
			values = append(values, NewIntValue(v))
		}
	}
	if len(values) == 0 {
		return nil
	}

	buf := p.script.IndexBuffer()
	if buf == nil {
		f, err := ParseFormat("R16_UINT")
		if err != nil {
			panic("vkscript: index buffer format is unparsable: " + err.Error())
		}
		buf = NewBuffer(RoleIndex)
		buf.SetFormat(f)
		p.script.AddBuffer(buf)
	}
	// Repeated [indices] sections append.
	return buf.SetDataWithOffset(values, buf.SizeInBytes())
}

// processVertexData handles [vertex data]: a header of column
// descriptors followed by data rows, one element per row per column.
// Rows append to their column buffers as they are parsed, so every
// diagnostic carries the offending row's line.
func (p *Parser) processVertexData(sec scriptSection) error {
	var columns []*Buffer

	for _, ln := range sec.lines {
		cells := strings.Fields(stripComment(ln.text))
		if len(cells) == 0 {
			continue
		}

		if columns == nil {
			// Header row: one buffer per column descriptor.
			for _, tok := range cells {
				buf, err := parseVertexColumn(tok, ln.dataLine())
				if err != nil {
					return err
				}
				columns = append(columns, buf)
				p.script.AddBuffer(buf)
			}
			continue
		}

		idx := 0
		for _, buf := range columns {
			vals, consumed, err := parseVertexCells(buf.Format(), cells[idx:], ln.dataLine())
			if err != nil {
				return err
			}
			idx += consumed
			if err := buf.SetDataWithOffset(vals, buf.SizeInBytes()); err != nil {
				return parseErrorf(ln.dataLine(), "%s", err.Error())
			}
		}
		if idx < len(cells) {
			return parseErrorf(ln.dataLine(), "Too many cells in given vertex data row")
		}
	}
	return nil
}

// parseVertexColumn parses one header descriptor, either
// <location>/<FORMAT> or <location>/<glsl-base>/<glsl-vector>.
func parseVertexColumn(tok string, line int) (*Buffer, error) {
	parts := strings.Split(tok, "/")
	if len(parts) != 2 && len(parts) != 3 {
		return nil, parseErrorf(line, "Invalid format in vertex data header: %s", tok)
	}
	loc, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return nil, parseErrorf(line, "Unable to process vertex data header: %s", tok)
	}

	var format *Format
	if len(parts) == 2 {
		format, err = ParseFormat(parts[1])
	} else {
		format, err = parseGlslFormat(parts[1], parts[2])
	}
	if err != nil {
		return nil, parseErrorf(line, "Invalid format in vertex data header: %s", tok)
	}

	buf := NewBuffer(RoleVertex)
	buf.SetLocation(uint32(loc))
	buf.SetFormat(format)
	return buf, nil
}

// parseVertexCells consumes the literals one element of the given format
// needs from cells. Packed columns take a single hex literal whose
// natural width matches the pack; unpacked columns take one decimal
// literal per component, typed by the component's mode.
func parseVertexCells(format *Format, cells []string, line int) (vals []Value, consumed int, err error) {
	if format.IsPacked() {
		if len(cells) == 0 {
			return nil, 0, parseErrorf(line, "Too few cells in given vertex data row")
		}
		tok := cells[0]
		if !isHexToken(tok) {
			return nil, 0, parseErrorf(line, "Invalid vertex data value: %s", tok)
		}
		v, ok := parseHexToken(tok)
		if !ok {
			return nil, 0, parseErrorf(line, "Invalid vertex data value: %s", tok)
		}
		return []Value{v}, 1, nil
	}

	need := int(format.InputNeededPerElement())
	if len(cells) < need {
		return nil, 0, parseErrorf(line, "Too few cells in given vertex data row")
	}
	vals = make([]Value, 0, need)
	i := 0
	for _, seg := range format.Segments() {
		if seg.IsPadding() {
			continue
		}
		tok := cells[i]
		i++
		// Hex literals only fit a slot of their own natural width,
		// which per-component columns never offer.
		if isHexToken(tok) {
			return nil, 0, parseErrorf(line, "Invalid vertex data value: %s", tok)
		}
		var v Value
		var ok bool
		if seg.Mode().isFloat() {
			v, ok = parseFloatToken(tok)
		} else {
			v, ok = parseIntToken(tok)
		}
		if !ok {
			return nil, 0, parseErrorf(line, "Invalid vertex data value: %s", tok)
		}
		vals = append(vals, v)
	}
	return vals, need, nil
}

// processTest handles [test]: the clear-command vocabulary.
func (p *Parser) processTest(sec scriptSection) error {
	for _, ln := range sec.lines {
		tokens := strings.Fields(stripComment(ln.text))
		if len(tokens) == 0 {
			continue
		}
		switch tokens[0] {
		case "clear":
			cmd, err := parseClearCommand(tokens, ln.num)
			if err != nil {
				return err
			}
			p.script.AddCommand(cmd)
		default:
			return parseErrorf(ln.num, "Unknown command: %s", tokens[0])
		}
	}
	return nil
}

// parseClearCommand parses the clear command family.
func parseClearCommand(tokens []string, line int) (Command, error) {
	if len(tokens) == 1 {
		return &ClearCommand{commandBase{line}}, nil
	}
	switch tokens[1] {
	case "color":
		if len(tokens) < 6 {
			return nil, parseErrorf(line, "Missing color values for clear color command")
		}
		if len(tokens) > 6 {
			return nil, parseErrorf(line, "Extra parameter to clear color command")
		}
		var rgba [4]float32
		for i, tok := range tokens[2:6] {
			f, err := strconv.ParseFloat(tok, 32)
			if err != nil {
				return nil, parseErrorf(line, "Invalid conversion to double")
			}
			rgba[i] = float32(f)
		}
		return &ClearColorCommand{commandBase{line}, rgba[0], rgba[1], rgba[2], rgba[3]}, nil
	case "depth":
		if len(tokens) < 3 {
			return nil, parseErrorf(line, "Missing value for clear depth command")
		}
		if len(tokens) > 3 {
			return nil, parseErrorf(line, "Extra parameter to clear depth command")
		}
		f, err := strconv.ParseFloat(tokens[2], 32)
		if err != nil {
			return nil, parseErrorf(line, "Invalid conversion to double")
		}
		return &ClearDepthCommand{commandBase{line}, float32(f)}, nil
	case "stencil":
		if len(tokens) < 3 {
			return nil, parseErrorf(line, "Missing value for clear stencil command")
		}
		if len(tokens) > 3 {
			return nil, parseErrorf(line, "Extra parameter to clear stencil command")
		}
		v, err := strconv.ParseUint(tokens[2], 10, 32)
		if err != nil {
			return nil, parseErrorf(line, "Invalid conversion to uint")
		}
		return &ClearStencilCommand{commandBase{line}, uint32(v)}, nil
	}
	return nil, parseErrorf(line, "Extra parameter to clear command: %s", tokens[1])
}

// processShader captures a shader section's body verbatim, comments and
// blank lines included, so compiler diagnostics refer to the text the
// author wrote.
func (p *Parser) processShader(sec scriptSection, kind ShaderKind) error {
	var sb strings.Builder
	for _, ln := range sec.lines {
		sb.WriteString(ln.text)
		sb.WriteByte('\n')
	}
	sh := NewShader(kind, sb.String())
	sh.line = sec.line
	p.script.AddShader(sh)
	return nil
}

// processPassthrough installs the built-in passthrough vertex shader.
// The section body must be empty.
func (p *Parser) processPassthrough(sec scriptSection) error {
	for _, ln := range sec.lines {
		if strings.TrimSpace(stripComment(ln.text)) != "" {
			return parseErrorf(ln.num, "Extra content in vertex shader passthrough section")
		}
	}
	sh := NewShader(ShaderVertex, passthroughVertexShader)
	sh.line = sec.line
	p.script.AddShader(sh)
	return nil
}
