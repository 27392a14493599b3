package vkscript

import (
	"fmt"

	"github.com/gogpu/naga"
)

// ShaderKind identifies the pipeline stage a shader section targets.
type ShaderKind uint8

// Shader kinds, one per recognized shader section.
const (
	ShaderVertex ShaderKind = iota
	ShaderFragment
	ShaderCompute
	ShaderGeometry
	ShaderTessControl
	ShaderTessEval
)

// String returns the stage name.
func (k ShaderKind) String() string {
	switch k {
	case ShaderVertex:
		return "vertex"
	case ShaderFragment:
		return "fragment"
	case ShaderCompute:
		return "compute"
	case ShaderGeometry:
		return "geometry"
	case ShaderTessControl:
		return "tessellation control"
	case ShaderTessEval:
		return "tessellation evaluation"
	}
	return "unknown"
}

// passthroughVertexShader is the WGSL source installed by a
// [vertex shader passthrough] section: position in, position out.
const passthroughVertexShader = `@vertex
fn main(@location(0) position: vec4<f32>) -> @builtin(position) vec4<f32> {
    return position;
}
`

// Shader is one shader section's captured source. The engine stores and
// compiles shader text; executing it is the executor's job.
type Shader struct {
	kind   ShaderKind
	source string
	line   int // 1-based line of the section header
}

// NewShader creates a shader of the given kind with the given source.
func NewShader(kind ShaderKind, source string) *Shader {
	return &Shader{kind: kind, source: source}
}

// Kind returns the pipeline stage the shader targets.
func (s *Shader) Kind() ShaderKind { return s.kind }

// Source returns the shader source text exactly as written in the
// script, comments included.
func (s *Shader) Source() string { return s.source }

// Line returns the 1-based script line of the shader's section header.
func (s *Shader) Line() int { return s.line }

// Compile compiles the WGSL source to a SPIR-V binary.
func (s *Shader) Compile() ([]byte, error) {
	spirv, err := naga.Compile(s.source)
	if err != nil {
		return nil, fmt.Errorf("compiling %s shader: %w", s.kind, err)
	}
	return spirv, nil
}

// CompileShaders compiles every shader in the script, returning the
// SPIR-V binaries in declaration order. The first failing shader stops
// compilation.
func (s *Script) CompileShaders() ([][]byte, error) {
	out := make([][]byte, 0, len(s.shaders))
	for _, sh := range s.shaders {
		spirv, err := sh.Compile()
		if err != nil {
			return nil, err
		}
		logger().Debug("shader compiled", "kind", sh.kind.String(), "spirvBytes", len(spirv))
		out = append(out, spirv)
	}
	return out, nil
}
