package vkscript

import (
	"encoding/binary"
	"testing"
)

func TestShaderKindString(t *testing.T) {
	tests := []struct {
		kind ShaderKind
		want string
	}{
		{ShaderVertex, "vertex"},
		{ShaderFragment, "fragment"},
		{ShaderCompute, "compute"},
		{ShaderGeometry, "geometry"},
		{ShaderTessControl, "tessellation control"},
		{ShaderTessEval, "tessellation evaluation"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestShaderCompile(t *testing.T) {
	sh := NewShader(ShaderVertex, `@vertex
fn main(@builtin(vertex_index) idx: u32) -> @builtin(position) vec4<f32> {
    return vec4<f32>(0.0, 0.0, 0.0, 1.0);
}
`)
	spirv, err := sh.Compile()
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	if len(spirv) == 0 {
		t.Fatal("Compile() returned an empty binary")
	}
	if magic := binary.LittleEndian.Uint32(spirv[:4]); magic != 0x07230203 {
		t.Errorf("binary opens with 0x%08X, want the SPIR-V magic", magic)
	}
}

func TestShaderCompileError(t *testing.T) {
	sh := NewShader(ShaderFragment, "this is not wgsl")
	if _, err := sh.Compile(); err == nil {
		t.Fatal("Compile() succeeded on invalid source")
	}
}

func TestPassthroughVertexShaderCompiles(t *testing.T) {
	sh := NewShader(ShaderVertex, passthroughVertexShader)
	if _, err := sh.Compile(); err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
}

func TestCompileShaders(t *testing.T) {
	script, err := Parse(`[vertex shader passthrough]

[fragment shader]
@fragment
fn main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0, 0.0, 0.0, 1.0);
}
`)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	binaries, err := script.CompileShaders()
	if err != nil {
		t.Fatalf("CompileShaders() error: %v", err)
	}
	if len(binaries) != 2 {
		t.Fatalf("len(binaries) = %d, want 2", len(binaries))
	}
	for i, bin := range binaries {
		if len(bin) == 0 {
			t.Errorf("binary %d is empty", i)
		}
	}
}

func TestCompileShadersStopsAtFirstFailure(t *testing.T) {
	script, err := Parse("[compute shader]\nnot wgsl at all\n")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if _, err := script.CompileShaders(); err == nil {
		t.Fatal("CompileShaders() succeeded on invalid source")
	}
}
