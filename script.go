package vkscript

// defaultFramebufferFormat is the format of the implicit color target
// every script renders into unless [require] overrides it.
const defaultFramebufferFormat = "B8G8R8A8_UNORM"

// Script is the parse result of a test: the ordered buffer collection,
// the command sequence, the capability requirements and the shader
// sources. Buffer order is part of the contract — the buffer at index 0
// is always the default color target, and later declarations append in
// script order, so consumers locate buffers by role plus position.
type Script struct {
	buffers            []*Buffer
	commands           []Command
	shaders            []*Shader
	requiredFeatures   []string
	deviceExtensions   []string
	instanceExtensions []string
}

// NewScript creates a script holding only the implicit default color
// target at buffer index 0. Every constructor path must establish this
// buffer before any section is processed; the parser and the executor
// both rely on it.
func NewScript() *Script {
	fb, err := ParseFormat(defaultFramebufferFormat)
	if err != nil {
		panic("vkscript: default framebuffer format is unparsable: " + err.Error())
	}
	color := NewBuffer(RoleColor)
	color.SetFormat(fb)
	return &Script{buffers: []*Buffer{color}}
}

// Buffers returns the ordered buffer collection.
func (s *Script) Buffers() []*Buffer { return s.buffers }

// AddBuffer appends a buffer, preserving declaration order.
func (s *Script) AddBuffer(b *Buffer) { s.buffers = append(s.buffers, b) }

// ColorBuffer returns the default color target (buffer index 0).
func (s *Script) ColorBuffer() *Buffer { return s.buffers[0] }

// DepthBuffer returns the depth target, or nil when the script declares
// none.
func (s *Script) DepthBuffer() *Buffer {
	for _, b := range s.buffers {
		if b.Role() == RoleDepth {
			return b
		}
	}
	return nil
}

// IndexBuffer returns the index buffer, or nil when the script declares
// none.
func (s *Script) IndexBuffer() *Buffer {
	for _, b := range s.buffers {
		if b.Role() == RoleIndex {
			return b
		}
	}
	return nil
}

// VertexBuffers returns the vertex buffers in declaration order.
func (s *Script) VertexBuffers() []*Buffer {
	var out []*Buffer
	for _, b := range s.buffers {
		if b.Role() == RoleVertex {
			out = append(out, b)
		}
	}
	return out
}

// Commands returns the ordered command sequence.
func (s *Script) Commands() []Command { return s.commands }

// AddCommand appends a command.
func (s *Script) AddCommand(c Command) { s.commands = append(s.commands, c) }

// Shaders returns the shaders in declaration order.
func (s *Script) Shaders() []*Shader { return s.shaders }

// AddShader appends a shader.
func (s *Script) AddShader(sh *Shader) { s.shaders = append(s.shaders, sh) }

// RequiredFeatures returns the required device feature names in script
// order. Duplicates are preserved.
func (s *Script) RequiredFeatures() []string { return s.requiredFeatures }

// AddRequiredFeature records a required device feature.
func (s *Script) AddRequiredFeature(name string) {
	s.requiredFeatures = append(s.requiredFeatures, name)
}

// RequiredDeviceExtensions returns the required device extension names
// in script order.
func (s *Script) RequiredDeviceExtensions() []string { return s.deviceExtensions }

// AddRequiredDeviceExtension records a required device extension.
func (s *Script) AddRequiredDeviceExtension(name string) {
	s.deviceExtensions = append(s.deviceExtensions, name)
}

// RequiredInstanceExtensions returns the required instance extension
// names in script order.
func (s *Script) RequiredInstanceExtensions() []string { return s.instanceExtensions }

// AddRequiredInstanceExtension records a required instance extension.
func (s *Script) AddRequiredInstanceExtension(name string) {
	s.instanceExtensions = append(s.instanceExtensions, name)
}
