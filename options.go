package vkscript

// Default dimensions of the implicit framebuffer color target.
const (
	defaultFramebufferWidth  = 250
	defaultFramebufferHeight = 250
)

// ParserOption configures a Parser during creation.
//
// Example:
//
//	// Default 250x250 framebuffer
//	p := vkscript.NewParser()
//
//	// Custom capture size
//	p := vkscript.NewParser(vkscript.WithFramebufferSize(64, 64))
type ParserOption func(*parserOptions)

// parserOptions holds optional configuration for Parser creation.
type parserOptions struct {
	fbWidth  uint32
	fbHeight uint32
}

// defaultParserOptions returns the default parser options.
func defaultParserOptions() parserOptions {
	return parserOptions{
		fbWidth:  defaultFramebufferWidth,
		fbHeight: defaultFramebufferHeight,
	}
}

// WithFramebufferSize sets the dimensions of the implicit color target
// and of any depth target the script declares. The executor sizes its
// capture textures from these.
func WithFramebufferSize(width, height uint32) ParserOption {
	return func(o *parserOptions) {
		o.fbWidth = width
		o.fbHeight = height
	}
}
