package vkscript

import "github.com/gogpu/gputypes"

// Command is one replayable test action. The concrete types form a
// closed set; consumers dispatch with a type switch.
type Command interface {
	// Line returns the 1-based script line the command was parsed from.
	Line() int

	isCommand()
}

// commandBase carries the source line shared by all commands.
type commandBase struct {
	line int
}

func (c commandBase) Line() int  { return c.line }
func (c commandBase) isCommand() {}

// ClearColorCommand sets the color the framebuffer is cleared with.
type ClearColorCommand struct {
	commandBase
	R, G, B, A float32
}

// Color returns the clear color as a WebGPU color for the executor's
// render-pass description.
func (c *ClearColorCommand) Color() gputypes.Color {
	return gputypes.Color{
		R: float64(c.R),
		G: float64(c.G),
		B: float64(c.B),
		A: float64(c.A),
	}
}

// ClearDepthCommand sets the depth value the framebuffer is cleared with.
type ClearDepthCommand struct {
	commandBase
	Value float32
}

// ClearStencilCommand sets the stencil value the framebuffer is cleared
// with.
type ClearStencilCommand struct {
	commandBase
	Value uint32
}

// ClearCommand clears the framebuffer with the current clear values.
type ClearCommand struct {
	commandBase
}
