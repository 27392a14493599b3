// Package vkscript parses GPU conformance-test scripts and manages the
// binary buffers they describe.
//
// # Overview
//
// A vkscript test is a plain-text file of [section] blocks: capability
// requirements, index and vertex data, shader sources and a [test]
// command list. This package turns that text into a Script — ordered
// buffers, commands, requirements and shaders — packing human-written
// literals (integers, hex, floats) into tightly laid-out bytes according
// to per-component pixel and vertex formats. After an external executor
// runs the test on a device and writes result bytes back, the same
// buffers compare themselves against expectations, either exactly or
// within an RMSE tolerance.
//
// # Quick Start
//
//	script, err := vkscript.Parse(source)
//	if err != nil {
//	    log.Fatal(err) // "<line>: <message>"
//	}
//
//	// Hand the script to an executor, then check the result:
//	expected := script.Buffers()[0]
//	if err := result.CompareRMSE(expected, 0.5); err != nil {
//	    fmt.Println("test failed:", err)
//	}
//
// # Buffer ordering
//
// Buffer order in a Script is part of the contract: index 0 is always the
// default color target, and every [require], [indices] and [vertex data]
// declaration appends after it in script order. Consumers locate buffers
// by role plus declaration order, never by name.
//
// # Shaders
//
// Shader sections carry WGSL and compile to SPIR-V through gogpu/naga
// ([Shader.Compile]). The engine stores and compiles shader text; it
// never touches a device — execution belongs to the embedding tool.
//
// # Concurrency
//
// Parsing and buffer operations are synchronous and single-owner. Run
// concurrent scripts on independently owned Script/Buffer sets.
package vkscript
