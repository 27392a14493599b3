package vkscript

import (
	"fmt"
	"strings"

	"github.com/gogpu/gputypes"
)

// vkFormatPrefix is accepted and stripped so scripts may spell formats
// either as R8G8B8A8_UNORM or VK_FORMAT_R8G8B8A8_UNORM.
const vkFormatPrefix = "VK_FORMAT_"

var formatModeNames = map[string]FormatMode{
	"SINT":   FormatModeSInt,
	"UINT":   FormatModeUInt,
	"SNORM":  FormatModeSNorm,
	"UNORM":  FormatModeUNorm,
	"SFLOAT": FormatModeSFloat,
	"UFLOAT": FormatModeUFloat,
}

// ParseFormat parses a Vulkan-style format name such as
// R32G32B32A32_SFLOAT, A8B8G8R8_UNORM_PACK32 or D24_UNORM_S8_UINT into a
// Format. The VK_FORMAT_ prefix is optional.
func ParseFormat(name string) (*Format, error) {
	spec := strings.TrimPrefix(name, vkFormatPrefix)

	// Depth/stencil names mix two modes and do not follow the single
	// channel-run / mode split, so they are resolved directly.
	switch spec {
	case "D16_UNORM":
		return newFormat(spec, []Component{{Name: "D", Mode: FormatModeUNorm, Bits: 16}}, 0), nil
	case "D32_SFLOAT":
		return newFormat(spec, []Component{{Name: "D", Mode: FormatModeSFloat, Bits: 32}}, 0), nil
	case "S8_UINT":
		return newFormat(spec, []Component{{Name: "S", Mode: FormatModeUInt, Bits: 8}}, 0), nil
	case "D24_UNORM_S8_UINT":
		return newFormat(spec, []Component{
			{Name: "D", Mode: FormatModeUNorm, Bits: 24},
			{Name: "S", Mode: FormatModeUInt, Bits: 8},
		}, 32), nil
	}

	parts := strings.Split(spec, "_")
	if len(parts) < 2 || len(parts) > 3 {
		return nil, fmt.Errorf("invalid format name: %s", name)
	}

	var packBits uint32
	if len(parts) == 3 {
		switch parts[2] {
		case "PACK8":
			packBits = 8
		case "PACK16":
			packBits = 16
		case "PACK32":
			packBits = 32
		default:
			return nil, fmt.Errorf("invalid format name: %s", name)
		}
	}

	mode, ok := formatModeNames[parts[1]]
	if !ok {
		return nil, fmt.Errorf("unsupported format mode in %s", name)
	}

	comps, err := parseChannelRun(parts[0], mode)
	if err != nil {
		return nil, fmt.Errorf("invalid format name: %s", name)
	}

	if packBits > 0 {
		var total uint32
		for _, c := range comps {
			total += c.Bits
		}
		if total != packBits {
			return nil, fmt.Errorf("packed format %s does not fill its pack", name)
		}
	}

	return newFormat(spec, comps, packBits), nil
}

// parseChannelRun parses a channel spec like R32G32B32A32 into components
// carrying the given mode.
func parseChannelRun(run string, mode FormatMode) ([]Component, error) {
	var comps []Component
	for i := 0; i < len(run); {
		ch := run[i]
		switch ch {
		case 'R', 'G', 'B', 'A', 'X':
		default:
			return nil, fmt.Errorf("bad channel %q", ch)
		}
		i++
		start := i
		for i < len(run) && run[i] >= '0' && run[i] <= '9' {
			i++
		}
		if start == i {
			return nil, fmt.Errorf("channel %q has no width", ch)
		}
		var bits uint32
		for _, d := range run[start:i] {
			bits = bits*10 + uint32(d-'0')
		}
		comps = append(comps, Component{Name: string(ch), Mode: mode, Bits: bits})
	}
	if len(comps) == 0 {
		return nil, fmt.Errorf("empty channel run")
	}
	return comps, nil
}

var glslBaseTypes = map[string]struct {
	mode FormatMode
	bits uint32
}{
	"float":  {FormatModeSFloat, 32},
	"double": {FormatModeSFloat, 64},
	"int":    {FormatModeSInt, 32},
	"uint":   {FormatModeUInt, 32},
}

// parseGlslFormat translates a GLSL base/vector type pair such as
// float/vec2 or int/ivec3 into the equivalent Vulkan format
// (R32G32_SFLOAT, R32G32B32_SINT, ...).
func parseGlslFormat(baseType, vecType string) (*Format, error) {
	base, ok := glslBaseTypes[baseType]
	if !ok {
		return nil, fmt.Errorf("unknown GLSL base type: %s", baseType)
	}

	count := 0
	switch {
	case strings.HasPrefix(vecType, "vec"), strings.HasPrefix(vecType, "ivec"),
		strings.HasPrefix(vecType, "uvec"), strings.HasPrefix(vecType, "dvec"):
		switch vecType[len(vecType)-1] {
		case '2':
			count = 2
		case '3':
			count = 3
		case '4':
			count = 4
		}
	}
	if count == 0 {
		return nil, fmt.Errorf("unknown GLSL vector type: %s", vecType)
	}

	channels := []string{"R", "G", "B", "A"}
	var sb strings.Builder
	for i := 0; i < count; i++ {
		fmt.Fprintf(&sb, "%s%d", channels[i], base.bits)
	}
	fmt.Fprintf(&sb, "_%s", base.mode)
	return ParseFormat(sb.String())
}

// TextureFormat returns the WebGPU texture format equivalent to this
// format, or gputypes.TextureFormatUndefined when no equivalent exists.
// The external executor uses this to create capture targets.
func (f *Format) TextureFormat() gputypes.TextureFormat {
	switch f.name {
	case "R8_UNORM":
		return gputypes.TextureFormatR8Unorm
	case "R8G8B8A8_UNORM":
		return gputypes.TextureFormatRGBA8Unorm
	case "B8G8R8A8_UNORM":
		return gputypes.TextureFormatBGRA8Unorm
	case "D24_UNORM_S8_UINT":
		return gputypes.TextureFormatDepth24PlusStencil8
	}
	return gputypes.TextureFormatUndefined
}

// VertexFormat returns the WebGPU vertex format equivalent to this
// format. The second result is false when no equivalent exists.
func (f *Format) VertexFormat() (gputypes.VertexFormat, bool) {
	switch f.name {
	case "R32_SFLOAT":
		return gputypes.VertexFormatFloat32, true
	case "R32G32_SFLOAT":
		return gputypes.VertexFormatFloat32x2, true
	case "R32G32B32A32_SFLOAT":
		return gputypes.VertexFormatFloat32x4, true
	}
	return 0, false
}
