package vkscript

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
)

// ToImage converts an image-shaped color buffer to an NRGBA image for
// failure triage. Supported layouts are 8-bit UNorm, 16-bit float and
// 32-bit float components in R, RG, RGB, RGBA or BGRA order; anything
// else is rejected.
func (b *Buffer) ToImage() (*image.NRGBA, error) {
	if b.width == 0 || b.height == 0 {
		return nil, fmt.Errorf("buffer is not image shaped")
	}
	if b.format == nil || b.format.IsPacked() {
		return nil, fmt.Errorf("format %s cannot be rendered to an image", b.format.Name())
	}
	comps := b.format.Components()
	if len(comps) == 0 || len(comps) > 4 {
		return nil, fmt.Errorf("format %s cannot be rendered to an image", b.format.Name())
	}
	if uint32(len(b.bytes)) < b.width*b.height*b.format.SizeInBytes() {
		return nil, fmt.Errorf("buffer holds fewer bytes than its extent needs")
	}

	img := image.NewNRGBA(image.Rect(0, 0, int(b.width), int(b.height)))
	stride := b.format.SizeInBytes()
	for y := uint32(0); y < b.height; y++ {
		for x := uint32(0); x < b.width; x++ {
			px := b.bytes[(y*b.width+x)*stride:]
			c := color.NRGBA{A: 0xff}
			off := uint32(0)
			for _, comp := range comps {
				v, err := channelByte(comp, px[off:])
				if err != nil {
					return nil, err
				}
				switch comp.Name {
				case "R":
					c.R = v
				case "G":
					c.G = v
				case "B":
					c.B = v
				case "A":
					c.A = v
				}
				off += comp.Bits / 8
			}
			img.SetNRGBA(int(x), int(y), c)
		}
	}
	return img, nil
}

// channelByte reads one component and maps it to 0..255.
func channelByte(comp Component, buf []byte) (uint8, error) {
	switch {
	case comp.Mode == FormatModeUNorm && comp.Bits == 8:
		return buf[0], nil
	case comp.Mode == FormatModeSFloat && comp.Bits == 16:
		return clampChannel(float16ToFloat32(binary.LittleEndian.Uint16(buf))), nil
	case comp.Mode == FormatModeSFloat && comp.Bits == 32:
		return clampChannel(math.Float32frombits(binary.LittleEndian.Uint32(buf))), nil
	}
	return 0, fmt.Errorf("component %s%d cannot be rendered to an image", comp.Mode, comp.Bits)
}

func clampChannel(f float32) uint8 {
	switch {
	case f <= 0:
		return 0
	case f >= 1:
		return 255
	}
	return uint8(f*255 + 0.5)
}

// SavePNG writes the buffer as a PNG file.
func (b *Buffer) SavePNG(path string) error {
	img, err := b.ToImage()
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return png.Encode(f, img)
}
