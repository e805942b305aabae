// Package raster holds row-major pixel grids tagged with the
// layout they were decoded or produced with.
package raster

import (
	"encoding/binary"
	"fmt"

	"github.com/tauraamui/xerror"
)

type Order int

const (
	OrderGray Order = iota
	OrderBGR
)

func (o Order) String() string {
	switch o {
	case OrderGray:
		return "gray"
	case OrderBGR:
		return "bgr"
	default:
		return fmt.Sprintf("order(%d)", int(o))
	}
}

// Format describes the pixel layout of a raster. Depth is the size in bits
// of each channel's storage field, Significant the number of those bits
// that may be set.
type Format struct {
	Channels    int
	Depth       int
	Order       Order
	Significant int
}

var (
	BGR8   = Format{Channels: 3, Depth: 8, Order: OrderBGR, Significant: 8}
	Gray8  = Format{Channels: 1, Depth: 8, Order: OrderGray, Significant: 8}
	Gray12 = Format{Channels: 1, Depth: 16, Order: OrderGray, Significant: 12}
)

func (f Format) BytesPerPixel() int {
	return f.Channels * f.Depth / 8
}

// Max is the largest value a single channel is allowed to hold.
func (f Format) Max() int {
	return 1<<uint(f.Significant) - 1
}

func (f Format) String() string {
	return fmt.Sprintf("%s%d(%d)", f.Order, f.Depth, f.Significant)
}

// Raster is a tightly packed row-major image. Multi-byte channels
// are stored little endian.
type Raster struct {
	Format Format
	Width  int
	Height int
	Pix    []byte
}

func (r Raster) Stride() int {
	return r.Width * r.Format.BytesPerPixel()
}

func (r Raster) Empty() bool {
	return r.Width == 0 || r.Height == 0
}

// New allocates a zeroed raster of the given layout and dimensions.
func New(f Format, w, h int) (Raster, error) {
	if w < 0 || h < 0 {
		return Raster{}, xerror.Errorf("invalid raster dimensions %dx%d", w, h)
	}
	return Raster{Format: f, Width: w, Height: h, Pix: make([]byte, w*h*f.BytesPerPixel())}, nil
}

// FromBytes wraps pix as a raster after checking the payload matches the layout.
func FromBytes(f Format, w, h int, pix []byte) (Raster, error) {
	r := Raster{Format: f, Width: w, Height: h, Pix: pix}
	if err := r.Validate(); err != nil {
		return Raster{}, err
	}
	return r, nil
}

func (r Raster) Validate() error {
	if r.Width < 0 || r.Height < 0 {
		return xerror.Errorf("invalid raster dimensions %dx%d", r.Width, r.Height)
	}
	if r.Format.Depth != 8 && r.Format.Depth != 16 {
		return xerror.Errorf("unsupported channel depth %d", r.Format.Depth)
	}
	if r.Format.Channels < 1 {
		return xerror.Errorf("unsupported channel count %d", r.Format.Channels)
	}
	if want := r.Stride() * r.Height; len(r.Pix) != want {
		return xerror.Errorf("raster %s %dx%d expects %d bytes, has %d", r.Format, r.Width, r.Height, want, len(r.Pix))
	}
	return nil
}

func (r Raster) offset(x, y, c int) int {
	return y*r.Stride() + x*r.Format.BytesPerPixel() + c*r.Format.Depth/8
}

// At returns the value of channel c of the pixel at x, y.
func (r Raster) At(x, y, c int) int {
	i := r.offset(x, y, c)
	if r.Format.Depth == 16 {
		return int(binary.LittleEndian.Uint16(r.Pix[i:]))
	}
	return int(r.Pix[i])
}

func (r Raster) Set(x, y, c, v int) {
	i := r.offset(x, y, c)
	if r.Format.Depth == 16 {
		binary.LittleEndian.PutUint16(r.Pix[i:], uint16(v))
		return
	}
	r.Pix[i] = uint8(v)
}

// Clamp limits every 16-bit sample of r to [0, r.Format.Max()] in place.
func Clamp(r Raster) {
	if r.Format.Depth != 16 {
		return
	}
	ceil := uint16(r.Format.Max())
	for i := 0; i+1 < len(r.Pix); i += 2 {
		if binary.LittleEndian.Uint16(r.Pix[i:]) > ceil {
			binary.LittleEndian.PutUint16(r.Pix[i:], ceil)
		}
	}
}
