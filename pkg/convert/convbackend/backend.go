package convbackend

import (
	"github.com/tauraamui/graydaemon/pkg/raster"
)

// Backend performs the pixel work of a conversion. Grayscale reduces a BGR8
// raster to Gray8 using luma weights, Widen moves a Gray8 raster into 16-bit
// fields multiplied by scale.
type Backend interface {
	Name() string
	Grayscale(raster.Raster) (raster.Raster, error)
	Widen(src raster.Raster, scale int) (raster.Raster, error)
}

func Default() Backend {
	return OpenCV()
}

func OpenCV() Backend {
	return &openCVBackend{}
}

func Native() Backend {
	return &nativeBackend{}
}

func Resolve(t string) Backend {
	switch t {
	case "native":
		return Native()
	default:
		return Default()
	}
}

// Fixed point luma weights with 14 fractional bits, identical to those
// OpenCV uses for 8-bit BGR to gray so both backends agree bit for bit.
const (
	lumaShift = 14
	lumaB     = 1868
	lumaG     = 9617
	lumaR     = 4899
	lumaRound = 1 << (lumaShift - 1)
)

func luma(b, g, r uint8) uint8 {
	return uint8((int(b)*lumaB + int(g)*lumaG + int(r)*lumaR + lumaRound) >> lumaShift)
}
