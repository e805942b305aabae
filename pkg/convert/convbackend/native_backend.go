package convbackend

import (
	"encoding/binary"

	"github.com/tauraamui/graydaemon/pkg/raster"
	"github.com/tauraamui/xerror"
)

type nativeBackend struct{}

func (b *nativeBackend) Name() string { return "native" }

func (b *nativeBackend) Grayscale(src raster.Raster) (raster.Raster, error) {
	if src.Format != raster.BGR8 {
		return raster.Raster{}, xerror.Errorf("native grayscale expects %s raster, got %s", raster.BGR8, src.Format)
	}
	dst, err := raster.New(raster.Gray8, src.Width, src.Height)
	if err != nil {
		return raster.Raster{}, err
	}
	for i := range dst.Pix {
		px := src.Pix[i*3 : i*3+3]
		dst.Pix[i] = luma(px[0], px[1], px[2])
	}
	return dst, nil
}

func (b *nativeBackend) Widen(src raster.Raster, scale int) (raster.Raster, error) {
	if src.Format != raster.Gray8 {
		return raster.Raster{}, xerror.Errorf("native widen expects %s raster, got %s", raster.Gray8, src.Format)
	}
	dst, err := raster.New(raster.Gray12, src.Width, src.Height)
	if err != nil {
		return raster.Raster{}, err
	}
	for i, v := range src.Pix {
		binary.LittleEndian.PutUint16(dst.Pix[i*2:], saturate16(int(v)*scale))
	}
	return dst, nil
}

func saturate16(v int) uint16 {
	if v < 0 {
		return 0
	}
	if v > 0xFFFF {
		return 0xFFFF
	}
	return uint16(v)
}
