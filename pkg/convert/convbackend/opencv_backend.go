package convbackend

import (
	"encoding/binary"

	"github.com/tauraamui/graydaemon/pkg/raster"
	"github.com/tauraamui/xerror"
	"gocv.io/x/gocv"
)

type openCVBackend struct{}

func (b *openCVBackend) Name() string { return "opencv" }

func (b *openCVBackend) Grayscale(src raster.Raster) (raster.Raster, error) {
	if src.Format != raster.BGR8 {
		return raster.Raster{}, xerror.Errorf("OpenCV grayscale expects %s raster, got %s", raster.BGR8, src.Format)
	}
	if src.Empty() {
		return raster.New(raster.Gray8, src.Width, src.Height)
	}

	mat, err := gocv.NewMatFromBytes(src.Height, src.Width, gocv.MatTypeCV8UC3, src.Pix)
	if err != nil {
		return raster.Raster{}, xerror.Errorf("unable to load raster into OpenCV mat: %w", err)
	}
	defer mat.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)

	return raster.FromBytes(raster.Gray8, gray.Cols(), gray.Rows(), gray.ToBytes())
}

func (b *openCVBackend) Widen(src raster.Raster, scale int) (raster.Raster, error) {
	if src.Format != raster.Gray8 {
		return raster.Raster{}, xerror.Errorf("OpenCV widen expects %s raster, got %s", raster.Gray8, src.Format)
	}
	if src.Empty() {
		return raster.New(raster.Gray12, src.Width, src.Height)
	}

	mat, err := gocv.NewMatFromBytes(src.Height, src.Width, gocv.MatTypeCV8UC1, src.Pix)
	if err != nil {
		return raster.Raster{}, xerror.Errorf("unable to load raster into OpenCV mat: %w", err)
	}
	defer mat.Close()

	wide := gocv.NewMat()
	defer wide.Close()
	mat.ConvertToWithParams(&wide, gocv.MatTypeCV16UC1, float32(scale), 0)

	samples, err := wide.DataPtrUint16()
	if err != nil {
		return raster.Raster{}, xerror.Errorf("unable to read widened OpenCV mat: %w", err)
	}

	dst, err := raster.New(raster.Gray12, wide.Cols(), wide.Rows())
	if err != nil {
		return raster.Raster{}, err
	}
	for i, v := range samples {
		binary.LittleEndian.PutUint16(dst.Pix[i*2:], v)
	}
	return dst, nil
}
