package raster_test

import (
	"testing"

	"github.com/matryer/is"
	"github.com/tauraamui/graydaemon/pkg/raster"
)

func TestFormatBytesPerPixel(t *testing.T) {
	is := is.New(t)
	is.Equal(raster.BGR8.BytesPerPixel(), 3)
	is.Equal(raster.Gray8.BytesPerPixel(), 1)
	is.Equal(raster.Gray12.BytesPerPixel(), 2)
}

func TestFormatMax(t *testing.T) {
	is := is.New(t)
	is.Equal(raster.Gray8.Max(), 255)
	is.Equal(raster.Gray12.Max(), 4095)
}

func TestNewAllocatesZeroedPayload(t *testing.T) {
	is := is.New(t)
	r, err := raster.New(raster.Gray12, 4, 3)
	is.NoErr(err)
	is.Equal(len(r.Pix), 24)
	is.Equal(r.Stride(), 8)
	is.True(!r.Empty())
}

func TestNewRejectsNegativeDimensions(t *testing.T) {
	is := is.New(t)
	_, err := raster.New(raster.BGR8, -1, 2)
	is.True(err != nil)
}

func TestZeroAreaRasterIsEmptyAndValid(t *testing.T) {
	is := is.New(t)
	r, err := raster.New(raster.BGR8, 0, 0)
	is.NoErr(err)
	is.True(r.Empty())
	is.NoErr(r.Validate())
}

func TestFromBytesRejectsShortPayload(t *testing.T) {
	is := is.New(t)
	_, err := raster.FromBytes(raster.BGR8, 2, 2, make([]byte, 11))
	is.True(err != nil)
	is.Equal(err.Error(), "raster bgr8(8) 2x2 expects 12 bytes, has 11")
}

func TestSetAndAtRoundTrip16Bit(t *testing.T) {
	is := is.New(t)
	r, err := raster.New(raster.Gray12, 2, 2)
	is.NoErr(err)
	r.Set(1, 1, 0, 4080)
	is.Equal(r.At(1, 1, 0), 4080)
	is.Equal(r.Pix[6:8], []byte{0xF0, 0x0F})
}

func TestSetAndAtAddressChannels(t *testing.T) {
	is := is.New(t)
	r, err := raster.New(raster.BGR8, 2, 1)
	is.NoErr(err)
	r.Set(1, 0, 2, 255)
	is.Equal(r.Pix, []byte{0, 0, 0, 0, 0, 255})
	is.Equal(r.At(1, 0, 2), 255)
}

func TestClampLimitsSamplesToSignificantBits(t *testing.T) {
	is := is.New(t)
	r, err := raster.New(raster.Gray12, 3, 1)
	is.NoErr(err)
	r.Set(0, 0, 0, 0)
	r.Set(1, 0, 0, 4095)
	r.Set(2, 0, 0, 65535)

	raster.Clamp(r)

	is.Equal(r.At(0, 0, 0), 0)
	is.Equal(r.At(1, 0, 0), 4095)
	is.Equal(r.At(2, 0, 0), 4095)
}

func TestClampIgnores8BitRasters(t *testing.T) {
	is := is.New(t)
	r, err := raster.FromBytes(raster.Gray8, 2, 1, []byte{255, 7})
	is.NoErr(err)
	raster.Clamp(r)
	is.Equal(r.Pix, []byte{255, 7})
}
