// Package imagemsg converts between sensor_msgs/Image transport
// messages and tagged rasters.
package imagemsg

import (
	"math"

	"github.com/bluenviron/goroslib/v2/pkg/msgs/sensor_msgs"
	"github.com/bluenviron/goroslib/v2/pkg/msgs/std_msgs"
	"github.com/tauraamui/graydaemon/pkg/raster"
	"github.com/tauraamui/xerror"
)

// Decode interprets msg as an 8-bit color frame and returns it as a tightly
// packed BGR8 raster. Row padding is dropped and rgb/alpha/mono layouts are
// normalized to B, G, R channel order.
func Decode(msg *sensor_msgs.Image) (raster.Raster, error) {
	if msg == nil {
		return raster.Raster{}, xerror.New("no image message to decode")
	}

	layout, ok := decodable[msg.Encoding]
	if !ok {
		return raster.Raster{}, xerror.Errorf("unsupported encoding [%s] for bgr8 conversion", msg.Encoding)
	}

	w, h := int(msg.Width), int(msg.Height)
	rowLen := w * layout.size
	if int(msg.Step) < rowLen {
		return raster.Raster{}, xerror.Errorf(
			"row step %d shorter than %d pixels of %d bytes", msg.Step, w, layout.size,
		)
	}
	if need := int(msg.Step) * h; len(msg.Data) < need {
		return raster.Raster{}, xerror.Errorf(
			"image data truncated: %dx%d with step %d needs %d bytes, has %d", w, h, msg.Step, need, len(msg.Data),
		)
	}

	dst, err := raster.New(raster.BGR8, w, h)
	if err != nil {
		return raster.Raster{}, err
	}

	step := int(msg.Step)
	for y := 0; y < h; y++ {
		row := msg.Data[y*step : y*step+rowLen]
		out := dst.Pix[y*dst.Stride() : (y+1)*dst.Stride()]
		for x := 0; x < w; x++ {
			px := row[x*layout.size:]
			out[x*3+0] = px[layout.b]
			out[x*3+1] = px[layout.g]
			out[x*3+2] = px[layout.r]
		}
	}

	return dst, nil
}

// Encode packages a 12-bit grayscale raster as a little endian mono16 message.
func Encode(r raster.Raster, header std_msgs.Header) (*sensor_msgs.Image, error) {
	if r.Format != raster.Gray12 {
		return nil, xerror.Errorf("cannot encode %s raster as %s", r.Format, Mono16)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if uint64(r.Width)*2 > math.MaxUint32 || uint64(r.Height) > math.MaxUint32 {
		return nil, xerror.Errorf("raster dimensions %dx%d overflow image message", r.Width, r.Height)
	}

	return &sensor_msgs.Image{
		Header:      header,
		Height:      uint32(r.Height),
		Width:       uint32(r.Width),
		Encoding:    Mono16,
		IsBigendian: 0,
		Step:        uint32(r.Stride()),
		Data:        r.Pix,
	}, nil
}
