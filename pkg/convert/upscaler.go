// Package convert turns color camera frames into 12-bit grayscale frames.
package convert

import (
	"github.com/bluenviron/goroslib/v2/pkg/msgs/sensor_msgs"
	"github.com/bluenviron/goroslib/v2/pkg/msgs/std_msgs"
	"github.com/tauraamui/graydaemon/pkg/convert/convbackend"
	"github.com/tauraamui/graydaemon/pkg/imagemsg"
	"github.com/tauraamui/graydaemon/pkg/raster"
)

// Scale widens 8-bit gray values to the 12-bit range, 255 maps to 4080.
const Scale = 16

type Options struct {
	PropagateHeader bool
}

// Upscaler converts bgr frames into mono16 frames holding 12-bit values.
// It keeps no state between frames and is safe for concurrent use as long
// as its backend is.
type Upscaler struct {
	backend convbackend.Backend
	opts    Options
}

func NewUpscaler(backend convbackend.Backend, opts Options) Upscaler {
	return Upscaler{backend: backend, opts: opts}
}

func (u Upscaler) Handle(msg *sensor_msgs.Image) Result {
	encoding := ""
	if msg != nil {
		encoding = msg.Encoding
	}

	src, err := imagemsg.Decode(msg)
	if err != nil {
		return failure(DecodeError, encoding, err)
	}

	wide, err := u.upscale(src)
	if err != nil {
		return failure(ConvertError, encoding, err)
	}

	var header std_msgs.Header
	if u.opts.PropagateHeader {
		header = msg.Header
	}

	out, err := imagemsg.Encode(wide, header)
	if err != nil {
		return failure(EncodeError, encoding, err)
	}
	return success(out)
}

func (u Upscaler) upscale(src raster.Raster) (raster.Raster, error) {
	if src.Empty() {
		return raster.New(raster.Gray12, src.Width, src.Height)
	}

	gray, err := u.backend.Grayscale(src)
	if err != nil {
		return raster.Raster{}, err
	}

	wide, err := u.backend.Widen(gray, Scale)
	if err != nil {
		return raster.Raster{}, err
	}

	raster.Clamp(wide)
	return wide, nil
}
