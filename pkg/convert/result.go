package convert

import (
	"github.com/bluenviron/goroslib/v2/pkg/msgs/sensor_msgs"
	"github.com/tauraamui/xerror"
)

const (
	DecodeError  xerror.Kind = "decode_error"
	ConvertError xerror.Kind = "convert_error"
	EncodeError  xerror.Kind = "encode_error"
)

// Result is the outcome of converting one frame. Exactly one of Frame
// and Err is set.
type Result struct {
	Frame *sensor_msgs.Image
	Kind  xerror.Kind
	Err   xerror.I
}

func (r Result) OK() bool {
	return r.Err == nil
}

func success(frame *sensor_msgs.Image) Result {
	return Result{Frame: frame}
}

func failure(kind xerror.Kind, encoding string, err error) Result {
	return Result{
		Kind: kind,
		Err:  xerror.NewWithKind(kind, err.Error()).WithParam("encoding", encoding),
	}
}
