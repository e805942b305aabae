package imagemsg

// Encoding names as carried in the sensor_msgs/Image encoding field.
const (
	BGR8   = "bgr8"
	RGB8   = "rgb8"
	BGRA8  = "bgra8"
	RGBA8  = "rgba8"
	Mono8  = "mono8"
	Mono16 = "mono16"
)

// colorLayout maps an accepted 8-bit input encoding onto the source byte
// offset of the blue, green and red channels and the source pixel size.
type colorLayout struct {
	b, g, r int
	size    int
}

var decodable = map[string]colorLayout{
	BGR8:  {b: 0, g: 1, r: 2, size: 3},
	RGB8:  {b: 2, g: 1, r: 0, size: 3},
	BGRA8: {b: 0, g: 1, r: 2, size: 4},
	RGBA8: {b: 2, g: 1, r: 0, size: 4},
	Mono8: {b: 0, g: 0, r: 0, size: 1},
}

// Decodable reports whether frames tagged with enc can be decoded into BGR.
func Decodable(enc string) bool {
	_, ok := decodable[enc]
	return ok
}
