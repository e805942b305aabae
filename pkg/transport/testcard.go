package transport

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"time"

	"github.com/bluenviron/goroslib/v2/pkg/msgs/sensor_msgs"
	"github.com/bluenviron/goroslib/v2/pkg/msgs/std_msgs"
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/tauraamui/graydaemon/pkg/imagemsg"
	"github.com/tauraamui/xerror"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

const (
	testcardWidth   = 600
	testcardHeight  = 400
	testcardFrameID = "testcard"
)

type testcard struct {
	title string
	seq   uint32
	face  font.Face
	base  *image.RGBA
}

func newTestcard(title string) (*testcard, error) {
	fontFace, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		return nil, xerror.Errorf("unable to parse testcard font: %w", err)
	}
	return &testcard{
		title: title,
		face: truetype.NewFace(fontFace, &truetype.Options{
			Size:    32,
			Hinting: font.HintingFull,
		}),
		base: renderTestcardCanvas(testcardWidth, testcardHeight),
	}, nil
}

// Frame renders the card stamped with now as a bgr8 image message.
func (c *testcard) Frame(now time.Time) *sensor_msgs.Image {
	canvas := cloneImage(c.base)
	drawText(canvas, c.face, 5, 50, "GRAYD_TESTCARD")
	drawText(canvas, c.face, 5, 180, c.title)
	drawText(canvas, c.face, 5, 310, now.Format("2006-01-02 15:04:05.999999999"))

	c.seq++
	return rgbaToBGR8(canvas, std_msgs.Header{Seq: c.seq, Stamp: now, FrameId: testcardFrameID})
}

func renderTestcardCanvas(w, h int) *image.RGBA {
	var hw, hh float64 = float64(w / 2), float64(h / 2)
	r := 200.0
	θ := 2 * math.Pi / 3
	cr := &circle{hw - r*math.Sin(0), hh - r*math.Cos(0), 300}
	cg := &circle{hw - r*math.Sin(θ), hh - r*math.Cos(θ), 300}
	cb := &circle{hw - r*math.Sin(-θ), hh - r*math.Cos(-θ), 300}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{
				cr.Brightness(float64(x), float64(y)),
				cg.Brightness(float64(x), float64(y)),
				cb.Brightness(float64(x), float64(y)),
				255,
			})
		}
	}
	return img
}

func cloneImage(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, src, b.Min, draw.Src)
	return dst
}

func drawText(canvas *image.RGBA, face font.Face, x, y int, text string) {
	fontDrawer := &font.Drawer{
		Dst:  canvas,
		Src:  image.White,
		Face: face,
	}
	textBounds, _ := fontDrawer.BoundString(text)
	textHeight := textBounds.Max.Y - textBounds.Min.Y
	yPosition := fixed.I((y)-textHeight.Ceil())/2 + fixed.I(textHeight.Ceil())
	fontDrawer.Dot = fixed.Point26_6{
		X: fixed.I(x),
		Y: yPosition,
	}
	fontDrawer.DrawString(text)
}

func rgbaToBGR8(img *image.RGBA, header std_msgs.Header) *sensor_msgs.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	data := make([]byte, 0, w*h*3)
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := 0; x < w; x++ {
			data = append(data, row[x*4+2], row[x*4+1], row[x*4])
		}
	}
	return &sensor_msgs.Image{
		Header:   header,
		Width:    uint32(w),
		Height:   uint32(h),
		Encoding: imagemsg.BGR8,
		Step:     uint32(w * 3),
		Data:     data,
	}
}

type circle struct {
	X, Y, R float64
}

func (c *circle) Brightness(x, y float64) uint8 {
	var dx, dy float64 = c.X - x, c.Y - y
	d := math.Sqrt(dx*dx+dy*dy) / c.R
	if d > 1 {
		return 0
	}
	return 255
}
