package convbackend_test

import (
	"testing"

	"github.com/matryer/is"
	"github.com/tauraamui/graydaemon/pkg/convert/convbackend"
	"github.com/tauraamui/graydaemon/pkg/raster"
)

func TestBackendDefaultIsOpenCV(t *testing.T) {
	is := is.New(t)
	is.True(convbackend.Default() != nil)
	is.Equal(convbackend.Default().Name(), "opencv")
}

func TestBackendResolve(t *testing.T) {
	is := is.New(t)
	is.Equal(convbackend.Resolve("native").Name(), "native")
	is.Equal(convbackend.Resolve("opencv").Name(), "opencv")
	is.Equal(convbackend.Resolve("").Name(), "opencv")
}

func backends() []convbackend.Backend {
	return []convbackend.Backend{convbackend.Native(), convbackend.OpenCV()}
}

func bgr(t *testing.T, w, h int, px ...byte) raster.Raster {
	t.Helper()
	r, err := raster.FromBytes(raster.BGR8, w, h, px)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestGrayscaleLumaWeights(t *testing.T) {
	tests := []struct {
		name    string
		b, g, r byte
		want    byte
	}{
		{name: "black", want: 0},
		{name: "white", b: 255, g: 255, r: 255, want: 255},
		{name: "pure red", r: 255, want: 76},
		{name: "pure green", g: 255, want: 150},
		{name: "pure blue", b: 255, want: 29},
		{name: "uniform 200", b: 200, g: 200, r: 200, want: 200},
		{name: "mixed", b: 10, g: 100, r: 200, want: 120},
	}

	for _, backend := range backends() {
		for _, tt := range tests {
			t.Run(backend.Name()+"/"+tt.name, func(t *testing.T) {
				is := is.New(t)
				gray, err := backend.Grayscale(bgr(t, 1, 1, tt.b, tt.g, tt.r))
				is.NoErr(err)
				is.Equal(gray.Format, raster.Gray8)
				is.Equal(gray.Pix, []byte{tt.want})
			})
		}
	}
}

func TestGrayscaleUniformValuesAreExact(t *testing.T) {
	for _, backend := range backends() {
		t.Run(backend.Name(), func(t *testing.T) {
			is := is.New(t)
			px := make([]byte, 0, 256*3)
			for v := 0; v < 256; v++ {
				px = append(px, byte(v), byte(v), byte(v))
			}
			gray, err := backend.Grayscale(bgr(t, 256, 1, px...))
			is.NoErr(err)
			for v := 0; v < 256; v++ {
				is.Equal(int(gray.Pix[v]), v)
			}
		})
	}
}

func TestGrayscalePreservesLayout(t *testing.T) {
	for _, backend := range backends() {
		t.Run(backend.Name(), func(t *testing.T) {
			is := is.New(t)
			src := bgr(t, 3, 2,
				0, 0, 0, 255, 255, 255, 0, 0, 255,
				50, 50, 50, 0, 255, 0, 255, 0, 0,
			)
			gray, err := backend.Grayscale(src)
			is.NoErr(err)
			is.Equal(gray.Width, 3)
			is.Equal(gray.Height, 2)
			is.Equal(gray.Pix, []byte{0, 255, 76, 50, 150, 29})
		})
	}
}

func TestGrayscaleZeroArea(t *testing.T) {
	for _, backend := range backends() {
		t.Run(backend.Name(), func(t *testing.T) {
			is := is.New(t)
			gray, err := backend.Grayscale(bgr(t, 0, 0))
			is.NoErr(err)
			is.True(gray.Empty())
		})
	}
}

func TestGrayscaleRejectsWrongFormat(t *testing.T) {
	for _, backend := range backends() {
		t.Run(backend.Name(), func(t *testing.T) {
			is := is.New(t)
			src, err := raster.New(raster.Gray8, 1, 1)
			is.NoErr(err)
			_, err = backend.Grayscale(src)
			is.True(err != nil)
		})
	}
}

func TestWidenScalesIntoSixteenBitFields(t *testing.T) {
	for _, backend := range backends() {
		t.Run(backend.Name(), func(t *testing.T) {
			is := is.New(t)
			src, err := raster.FromBytes(raster.Gray8, 2, 2, []byte{0, 1, 76, 255})
			is.NoErr(err)

			wide, err := backend.Widen(src, 16)
			is.NoErr(err)
			is.Equal(wide.Format, raster.Gray12)
			is.Equal(wide.Width, 2)
			is.Equal(wide.Height, 2)
			is.Equal(wide.At(0, 0, 0), 0)
			is.Equal(wide.At(1, 0, 0), 16)
			is.Equal(wide.At(0, 1, 0), 1216)
			is.Equal(wide.At(1, 1, 0), 4080)
		})
	}
}

func TestWidenZeroArea(t *testing.T) {
	for _, backend := range backends() {
		t.Run(backend.Name(), func(t *testing.T) {
			is := is.New(t)
			src, err := raster.New(raster.Gray8, 0, 3)
			is.NoErr(err)
			wide, err := backend.Widen(src, 16)
			is.NoErr(err)
			is.True(wide.Empty())
			is.Equal(wide.Height, 3)
		})
	}
}

func TestWidenRejectsWrongFormat(t *testing.T) {
	for _, backend := range backends() {
		t.Run(backend.Name(), func(t *testing.T) {
			is := is.New(t)
			_, err := backend.Widen(bgr(t, 1, 1, 0, 0, 0), 16)
			is.True(err != nil)
		})
	}
}
