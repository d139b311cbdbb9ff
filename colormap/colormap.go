// Package colormap turns escape-count buffers into images. Consumers of the
// engine treat the buffer as an opaque heightmap; everything here is
// presentation.
package colormap

import (
	"image"
	"image/color"
	"math"

	"github.com/ajroetker/go-highway/hwy/contrib/algo"

	"github.com/marben/mandelgrid"
)

// Mapper colors a buffer produced with a known iteration budget.
type Mapper struct {
	MaxIters int
	// HueScale stretches the palette along the escape gradient.
	HueScale float64
}

// NewMapper returns a mapper with the default palette tuning.
func NewMapper(maxIters int) Mapper {
	return Mapper{MaxIters: maxIters, HueScale: 0.02}
}

// Image renders the buffer as an RGBA image. Interior pixels (escape count
// equal to the budget) come out black; escaping pixels get an HSV hue from
// the log-smoothed escape gradient.
func (m Mapper) Image(buf mandelgrid.PixelBuffer, width, height int) *image.RGBA {
	shade := Smooth(buf, m.MaxIters)
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i, v := range buf {
		var col color.RGBA
		if int(v) >= m.MaxIters {
			col = color.RGBA{A: 255}
		} else {
			hue := math.Mod(float64(v)*m.HueScale+shade[i]*0.3, 1.0)
			col = hsv(hue, 1, 1)
		}
		x, y := i%width, i/width
		img.SetRGBA(x, y, col)
	}
	return img
}

// Smooth maps escape counts to [0, 1] on a log scale, which evens out the
// steep gradient near the set boundary. The whole buffer is transformed in
// one vectorized pass.
func Smooth(buf mandelgrid.PixelBuffer, maxIters int) []float64 {
	in := make([]float64, len(buf))
	for i, v := range buf {
		in[i] = 1 + float64(v)
	}
	out := make([]float64, len(in))
	algo.LogTransform64(in, out)

	norm := math.Log(1 + float64(maxIters))
	for i := range out {
		out[i] /= norm
	}
	return out
}

// hsv converts a hue/saturation/value triple to RGBA.
func hsv(h, s, v float64) color.RGBA {
	h = math.Mod(h, 1)
	i := int(h * 6)
	f := h*6 - float64(i)
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	var r, g, b float64
	switch i % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	case 5:
		r, g, b = v, p, q
	}
	return color.RGBA{uint8(r * 255), uint8(g * 255), uint8(b * 255), 255}
}
