package render

import (
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
)

type align int

const (
	alignLeft align = iota
	alignCenter
	alignRight
)

type textStyle struct {
	weight  weight
	size    float64
	color   color.Color
	leading float64
	align   align
	upper   bool
}

func (st textStyle) lineHeight() float64 {
	if st.leading == 0 {
		return st.size * 1.25
	}
	return st.size * st.leading
}

// FieldBox locates an editable text field on the rendered card, in output
// pixels. Point is set for entries of the points list.
type FieldBox struct {
	Field string `json:"field"`
	Point *int   `json:"point,omitempty"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	W     int    `json:"w"`
	H     int    `json:"h"`
}

// canvas draws in layout units (the 375x469 base) onto a context scaled by
// scale. gg does not scale glyphs with its matrix, so scaling is explicit.
type canvas struct {
	dc     *gg.Context
	scale  float64
	fonts  *fontSet
	fields []FieldBox
}

func newCanvas(scale float64, fonts *fontSet) *canvas {
	return &canvas{
		dc:    gg.NewContext(int(math.Round(BaseWidth*scale)), int(math.Round(BaseHeight*scale))),
		scale: scale,
		fonts: fonts,
	}
}

func (c *canvas) px(v float64) float64 { return v * c.scale }

func (c *canvas) fill(col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawRectangle(0, 0, float64(c.dc.Width()), float64(c.dc.Height()))
	c.dc.Fill()
}

func (c *canvas) fillRect(x, y, w, h float64, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawRectangle(c.px(x), c.px(y), c.px(w), c.px(h))
	c.dc.Fill()
}

func (c *canvas) fillRound(x, y, w, h, r float64, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawRoundedRectangle(c.px(x), c.px(y), c.px(w), c.px(h), c.px(r))
	c.dc.Fill()
}

func (c *canvas) strokeRound(x, y, w, h, r, width float64, col color.Color) {
	c.dc.SetColor(col)
	c.dc.SetLineWidth(c.px(width))
	c.dc.DrawRoundedRectangle(c.px(x), c.px(y), c.px(w), c.px(h), c.px(r))
	c.dc.Stroke()
}

func (c *canvas) fillCircle(cx, cy, r float64, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawCircle(c.px(cx), c.px(cy), c.px(r))
	c.dc.Fill()
}

func (c *canvas) strokeCircle(cx, cy, r, width float64, col color.Color) {
	c.dc.SetColor(col)
	c.dc.SetLineWidth(c.px(width))
	c.dc.DrawCircle(c.px(cx), c.px(cy), c.px(r))
	c.dc.Stroke()
}

func (c *canvas) line(x1, y1, x2, y2, width float64, col color.Color) {
	c.dc.SetColor(col)
	c.dc.SetLineWidth(c.px(width))
	c.dc.SetLineCap(gg.LineCapRound)
	c.dc.DrawLine(c.px(x1), c.px(y1), c.px(x2), c.px(y2))
	c.dc.Stroke()
}

// polyline strokes a path through pts given as x0, y0, x1, y1, ...
func (c *canvas) polyline(width float64, col color.Color, pts ...float64) {
	if len(pts) < 4 {
		return
	}
	c.dc.SetColor(col)
	c.dc.SetLineWidth(c.px(width))
	c.dc.SetLineCap(gg.LineCapRound)
	c.dc.SetLineJoin(gg.LineJoinRound)
	c.dc.MoveTo(c.px(pts[0]), c.px(pts[1]))
	for i := 2; i+1 < len(pts); i += 2 {
		c.dc.LineTo(c.px(pts[i]), c.px(pts[i+1]))
	}
	c.dc.Stroke()
}

type stop struct {
	at  float64
	col color.Color
}

// verticalGradient fills the rect from top (offset 0) to bottom (offset 1).
func (c *canvas) verticalGradient(x, y, w, h float64, stops ...stop) {
	g := gg.NewLinearGradient(c.px(x), c.px(y), c.px(x), c.px(y+h))
	for _, s := range stops {
		g.AddColorStop(s.at, s.col)
	}
	c.dc.SetFillStyle(g)
	c.dc.DrawRectangle(c.px(x), c.px(y), c.px(w), c.px(h))
	c.dc.Fill()
}

func (c *canvas) setFace(st textStyle) {
	c.dc.SetFontFace(c.fonts.face(st.weight, c.px(st.size)))
}

func (c *canvas) lines(st textStyle, s string, w float64) []string {
	c.setFace(st)
	if st.upper {
		s = strings.ToUpper(s)
	}
	var out []string
	for _, para := range strings.Split(s, "\n") {
		if strings.TrimSpace(para) == "" {
			out = append(out, "")
			continue
		}
		out = append(out, c.dc.WordWrap(para, c.px(w))...)
	}
	return out
}

func (c *canvas) textHeight(st textStyle, s string, w float64) float64 {
	return float64(len(c.lines(st, s, w))) * st.lineHeight()
}

func (c *canvas) textWidth(st textStyle, s string) float64 {
	c.setFace(st)
	if st.upper {
		s = strings.ToUpper(s)
	}
	tw, _ := c.dc.MeasureString(s)
	return tw / c.scale
}

// drawText wraps s into width w starting at (x, y) as the top of the first
// line and returns the height used.
func (c *canvas) drawText(st textStyle, s string, x, y, w float64) float64 {
	lines := c.lines(st, s, w)
	m := c.fonts.face(st.weight, c.px(st.size)).Metrics()
	ascent := float64(m.Ascent) / 64
	descent := float64(m.Descent) / 64
	lh := c.px(st.lineHeight())

	c.dc.SetColor(st.color)
	for i, ln := range lines {
		baseline := c.px(y) + float64(i)*lh + (lh-(ascent+descent))/2 + ascent
		lx := c.px(x)
		if st.align != alignLeft {
			lw, _ := c.dc.MeasureString(ln)
			if st.align == alignCenter {
				lx += (c.px(w) - lw) / 2
			} else {
				lx += c.px(w) - lw
			}
		}
		c.dc.DrawString(ln, lx, baseline)
	}
	return float64(len(lines)) * st.lineHeight()
}

// editable draws a text field and records where it landed.
func (c *canvas) editable(field string, point int, st textStyle, s string, x, y, w float64) float64 {
	h := c.drawText(st, s, x, y, w)
	fb := FieldBox{
		Field: field,
		X:     int(math.Round(c.px(x))),
		Y:     int(math.Round(c.px(y))),
		W:     int(math.Round(c.px(w))),
		H:     int(math.Round(c.px(h))),
	}
	if point >= 0 {
		p := point
		fb.Point = &p
	}
	c.fields = append(c.fields, fb)
	return h
}

// drawCover scales img to fill the rect, cropping the overflow.
func (c *canvas) drawCover(img image.Image, x, y, w, h float64) {
	tw, th := int(math.Round(c.px(w))), int(math.Round(c.px(h)))
	if tw <= 0 || th <= 0 {
		return
	}
	c.dc.DrawImage(coverImage(img, tw, th), int(math.Round(c.px(x))), int(math.Round(c.px(y))))
}

// drawAvatar draws img clipped to a circle of radius r centred at (cx, cy).
func (c *canvas) drawAvatar(img image.Image, cx, cy, r float64) {
	side := int(math.Round(c.px(2 * r)))
	if side <= 0 {
		return
	}
	scaled := coverImage(img, side, side)
	c.dc.Push()
	c.dc.DrawCircle(c.px(cx), c.px(cy), c.px(r))
	c.dc.Clip()
	c.dc.DrawImage(scaled, int(math.Round(c.px(cx-r))), int(math.Round(c.px(cy-r))))
	c.dc.ResetClip()
	c.dc.Pop()
}

// coverImage center-crops src to the target aspect ratio and resizes it.
func coverImage(src image.Image, w, h int) image.Image {
	b := src.Bounds()
	sw, sh := b.Dx(), b.Dy()
	if sw == 0 || sh == 0 {
		return image.NewRGBA(image.Rect(0, 0, w, h))
	}

	cropW, cropH := sw, sw*h/w
	if cropH > sh {
		cropH = sh
		cropW = sh * w / h
	}
	x0 := b.Min.X + (sw-cropW)/2
	y0 := b.Min.Y + (sh-cropH)/2
	crop := image.Rect(x0, y0, x0+cropW, y0+cropH)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, draw.Over, nil)
	return dst
}
