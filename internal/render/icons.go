package render

import (
	"image/color"
	"math"
)

// Icons are stroked in layout units inside an s x s box at (x, y).

func (c *canvas) iconChevronLeft(x, y, s float64, col color.Color) {
	c.polyline(s*0.12, col, x+s*0.65, y+s*0.15, x+s*0.3, y+s*0.5, x+s*0.65, y+s*0.85)
}

func (c *canvas) iconArrowRight(x, y, s float64, col color.Color) {
	c.line(x+s*0.1, y+s*0.5, x+s*0.9, y+s*0.5, s*0.1, col)
	c.polyline(s*0.1, col, x+s*0.6, y+s*0.2, x+s*0.9, y+s*0.5, x+s*0.6, y+s*0.8)
}

func (c *canvas) iconShare(x, y, s float64, col color.Color) {
	w := s * 0.09
	c.polyline(w, col, x+s*0.3, y+s*0.45, x+s*0.2, y+s*0.45, x+s*0.2, y+s*0.9, x+s*0.8, y+s*0.9, x+s*0.8, y+s*0.45, x+s*0.7, y+s*0.45)
	c.line(x+s*0.5, y+s*0.1, x+s*0.5, y+s*0.62, w, col)
	c.polyline(w, col, x+s*0.33, y+s*0.27, x+s*0.5, y+s*0.1, x+s*0.67, y+s*0.27)
}

func (c *canvas) iconMore(x, y, s float64, col color.Color) {
	for i := 0; i < 3; i++ {
		c.fillCircle(x+s*(0.2+0.3*float64(i)), y+s*0.5, s*0.08, col)
	}
}

// iconUndo draws a circled arrow; redo mirrors it.
func (c *canvas) iconUndo(x, y, s float64, col color.Color, redo bool) {
	cx, cy, r := x+s/2, y+s/2, s*0.46
	c.strokeCircle(cx, cy, r, s*0.07, col)
	dir := 1.0
	if redo {
		dir = -1
	}
	c.dc.SetColor(col)
	c.dc.SetLineWidth(c.px(s * 0.08))
	start, end := math.Pi*0.15, math.Pi*1.05
	if redo {
		start, end = -math.Pi*0.05, math.Pi*0.85
	}
	c.dc.DrawArc(c.px(cx), c.px(cy+s*0.04), c.px(s*0.2), start, end)
	c.dc.Stroke()
	tipX := cx - dir*s*0.2
	tipY := cy + s*0.04
	c.polyline(s*0.08, col, tipX-dir*s*0.01, tipY-s*0.14, tipX, tipY, tipX+dir*s*0.14, tipY-s*0.03)
}

func (c *canvas) iconBookmark(x, y, s float64, col color.Color) {
	c.polyline(s*0.09, col,
		x+s*0.25, y+s*0.1, x+s*0.75, y+s*0.1, x+s*0.75, y+s*0.9,
		x+s*0.5, y+s*0.7, x+s*0.25, y+s*0.9, x+s*0.25, y+s*0.1)
}

func (c *canvas) iconPlane(x, y, s float64, col color.Color) {
	c.polyline(s*0.08, col,
		x+s*0.1, y+s*0.45, x+s*0.9, y+s*0.12, x+s*0.6, y+s*0.9,
		x+s*0.45, y+s*0.55, x+s*0.1, y+s*0.45)
	c.line(x+s*0.45, y+s*0.55, x+s*0.9, y+s*0.12, s*0.08, col)
}

func (c *canvas) iconVerified(x, y, s float64) {
	c.fillCircle(x+s/2, y+s/2, s/2, verifiedBlue)
	c.polyline(s*0.13, white, x+s*0.28, y+s*0.52, x+s*0.44, y+s*0.68, x+s*0.73, y+s*0.36)
}

func (c *canvas) iconPen(x, y, s float64, col color.Color) {
	w := s * 0.09
	c.polyline(w, col,
		x+s*0.2, y+s*0.8, x+s*0.25, y+s*0.6, x+s*0.7, y+s*0.15,
		x+s*0.85, y+s*0.3, x+s*0.4, y+s*0.75, x+s*0.2, y+s*0.8)
	c.line(x+s*0.6, y+s*0.25, x+s*0.75, y+s*0.4, w, col)
	c.line(x+s*0.15, y+s*0.92, x+s*0.85, y+s*0.92, w*0.8, col)
}

// avatarOrPlaceholder draws the profile picture or a tinted circle.
func (c *canvas) avatarOrPlaceholder(f frame, cx, cy, r float64, placeholder color.Color) {
	if f.avatar != nil {
		c.drawAvatar(f.avatar, cx, cy, r)
		return
	}
	c.fillCircle(cx, cy, r, placeholder)
}
