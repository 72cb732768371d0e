package render

import (
	"image/color"
	"strings"

	"github.com/nyzbk/insta-carousel-v2/internal/models"
)

// contentLook is the per-design styling of a content page.
type contentLook struct {
	title textStyle
	intro textStyle
	point textStyle
	quote textStyle

	gap          float64
	bullet       color.Color
	bulletIndent float64

	quoteFill   color.Color
	quoteBar    color.Color
	quotePad    float64
	quoteRadius float64
}

// contentPage lays out title, intro and points from top and anchors the
// quote block at bottom. When the flow runs long the quote follows it.
func (c *canvas) contentPage(p models.ContentPage, look contentLook, x, top, w, bottom float64) {
	y := top
	y += c.editable(models.FieldTitle, -1, look.title, p.Title, x, y, w) + look.gap

	if strings.TrimSpace(p.IntroParagraph) != "" {
		y += c.editable(models.FieldIntro, -1, look.intro, p.IntroParagraph, x, y, w) + look.gap
	}

	for i, pt := range p.Points {
		if look.bullet != nil {
			c.fillCircle(x+look.bulletIndent/3, y+look.point.lineHeight()/2, look.point.size*0.18, look.bullet)
		}
		y += c.editable(models.FieldPoints, i, look.point, pt, x+look.bulletIndent, y, w-look.bulletIndent) + look.gap*0.6
	}

	if strings.TrimSpace(p.BlockquoteText) == "" {
		return
	}
	pad := look.quotePad
	innerW := w - 2*pad
	if look.quoteBar != nil {
		innerW -= 4
	}
	h := c.textHeight(look.quote, p.BlockquoteText, innerW) + 2*pad
	qy := bottom - h
	if qy < y {
		qy = y
	}
	if look.quoteFill != nil {
		c.fillRound(x, qy, w, h, look.quoteRadius, look.quoteFill)
	}
	tx := x + pad
	if look.quoteBar != nil {
		c.fillRect(x, qy, 3, h, look.quoteBar)
		tx += 4
	}
	c.editable(models.FieldBlockquote, -1, look.quote, p.BlockquoteText, tx, qy+pad, innerW)
}

// ornament is a decoration drawn at a vertical offset inside a text stack.
type ornament struct {
	h    float64
	draw func(c *canvas, y float64)
}

type ctaLook struct {
	title textStyle
	desc  textStyle
	gap   float64
	// above is drawn over the title, between sits between title and description.
	above   *ornament
	between *ornament
}

// ctaBlock centres the CTA stack vertically on mid and returns its bottom edge.
func (c *canvas) ctaBlock(p models.CallToActionPage, look ctaLook, x, mid, w float64) float64 {
	h := c.textHeight(look.title, p.Title, w) + look.gap + c.textHeight(look.desc, p.Description, w)
	for _, o := range []*ornament{look.above, look.between} {
		if o != nil {
			h += o.h + look.gap
		}
	}

	y := mid - h/2
	if look.above != nil {
		look.above.draw(c, y)
		y += look.above.h + look.gap
	}
	y += c.editable(models.FieldCTATitle, -1, look.title, p.Title, x, y, w) + look.gap
	if look.between != nil {
		look.between.draw(c, y)
		y += look.between.h + look.gap
	}
	y += c.editable(models.FieldCTADescription, -1, look.desc, p.Description, x, y, w)
	return y
}
