package render

import (
	"fmt"

	"github.com/nyzbk/insta-carousel-v2/internal/models"
)

// influencer is a personal brand layout built around the author's photo.
type influencer struct{}

var influencerBase = hexColor("#111111")

func (influencer) draw(c *canvas, f frame) {
	c.fill(influencerBase)

	_, isFirst := f.slide.(*models.FirstSlide)
	if f.avatar != nil {
		c.drawCover(f.avatar, 0, 0, BaseWidth, BaseHeight)
		if isFirst {
			c.verticalGradient(0, 0, BaseWidth, BaseHeight,
				stop{0, withAlpha(black, 0)},
				stop{0.5, withAlpha(black, 0.1)},
				stop{1, withAlpha(black, 0.95)},
			)
			c.fillRect(0, 0, BaseWidth, BaseHeight, withAlpha(black, 0.1))
		} else {
			c.fillRect(0, 0, BaseWidth, BaseHeight, withAlpha(black, 0.85))
		}
	}

	const x, w = 24.0, BaseWidth - 48.0
	top := 24.0
	if !isFirst {
		hs := textStyle{weight: medium, size: 13, color: gray200}
		c.drawText(hs, f.profile.Handle, x, top, w)
		c.fillRect(x, top+20, c.textWidth(hs, f.profile.Handle)*1.2, 2, withAlpha(white, 0.9))
		top += 40
	}

	footerTop := BaseHeight - 62.0
	switch s := f.slide.(type) {
	case *models.FirstSlide:
		st := textStyle{weight: bold, size: 24, color: white, leading: 1.05, upper: true}
		h := c.textHeight(st, s.Title, w)
		c.editable(models.FieldTitle, -1, st, s.Title, x, footerTop-24-h, w)

	case *models.ContentSlide:
		c.contentPage(s.ContentPage, contentLook{
			title:       textStyle{weight: bold, size: 22, color: white, leading: 1.25},
			intro:       textStyle{weight: regular, size: 16, color: gray200, leading: 1.375},
			point:       textStyle{weight: regular, size: 16, color: gray200, leading: 1.375},
			quote:       textStyle{weight: medium, size: 15, color: gray200, leading: 1.375},
			gap:         16,
			quoteFill:   darkCard,
			quoteBar:    gray400,
			quotePad:    14,
			quoteRadius: 4,
		}, x, top+12, w, footerTop-12)

	case *models.CTASlide:
		title := textStyle{weight: bold, size: 24, color: white, leading: 1.25, upper: true}
		desc := textStyle{weight: italic, size: 16, color: gray200, leading: 1.625}
		th := c.textHeight(title, s.Title, w)
		dh := c.textHeight(desc, s.Description, w-36)
		y := top + (footerTop-top-(th+20+dh+32))/2
		y += c.editable(models.FieldCTATitle, -1, title, s.Title, x, y, w) + 20
		c.fillRect(x, y, w, dh+32, withAlpha(white, 0.05))
		c.fillRect(x, y, 2, dh+32, white)
		c.editable(models.FieldCTADescription, -1, desc, s.Description, x+18, y+16, w-36)
	}

	influencerFooter(c, f, footerTop, isFirst)
}

func influencerFooter(c *canvas, f frame, top float64, isFirst bool) {
	const x, w = 24.0, BaseWidth - 48.0
	c.fillRect(x, top, w, 1, withAlpha(white, 0.3))
	mid := top + 12 + 16

	if isFirst {
		c.fillCircle(x+16, mid, 16, black)
		c.avatarOrPlaceholder(f, x+16, mid, 14, gray700)
		handle := f.profile.BareHandle()
		hs := textStyle{weight: bold, size: 14, color: white}
		c.drawText(hs, handle, x+40, mid-9, 200)
		c.iconVerified(x+44+c.textWidth(hs, handle), mid-8, 16)
		c.drawText(textStyle{weight: medium, size: 12, color: gray300, align: alignRight}, "Сохрани", x+w-110, mid-8, 80)
	} else {
		c.dc.Push()
		c.dc.RotateAbout(-0.26, c.px(x+10), c.px(mid))
		c.iconPlane(x, mid-10, 20, white)
		c.dc.Pop()
		counter := fmt.Sprintf("%d/%d", f.index+1, f.total)
		c.drawText(textStyle{weight: monoBold, size: 10, color: white}, counter, x+36, mid-7, 80)
	}
	c.iconBookmark(x+w-22, mid-11, 22, white)
}
