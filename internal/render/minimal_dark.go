package render

import (
	"fmt"

	"github.com/nyzbk/insta-carousel-v2/internal/models"
)

// minimalDark is an editorial black layout with a fixed action footer.
type minimalDark struct{}

var darkCard = hexColor("#1A1A1A")

const darkFooter = 50.0

func (minimalDark) draw(c *canvas, f frame) {
	c.fill(black)

	_, isFirst := f.slide.(*models.FirstSlide)
	if isFirst && f.avatar != nil {
		c.drawCover(f.avatar, 0, 0, BaseWidth, BaseHeight)
		c.fillRect(0, 0, BaseWidth, BaseHeight, withAlpha(black, 0.05))
		c.verticalGradient(0, 0, BaseWidth, BaseHeight,
			stop{0, withAlpha(black, 0)},
			stop{0.5, withAlpha(black, 0.2)},
			stop{1, withAlpha(black, 0.9)},
		)
	}

	counter := fmt.Sprintf("%d/%d", f.index+1, f.total)
	c.drawText(textStyle{weight: bold, size: 12, color: gray300, align: alignRight}, counter, BaseWidth-100, 18, 80)

	const x, w = 24.0, BaseWidth - 48.0
	bottom := BaseHeight - darkFooter - 14
	switch s := f.slide.(type) {
	case *models.FirstSlide:
		st := textStyle{weight: bold, size: 24, color: white, leading: 1.1}
		h := c.textHeight(st, s.Title, w)
		c.editable(models.FieldTitle, -1, st, s.Title, x, bottom-24-h, w)

	case *models.ContentSlide:
		c.contentPage(s.ContentPage, contentLook{
			title:       textStyle{weight: bold, size: 22, color: white, leading: 1.2},
			intro:       textStyle{weight: regular, size: 15, color: gray300, leading: 1.625},
			point:       textStyle{weight: regular, size: 15, color: white, leading: 1.375},
			quote:       textStyle{weight: medium, size: 14, color: white, leading: 1.375},
			gap:         16,
			quoteFill:   darkCard,
			quoteBar:    white,
			quotePad:    14,
			quoteRadius: 8,
		}, x, 48, w, bottom)

	case *models.CTASlide:
		y := 64.0
		y += c.editable(models.FieldCTATitle, -1, textStyle{weight: bold, size: 24, color: white, leading: 1.25}, s.Title, x, y, w) + 24
		c.editable(models.FieldCTADescription, -1, textStyle{weight: regular, size: 15, color: gray300, leading: 1.625}, s.Description, x, y, w)

		name := f.profile.Name
		if name == "" {
			name = "Автор"
		}
		const cardH = 70.0
		cy := bottom - cardH
		c.fillRound(x, cy, w, cardH, 8, darkCard)
		c.fillRect(x, cy, 2, cardH, white)
		c.drawText(textStyle{weight: medium, size: 14, color: gray300}, name, x+20, cy+16, w-40)
		c.drawText(textStyle{weight: regular, size: 12, color: gray500}, f.profile.Handle, x+20, cy+40, w-40)
	}

	darkFooterBar(c, f, isFirst)
}

func darkFooterBar(c *canvas, f frame, isFirst bool) {
	top := BaseHeight - darkFooter
	c.fillRect(0, top, BaseWidth, darkFooter, black)
	c.fillRect(0, top, BaseWidth, 1, withAlpha(white, 0.2))

	mid := top + darkFooter/2
	label := textStyle{weight: medium, size: 11, color: white}
	if isFirst {
		c.avatarOrPlaceholder(f, 32, mid, 12, gray800)
		handle := f.profile.BareHandle()
		hs := textStyle{weight: bold, size: 12, color: white}
		c.drawText(hs, handle, 52, mid-8, 200)
		c.iconVerified(56+c.textWidth(hs, handle), mid-6, 12)
	} else {
		c.iconPlane(20, mid-9, 18, white)
		c.drawText(label, "Поделиться", 46, mid-8, 120)
	}
	label.align = alignRight
	c.drawText(label, "Сохранить", BaseWidth-150, mid-8, 104)
	c.iconBookmark(BaseWidth-40, mid-10, 20, white)
}
