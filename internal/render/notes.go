package render

import "github.com/nyzbk/insta-carousel-v2/internal/models"

// notes is the paper-coloured notes app look. It is the default design.
type notes struct{}

var (
	notesPaper    = hexColor("#FBFBF8")
	notesInk      = hexColor("#2D2D2D")
	notesAmber    = hexColor("#F59E0B")
	notesAmber50  = hexColor("#FFFBEB")
	notesAmber100 = hexColor("#FEF3C7")
)

func (notes) draw(c *canvas, f frame) {
	c.fill(notesPaper)

	c.iconChevronLeft(18, 20, 18, notesAmber)
	c.drawText(textStyle{weight: medium, size: 14, color: notesAmber, leading: 1.4}, "Заметки", 38, 20, 150)
	c.iconShare(BaseWidth-78, 19, 20, notesAmber)
	c.iconMore(BaseWidth-44, 19, 20, notesAmber)

	const x, w = 32.0, BaseWidth - 64.0
	switch s := f.slide.(type) {
	case *models.FirstSlide:
		y := 72.0
		stamp := "Сегодня, " + f.now.Format("15:04")
		y += c.drawText(textStyle{weight: bold, size: 10, color: gray400, upper: true}, stamp, x, y, w) + 12
		y += c.editable(models.FieldTitle, -1, textStyle{weight: bold, size: 24, color: notesInk, leading: 1.25}, s.Title, x, y, w) + 24
		c.fillRound(x, y, 48, 4, 2, withAlpha(notesAmber, 0.3))
		y += 28
		c.drawText(textStyle{weight: regular, size: 12, color: gray400}, "@"+f.profile.BareHandle(), x, y, w)

	case *models.ContentSlide:
		c.contentPage(s.ContentPage, contentLook{
			title:        textStyle{weight: bold, size: 18, color: notesInk, leading: 1.25},
			intro:        textStyle{weight: regular, size: 14, color: gray600, leading: 1.5},
			point:        textStyle{weight: regular, size: 14, color: notesInk, leading: 1.43},
			quote:        textStyle{weight: italic, size: 12, color: gray600, leading: 1.33, align: alignCenter},
			gap:          14,
			bullet:       notesAmber,
			bulletIndent: 16,
			quoteFill:    notesAmber50,
			quotePad:     12,
			quoteRadius:  8,
		}, x, 68, w, BaseHeight-32)

	case *models.CTASlide:
		const dw = 260.0
		c.ctaBlock(s.CallToActionPage, ctaLook{
			title: textStyle{weight: bold, size: 24, color: notesInk, leading: 1.33, align: alignCenter},
			desc:  textStyle{weight: regular, size: 14, color: gray500, leading: 1.625, align: alignCenter},
			gap:   14,
			above: &ornament{h: 56, draw: func(c *canvas, y float64) {
				c.fillCircle(BaseWidth/2, y+28, 28, notesAmber100)
				c.iconPen(BaseWidth/2-14, y+14, 28, notesAmber)
			}},
		}, (BaseWidth-dw)/2, (60+BaseHeight-32)/2, dw)
	}
}
