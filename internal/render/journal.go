package render

import "github.com/nyzbk/insta-carousel-v2/internal/models"

// journal mimics an iOS notes screen: white page, gold toolbar.
type journal struct{}

var (
	journalInk  = hexColor("#1C1C1E")
	journalGold = hexColor("#E0B038")
	journalRule = hexColor("#C5C5C7")
	journalRed  = hexColor("#DC2626")
)

func (journal) draw(c *canvas, f frame) {
	c.fill(white)
	journalToolbar(c)

	const x, w = 24.0, BaseWidth - 48.0
	switch s := f.slide.(type) {
	case *models.FirstSlide:
		y := 72.0
		y += c.editable(models.FieldTitle, -1, textStyle{weight: bold, size: 24, color: journalInk, leading: 1.2}, s.Title, x, y, w)
		y += 16
		c.fillRect(x, y, w, 1, gray200)
		y += 24
		c.drawText(textStyle{weight: medium, size: 12, color: gray400, upper: true}, "Пролистай вправо →", x, y, w)

	case *models.ContentSlide:
		c.contentPage(s.ContentPage, contentLook{
			title:        textStyle{weight: bold, size: 20, color: journalInk, leading: 1.2},
			intro:        textStyle{weight: regular, size: 14, color: gray700, leading: 1.5},
			point:        textStyle{weight: regular, size: 13, color: journalInk, leading: 1.375},
			quote:        textStyle{weight: medium, size: 13, color: gray600, leading: 1.375},
			gap:          10,
			bullet:       journalInk,
			bulletIndent: 18,
			quoteBar:     journalRule,
			quotePad:     10,
		}, x, 64, w, BaseHeight-24)

	case *models.CTASlide:
		c.ctaBlock(s.CallToActionPage, ctaLook{
			title: textStyle{weight: bold, size: 26, color: journalRed, leading: 1.25, align: alignCenter},
			desc:  textStyle{weight: regular, size: 18, color: gray700, leading: 1.625, align: alignCenter},
			gap:   24,
			between: &ornament{h: 4, draw: func(c *canvas, y float64) {
				c.fillRound(BaseWidth/2-32, y, 64, 4, 2, gray200)
			}},
		}, x, (56+BaseHeight-24)/2, w)
	}
}

func journalToolbar(c *canvas) {
	c.iconChevronLeft(16, 18, 20, journalGold)
	c.drawText(textStyle{weight: regular, size: 17, color: journalGold, leading: 1}, "Назад", 38, 19, 80)

	x := BaseWidth - 20.0 - 24*4 - 20*3
	c.iconUndo(x, 16, 24, journalGold, false)
	x += 44
	c.iconUndo(x, 16, 24, journalGold, true)
	x += 44
	c.iconShare(x+2, 16, 20, journalGold)
	x += 44
	c.strokeCircle(x+12, 28, 11.5, 1, journalGold)
	c.iconMore(x+5, 21, 14, journalGold)
}
