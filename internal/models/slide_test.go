package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlides_Order(t *testing.T) {
	c := PreviewContent()
	slides := Slides(c)

	require.Len(t, slides, len(c.ContentPages)+2)
	assert.Equal(t, SlideFirst, slides[0].Kind())
	assert.Equal(t, c.FirstPageTitle, slides[0].(*FirstSlide).Title)
	for i, p := range c.ContentPages {
		cs, ok := slides[i+1].(*ContentSlide)
		require.True(t, ok)
		assert.Equal(t, p, cs.ContentPage)
	}
	cta, ok := slides[len(slides)-1].(*CTASlide)
	require.True(t, ok)
	assert.Equal(t, c.CallToActionPage, cta.CallToActionPage)
}

func TestSlides_LengthForAnyContent(t *testing.T) {
	for pages := 0; pages <= 10; pages++ {
		c := CarouselContent{ContentPages: make([]ContentPage, pages)}
		assert.Len(t, Slides(c), pages+2, "pages=%d", pages)
	}
}

func TestSlides_DoNotAliasContent(t *testing.T) {
	c := PreviewContent()
	slides := Slides(c)
	slides[1].(*ContentSlide).Points[0] = "changed"

	assert.Equal(t, "УДАЛИ новостные паблики", c.ContentPages[0].Points[0])
}

func TestParseDesign(t *testing.T) {
	d, ok := ParseDesign(" Minimal_Dark ")
	assert.True(t, ok)
	assert.Equal(t, DesignMinimalDark, d)

	d, ok = ParseDesign("neon")
	assert.False(t, ok)
	assert.Equal(t, DesignNotes, d)

	assert.Len(t, Designs(), 4)
}

func TestValidate(t *testing.T) {
	c := PreviewContent()
	require.NoError(t, c.Validate(3))
	assert.Error(t, c.Validate(4))

	tooMany := c.Clone()
	tooMany.ContentPages[1].Points = []string{"a", "b", "c"}
	assert.Error(t, tooMany.Validate(3))

	emptyCTA := c.Clone()
	emptyCTA.CallToActionPage.Description = "  "
	assert.Error(t, emptyCTA.Validate(3))
}

func TestSlideView_JSONRoundTrip(t *testing.T) {
	views := SlideViews(PreviewContent())
	data, err := json.Marshal(views)
	require.NoError(t, err)

	var back []SlideView
	require.NoError(t, json.Unmarshal(data, &back))
	require.Len(t, back, len(views))
	assert.Equal(t, views, back)

	assert.Error(t, json.Unmarshal([]byte(`{"index":0,"type":"cover","slide":{}}`), &SlideView{}))
}
