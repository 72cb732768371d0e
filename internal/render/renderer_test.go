package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyzbk/insta-carousel-v2/internal/logger"
	"github.com/nyzbk/insta-carousel-v2/internal/models"
)

func newTestRenderer(t *testing.T, scale float64) *Renderer {
	t.Helper()
	r, err := New(scale, logger.NewNop())
	require.NoError(t, err)
	r.now = func() time.Time { return time.Date(2025, 3, 1, 9, 5, 0, 0, time.UTC) }
	return r
}

func solidPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestRender_OutputSizeAtDefaultScale(t *testing.T) {
	r := newTestRenderer(t, DefaultScale)
	w, h := r.Size()
	assert.Equal(t, 1125, w)
	assert.Equal(t, 1407, h)

	slides := models.Slides(models.PreviewContent())
	card, err := r.Render(models.DesignNotes, models.DefaultProfile(), slides[1], 1, len(slides))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 1125, 1407), card.Image.Bounds())
}

func TestRender_EveryDesignAndSlideKind(t *testing.T) {
	r := newTestRenderer(t, 1)
	slides := models.Slides(models.PreviewContent())

	for _, d := range models.Designs() {
		for i, s := range slides {
			card, err := r.Render(d, models.DefaultProfile(), s, i, len(slides))
			require.NoError(t, err, "design %s slide %d", d, i)
			assert.Equal(t, 375, card.Image.Bounds().Dx())
			assert.Equal(t, 469, card.Image.Bounds().Dy())
			assert.NotEmpty(t, card.Fields, "design %s slide %d", d, i)
		}
	}
}

func fieldNames(fields []FieldBox) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, f.Field)
	}
	return out
}

func TestRender_ReportsEditableFields(t *testing.T) {
	r := newTestRenderer(t, 2)
	content := models.PreviewContent()
	slides := models.Slides(content)
	total := len(slides)

	for _, d := range models.Designs() {
		first, err := r.Render(d, models.DefaultProfile(), slides[0], 0, total)
		require.NoError(t, err)
		assert.Equal(t, []string{models.FieldTitle}, fieldNames(first.Fields), d)

		cta, err := r.Render(d, models.DefaultProfile(), slides[total-1], total-1, total)
		require.NoError(t, err)
		assert.Equal(t, []string{models.FieldCTATitle, models.FieldCTADescription}, fieldNames(cta.Fields), d)

		page := content.ContentPages[0]
		mid, err := r.Render(d, models.DefaultProfile(), slides[1], 1, total)
		require.NoError(t, err)
		names := fieldNames(mid.Fields)
		assert.Contains(t, names, models.FieldTitle)
		assert.Contains(t, names, models.FieldIntro)
		assert.Contains(t, names, models.FieldBlockquote)

		var points []int
		for _, f := range mid.Fields {
			if f.Field == models.FieldPoints {
				require.NotNil(t, f.Point)
				points = append(points, *f.Point)
			}
			assert.GreaterOrEqual(t, f.X, 0)
			assert.GreaterOrEqual(t, f.Y, 0)
			assert.LessOrEqual(t, f.X+f.W, 750)
		}
		assert.Len(t, points, len(page.Points))
	}
}

func TestRender_SkipsEmptyOptionalBlocks(t *testing.T) {
	r := newTestRenderer(t, 1)
	slide := &models.ContentSlide{ContentPage: models.ContentPage{Title: "Только заголовок"}}

	card, err := r.Render(models.DesignJournal, models.DefaultProfile(), slide, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{models.FieldTitle}, fieldNames(card.Fields))
}

func TestRender_DesignDoesNotChangeFields(t *testing.T) {
	r := newTestRenderer(t, 1)
	slides := models.Slides(models.PreviewContent())

	var want []string
	for _, d := range models.Designs() {
		card, err := r.Render(d, models.DefaultProfile(), slides[2], 2, len(slides))
		require.NoError(t, err)
		got := fieldNames(card.Fields)
		if want == nil {
			want = got
			continue
		}
		assert.Equal(t, want, got, d)
	}
}

func TestRender_UsesAvatar(t *testing.T) {
	r := newTestRenderer(t, 1)
	url, err := EncodeAvatar(solidPNG(t, 40, 60))
	require.NoError(t, err)
	profile := models.DefaultProfile()
	profile.AvatarURL = url

	slides := models.Slides(models.PreviewContent())
	card, err := r.Render(models.DesignInfluencer, profile, slides[0], 0, len(slides))
	require.NoError(t, err)

	// top of the cover is the photo with a near transparent overlay
	c := color.NRGBAModel.Convert(card.Image.At(187, 5)).(color.NRGBA)
	assert.Greater(t, c.R, c.G)
}

func TestRender_BrokenAvatarFallsBack(t *testing.T) {
	r := newTestRenderer(t, 1)
	profile := models.DefaultProfile()
	profile.AvatarURL = "data:image/png;base64,bm90IGFuIGltYWdl"

	slides := models.Slides(models.PreviewContent())
	for _, d := range models.Designs() {
		_, err := r.Render(d, profile, slides[0], 0, len(slides))
		assert.NoError(t, err, d)
	}
}

func TestRender_Rejects(t *testing.T) {
	r := newTestRenderer(t, 1)

	_, err := r.Render(models.Design("polaroid"), models.DefaultProfile(), &models.FirstSlide{Title: "x"}, 0, 3)
	assert.Error(t, err)

	_, err = r.Render(models.DesignNotes, models.DefaultProfile(), nil, 0, 3)
	assert.Error(t, err)
}

func TestRenderPNG(t *testing.T) {
	r := newTestRenderer(t, 1)
	data, err := r.RenderPNG(models.DesignMinimalDark, models.DefaultProfile(), &models.FirstSlide{Title: "Заголовок"}, 0, 3)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 375, img.Bounds().Dx())
}
