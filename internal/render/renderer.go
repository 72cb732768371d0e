package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"sync"
	"time"

	"github.com/nyzbk/insta-carousel-v2/internal/logger"
	"github.com/nyzbk/insta-carousel-v2/internal/models"
)

// Layout units of a 4:5 portrait card. Output size is these times the scale.
const (
	BaseWidth  = 375.0
	BaseHeight = 469.0

	DefaultScale = 3
)

// Card is one rasterized slide plus the boxes of its editable fields.
type Card struct {
	Image  image.Image
	Fields []FieldBox
}

// frame is everything a template needs to draw one slide.
type frame struct {
	profile models.UserProfile
	avatar  image.Image
	slide   models.Slide
	index   int
	total   int
	now     time.Time
}

type template interface {
	draw(c *canvas, f frame)
}

func templateFor(d models.Design) (template, bool) {
	switch d {
	case models.DesignJournal:
		return journal{}, true
	case models.DesignNotes:
		return notes{}, true
	case models.DesignMinimalDark:
		return minimalDark{}, true
	case models.DesignInfluencer:
		return influencer{}, true
	}
	return nil, false
}

// Renderer rasterizes slides. One slide is drawn at a time.
type Renderer struct {
	mu      sync.Mutex
	scale   float64
	fonts   *fontSet
	avatars avatarCache
	now     func() time.Time
	log     *logger.Logger
}

func New(scale float64, log *logger.Logger) (*Renderer, error) {
	if scale <= 0 {
		scale = DefaultScale
	}
	fonts, err := loadFonts()
	if err != nil {
		return nil, err
	}
	return &Renderer{
		scale: scale,
		fonts: fonts,
		now:   time.Now,
		log:   log.With("service", "Renderer"),
	}, nil
}

// Size reports the output dimensions in pixels.
func (r *Renderer) Size() (int, int) {
	c := r.scale
	return int(BaseWidth*c + 0.5), int(BaseHeight*c + 0.5)
}

func (r *Renderer) Render(design models.Design, profile models.UserProfile, slide models.Slide, index, total int) (*Card, error) {
	tpl, ok := templateFor(design)
	if !ok {
		return nil, fmt.Errorf("unknown design %q", design)
	}
	if slide == nil {
		return nil, fmt.Errorf("slide %d is nil", index)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	f := frame{
		profile: profile,
		slide:   slide,
		index:   index,
		total:   total,
		now:     r.now(),
	}
	if profile.HasAvatar() {
		img, err := r.avatars.get(profile.AvatarURL)
		if err != nil {
			r.log.Warn("avatar not usable, drawing placeholder", "error", err)
		} else {
			f.avatar = img
		}
	}

	c := newCanvas(r.scale, r.fonts)
	tpl.draw(c, f)
	return &Card{Image: c.dc.Image(), Fields: c.fields}, nil
}

// RenderPNG renders a slide and encodes it as PNG.
func (r *Renderer) RenderPNG(design models.Design, profile models.UserProfile, slide models.Slide, index, total int) ([]byte, error) {
	card, err := r.Render(design, profile, slide, index, total)
	if err != nil {
		return nil, err
	}
	return EncodePNG(card.Image)
}

func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}
