package models

import (
	"encoding/json"
	"fmt"
)

type SlideKind string

const (
	SlideFirst   SlideKind = "first"
	SlideContent SlideKind = "content"
	SlideCTA     SlideKind = "cta"
)

// Slide is one card of a carousel: *FirstSlide, *ContentSlide or *CTASlide.
// Slides are derived from CarouselContent and never edited directly.
type Slide interface {
	Kind() SlideKind
	isSlide()
}

type FirstSlide struct {
	Title string `json:"title"`
}

type ContentSlide struct {
	ContentPage
}

type CTASlide struct {
	CallToActionPage
}

func (*FirstSlide) Kind() SlideKind   { return SlideFirst }
func (*ContentSlide) Kind() SlideKind { return SlideContent }
func (*CTASlide) Kind() SlideKind     { return SlideCTA }

func (*FirstSlide) isSlide()   {}
func (*ContentSlide) isSlide() {}
func (*CTASlide) isSlide()     {}

// Slides flattens content into cover, one slide per page, then the CTA.
func Slides(c CarouselContent) []Slide {
	out := make([]Slide, 0, len(c.ContentPages)+2)
	out = append(out, &FirstSlide{Title: c.FirstPageTitle})
	for _, p := range c.ContentPages {
		out = append(out, &ContentSlide{ContentPage: p.Clone()})
	}
	out = append(out, &CTASlide{CallToActionPage: c.CallToActionPage})
	return out
}

// SlideView is the JSON form of a Slide.
type SlideView struct {
	Index int       `json:"index"`
	Type  SlideKind `json:"type"`
	Slide Slide     `json:"slide"`
}

func SlideViews(c CarouselContent) []SlideView {
	slides := Slides(c)
	out := make([]SlideView, len(slides))
	for i, s := range slides {
		out[i] = SlideView{Index: i, Type: s.Kind(), Slide: s}
	}
	return out
}

// UnmarshalJSON restores the concrete slide type from the type tag.
func (v *SlideView) UnmarshalJSON(data []byte) error {
	var raw struct {
		Index int             `json:"index"`
		Type  SlideKind       `json:"type"`
		Slide json.RawMessage `json:"slide"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var s Slide
	switch raw.Type {
	case SlideFirst:
		s = &FirstSlide{}
	case SlideContent:
		s = &ContentSlide{}
	case SlideCTA:
		s = &CTASlide{}
	default:
		return fmt.Errorf("unknown slide type %q", raw.Type)
	}
	if len(raw.Slide) > 0 {
		if err := json.Unmarshal(raw.Slide, s); err != nil {
			return err
		}
	}
	v.Index, v.Type, v.Slide = raw.Index, raw.Type, s
	return nil
}
