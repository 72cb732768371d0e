package models

import (
	"encoding/json"
	"fmt"

	"github.com/nyzbk/insta-carousel-v2/internal/apperr"
)

// Edit is a typed in-place change to one text field of one slide.
type Edit interface {
	// Field names the edited field as reported by the renderer.
	Field() string
	allowedOn(kind SlideKind) bool
}

type SetTitle struct{ Text string }
type SetIntro struct{ Text string }
type SetBlockquoteText struct{ Text string }
type SetCtaTitle struct{ Text string }
type SetCtaDescription struct{ Text string }

// SetPoint replaces one point, keeping order and length of the list.
type SetPoint struct {
	Index int
	Text  string
}

type SetPoints struct{ Points []string }

const (
	FieldTitle          = "title"
	FieldIntro          = "intro_paragraph"
	FieldPoints         = "points"
	FieldBlockquote     = "blockquote_text"
	FieldCTATitle       = "cta_title"
	FieldCTADescription = "cta_description"
)

func (SetTitle) Field() string          { return FieldTitle }
func (SetIntro) Field() string          { return FieldIntro }
func (SetPoint) Field() string          { return FieldPoints }
func (SetPoints) Field() string         { return FieldPoints }
func (SetBlockquoteText) Field() string { return FieldBlockquote }
func (SetCtaTitle) Field() string       { return FieldCTATitle }
func (SetCtaDescription) Field() string { return FieldCTADescription }

func (SetTitle) allowedOn(k SlideKind) bool          { return k == SlideFirst || k == SlideContent }
func (SetIntro) allowedOn(k SlideKind) bool          { return k == SlideContent }
func (SetPoint) allowedOn(k SlideKind) bool          { return k == SlideContent }
func (SetPoints) allowedOn(k SlideKind) bool         { return k == SlideContent }
func (SetBlockquoteText) allowedOn(k SlideKind) bool { return k == SlideContent }
func (SetCtaTitle) allowedOn(k SlideKind) bool       { return k == SlideCTA }
func (SetCtaDescription) allowedOn(k SlideKind) bool { return k == SlideCTA }

// SlideKindAt reports which kind of slide sits at index for a carousel
// with the given number of content pages.
func SlideKindAt(index, pages int) (SlideKind, bool) {
	last := pages + 1
	switch {
	case index < 0 || index > last:
		return "", false
	case index == 0:
		return SlideFirst, true
	case index == last:
		return SlideCTA, true
	default:
		return SlideContent, true
	}
}

// ApplyEdit routes e to the field owning slide index and returns the
// updated copy. c itself is never modified.
func ApplyEdit(c CarouselContent, index int, e Edit) (CarouselContent, error) {
	if e == nil {
		return c, apperr.Validation("пустая правка")
	}
	kind, ok := SlideKindAt(index, len(c.ContentPages))
	if !ok {
		return c, apperr.Validation(fmt.Sprintf("слайд %d не существует", index+1))
	}
	if !e.allowedOn(kind) {
		return c, apperr.Validation(fmt.Sprintf("поле %q нельзя изменить на слайде типа %q", e.Field(), kind))
	}

	out := c.Clone()
	switch kind {
	case SlideFirst:
		if v, ok := e.(SetTitle); ok {
			out.FirstPageTitle = v.Text
		}
	case SlideCTA:
		switch v := e.(type) {
		case SetCtaTitle:
			out.CallToActionPage.Title = v.Text
		case SetCtaDescription:
			out.CallToActionPage.Description = v.Text
		}
	case SlideContent:
		page := &out.ContentPages[index-1]
		switch v := e.(type) {
		case SetTitle:
			page.Title = v.Text
		case SetIntro:
			page.IntroParagraph = v.Text
		case SetBlockquoteText:
			page.BlockquoteText = v.Text
		case SetPoints:
			if len(v.Points) > MaxPoints {
				return c, apperr.Validation(fmt.Sprintf("не больше %d пунктов на слайде", MaxPoints))
			}
			page.Points = append([]string{}, v.Points...)
		case SetPoint:
			if v.Index < 0 || v.Index >= len(page.Points) {
				return c, apperr.Validation(fmt.Sprintf("пункт %d не существует", v.Index+1))
			}
			points := append([]string(nil), page.Points...)
			points[v.Index] = v.Text
			page.Points = points
		}
	}
	return out, nil
}

// editWire is the JSON form: {"op":"set_point","index":1,"text":"..."}.
type editWire struct {
	Op     string   `json:"op"`
	Text   *string  `json:"text,omitempty"`
	Index  *int     `json:"index,omitempty"`
	Points []string `json:"points,omitempty"`
}

func DecodeEdit(data []byte) (Edit, error) {
	var w editWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, apperr.New(apperr.KindValidation, "некорректная правка", err)
	}
	return w.edit()
}

func (w editWire) edit() (Edit, error) {
	text := func() (string, error) {
		if w.Text == nil {
			return "", apperr.Validation(fmt.Sprintf("операция %q требует поле text", w.Op))
		}
		return *w.Text, nil
	}

	switch w.Op {
	case "set_points":
		if w.Points == nil {
			return nil, apperr.Validation("операция \"set_points\" требует поле points")
		}
		return SetPoints{Points: w.Points}, nil
	case "set_point":
		if w.Index == nil {
			return nil, apperr.Validation("операция \"set_point\" требует поле index")
		}
		t, err := text()
		if err != nil {
			return nil, err
		}
		return SetPoint{Index: *w.Index, Text: t}, nil
	}

	t, err := text()
	if err != nil {
		return nil, err
	}
	switch w.Op {
	case "set_title":
		return SetTitle{Text: t}, nil
	case "set_intro":
		return SetIntro{Text: t}, nil
	case "set_blockquote_text":
		return SetBlockquoteText{Text: t}, nil
	case "set_cta_title":
		return SetCtaTitle{Text: t}, nil
	case "set_cta_description":
		return SetCtaDescription{Text: t}, nil
	default:
		return nil, apperr.Validation(fmt.Sprintf("неизвестная операция %q", w.Op))
	}
}
