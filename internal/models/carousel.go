package models

import (
	"fmt"
	"strings"
)

// MaxPoints is the upper bound on points per content page.
const MaxPoints = 2

type CarouselContent struct {
	FirstPageTitle   string           `json:"first_page_title"`
	ContentPages     []ContentPage    `json:"content_pages"`
	CallToActionPage CallToActionPage `json:"call_to_action_page"`
}

type ContentPage struct {
	Title          string   `json:"title"`
	IntroParagraph string   `json:"intro_paragraph"`
	Points         []string `json:"points"`
	BlockquoteText string   `json:"blockquote_text"`
}

type CallToActionPage struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Clone returns a deep copy; edits on the copy never reach c.
func (c CarouselContent) Clone() CarouselContent {
	out := c
	out.ContentPages = make([]ContentPage, len(c.ContentPages))
	for i, p := range c.ContentPages {
		out.ContentPages[i] = p.Clone()
	}
	return out
}

func (p ContentPage) Clone() ContentPage {
	out := p
	if p.Points != nil {
		out.Points = append([]string(nil), p.Points...)
	}
	return out
}

// Validate checks the shape a successful generation must have.
func (c CarouselContent) Validate(slideCount int) error {
	if len(c.ContentPages) != slideCount {
		return fmt.Errorf("expected %d content pages, got %d", slideCount, len(c.ContentPages))
	}
	if blank(c.FirstPageTitle) {
		return fmt.Errorf("first_page_title is empty")
	}
	for i, p := range c.ContentPages {
		switch {
		case blank(p.Title):
			return fmt.Errorf("content_pages[%d].title is empty", i)
		case blank(p.IntroParagraph):
			return fmt.Errorf("content_pages[%d].intro_paragraph is empty", i)
		case blank(p.BlockquoteText):
			return fmt.Errorf("content_pages[%d].blockquote_text is empty", i)
		case len(p.Points) > MaxPoints:
			return fmt.Errorf("content_pages[%d] has %d points, max %d", i, len(p.Points), MaxPoints)
		}
		for j, pt := range p.Points {
			if blank(pt) {
				return fmt.Errorf("content_pages[%d].points[%d] is empty", i, j)
			}
		}
	}
	if blank(c.CallToActionPage.Title) {
		return fmt.Errorf("call_to_action_page.title is empty")
	}
	if blank(c.CallToActionPage.Description) {
		return fmt.Errorf("call_to_action_page.description is empty")
	}
	return nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
