package api

import (
	"time"

	"github.com/nyzbk/insta-carousel-v2/internal/models"
	"github.com/nyzbk/insta-carousel-v2/internal/render"
	"github.com/nyzbk/insta-carousel-v2/internal/session"
)

type TopicRequest struct {
	Activity string `json:"activity"`
}

type ContentRequest struct {
	Topic      string `json:"topic"`
	SlideCount int    `json:"slide_count"`
	CTAKeyword string `json:"cta_keyword"`
}

type DesignRequest struct {
	Design string `json:"design" binding:"required"`
}

type ProfileRequest struct {
	Name   string `json:"name"`
	Handle string `json:"handle"`
}

type TelegramRequest struct {
	Token  string `json:"token"`
	ChatID string `json:"chat_id"`
}

// SessionResponse is the state of one session plus its derived slides.
type SessionResponse struct {
	ID        string             `json:"id"`
	State     session.State      `json:"state"`
	Slides    []models.SlideView `json:"slides"`
	Timestamp string             `json:"timestamp"`
}

type TopicResponse struct {
	Topic string          `json:"topic"`
	State SessionResponse `json:"session"`
}

type DesignInfo struct {
	ID      models.Design `json:"id"`
	Default bool          `json:"default"`
}

type FieldsResponse struct {
	Index  int               `json:"index"`
	Design models.Design     `json:"design"`
	Width  int               `json:"width"`
	Height int               `json:"height"`
	Fields []render.FieldBox `json:"fields"`
}

func newSessionResponse(id string, st session.State) SessionResponse {
	resp := SessionResponse{ID: id, State: st, Timestamp: Timestamp()}
	if st.Content != nil {
		resp.Slides = models.SlideViews(*st.Content)
	}
	return resp
}

// Timestamp returns the current time in RFC3339 format.
func Timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
