package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/nyzbk/insta-carousel-v2/internal/apperr"
	"github.com/nyzbk/insta-carousel-v2/internal/logger"
)

const (
	DefaultBaseURL = "https://api.telegram.org"

	uploadPrefix   = "Ошибка Telegram: "
	unknownFailure = "Error"
)

// Sender uploads a batch of PNGs as one album.
type Sender interface {
	SendMediaGroup(ctx context.Context, token, chatID string, photos [][]byte) error
}

type inputMedia struct {
	Type  string `json:"type"`
	Media string `json:"media"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
	ErrorCode   int    `json:"error_code,omitempty"`
}

type Client struct {
	http *resty.Client
	log  *logger.Logger
}

// NewClient builds a Bot API client. A zero timeout leaves requests unbounded
// apart from the caller's context.
func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	hc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("User-Agent", "insta-carousel/2.0")
	if timeout > 0 {
		hc.SetTimeout(timeout)
	}
	return &Client{http: hc, log: log.With("service", "TelegramClient")}
}

func attachName(i int) string {
	return fmt.Sprintf("slide-%d", i)
}

// SendMediaGroup posts photos as a single sendMediaGroup call. Telegram's own
// description is surfaced verbatim when the call is rejected.
func (c *Client) SendMediaGroup(ctx context.Context, token, chatID string, photos [][]byte) error {
	token = strings.TrimSpace(token)
	chatID = strings.TrimSpace(chatID)
	if token == "" || chatID == "" {
		return apperr.Validation("Укажите токен бота и Chat ID.")
	}
	if len(photos) == 0 {
		return apperr.Validation("Нет слайдов для отправки.")
	}

	media := make([]inputMedia, len(photos))
	for i := range photos {
		media[i] = inputMedia{Type: "photo", Media: "attach://" + attachName(i)}
	}
	mediaJSON, err := json.Marshal(media)
	if err != nil {
		return apperr.Upload(uploadPrefix+unknownFailure, err)
	}

	req := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"chat_id": chatID,
			"media":   string(mediaJSON),
		})
	for i, p := range photos {
		name := attachName(i)
		req.SetMultipartField(name, name+".png", "image/png", bytes.NewReader(p))
	}

	var result apiResponse
	start := time.Now()
	resp, err := req.
		SetResult(&result).
		SetError(&result).
		Post("/bot" + token + "/sendMediaGroup")
	if err != nil {
		// transport errors carry the request URL, which holds the token
		cause := errors.New(logger.RedactBotToken(err.Error()))
		c.log.Error("sendMediaGroup request failed", "chat_id", chatID, "error", cause)
		return apperr.Upload(uploadPrefix+cause.Error(), cause)
	}

	if resp.IsError() || !result.OK {
		desc := result.Description
		if desc == "" {
			desc = unknownFailure
		}
		c.log.Warn("sendMediaGroup rejected",
			"chat_id", chatID,
			"status", resp.StatusCode(),
			"description", desc,
		)
		return apperr.Upload(uploadPrefix+desc, fmt.Errorf("telegram status %d: %s", resp.StatusCode(), desc))
	}

	c.log.Info("media group sent",
		"chat_id", chatID,
		"photos", len(photos),
		"duration", time.Since(start),
	)
	return nil
}
