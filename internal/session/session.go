package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/nyzbk/insta-carousel-v2/internal/apperr"
	"github.com/nyzbk/insta-carousel-v2/internal/export"
	"github.com/nyzbk/insta-carousel-v2/internal/generator"
	"github.com/nyzbk/insta-carousel-v2/internal/logger"
	"github.com/nyzbk/insta-carousel-v2/internal/models"
	"github.com/nyzbk/insta-carousel-v2/internal/render"
	"github.com/nyzbk/insta-carousel-v2/internal/telegram"
)

const (
	MinSlides     = 1
	MaxSlides     = 10
	DefaultSlides = 5

	msgNoActivity  = "Опишите деятельность."
	msgNoTopic     = "Введите тему."
	msgNoCTA       = "Введите CTA."
	msgSlideCount  = "Количество слайдов должно быть от 1 до 10."
	msgNoContent   = "Нет контента для экспорта."
	msgBadDesign   = "Неизвестный дизайн."
	msgBadAvatar   = "Не удалось прочитать изображение."
	msgHugeAvatar  = "Изображение слишком большое."
	msgTopicFail   = "Ошибка генерации темы."
	msgContentFail = "Ошибка генерации контента."
	msgArchiveFail = "Ошибка создания архива."
	uploadPrefix   = "Ошибка Telegram: "
)

// Exporter is the export pipeline used by a session.
type Exporter interface {
	Slide(design models.Design, profile models.UserProfile, content models.CarouselContent, index int) (*export.Artifact, error)
	Archive(ctx context.Context, design models.Design, profile models.UserProfile, content models.CarouselContent) (*export.Artifact, error)
	Photos(ctx context.Context, design models.Design, profile models.UserProfile, content models.CarouselContent) ([][]byte, error)
}

// Deps are the collaborators shared by every session.
type Deps struct {
	Generator generator.Generator
	Exporter  Exporter
	Sender    telegram.Sender
	Log       *logger.Logger
}

// State is a read-only snapshot of a session.
type State struct {
	Content           *models.CarouselContent `json:"content"`
	Profile           models.UserProfile      `json:"profile"`
	Design            models.Design           `json:"design"`
	Topic             string                  `json:"topic"`
	CTAKeyword        string                  `json:"cta_keyword"`
	Activity          string                  `json:"activity"`
	SlideCount        int                     `json:"slide_count"`
	IsGenerating      bool                    `json:"is_generating"`
	IsGeneratingTopic bool                    `json:"is_generating_topic"`
	IsZipping         bool                    `json:"is_zipping"`
	IsSending         bool                    `json:"is_sending"`
	UploadDialogOpen  bool                    `json:"upload_dialog_open"`
	Generated         bool                    `json:"generated"`
	Error             string                  `json:"error"`
}

func (s State) clone() State {
	if s.Content != nil {
		c := s.Content.Clone()
		s.Content = &c
	}
	return s
}

// Session holds one user's carousel. State is guarded by mu; long calls run
// outside mu behind a per-operation gate.
type Session struct {
	id   string
	deps Deps
	log  *logger.Logger

	mu    sync.Mutex
	state State

	topicGate   *semaphore.Weighted
	contentGate *semaphore.Weighted
	slideGate   *semaphore.Weighted
	zipGate     *semaphore.Weighted
	sendGate    *semaphore.Weighted
}

func newSession(id string, deps Deps) *Session {
	preview := models.PreviewContent()
	return &Session{
		id:   id,
		deps: deps,
		log:  deps.Log.With("session", id),
		state: State{
			Content:    &preview,
			Profile:    models.DefaultProfile(),
			Design:     models.DefaultDesign,
			SlideCount: DefaultSlides,
			CTAKeyword: "СТРЕСС",
		},
		topicGate:   semaphore.NewWeighted(1),
		contentGate: semaphore.NewWeighted(1),
		slideGate:   semaphore.NewWeighted(1),
		zipGate:     semaphore.NewWeighted(1),
		sendGate:    semaphore.NewWeighted(1),
	}
}

func (s *Session) ID() string { return s.id }

func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// fail records err in the error slot and returns it as an *apperr.Error.
func (s *Session) fail(err error, fallback string) error {
	msg := apperr.UserMessage(err)
	if apperr.KindOf(err) == "" {
		err = apperr.New(apperr.KindRenderExport, fallback, err)
		msg = fallback
	}
	s.mu.Lock()
	s.state.Error = msg
	s.mu.Unlock()
	return err
}

func (s *Session) update(fn func(st *State)) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
	return s.state.clone()
}

// GenerateTopic asks the model for a hook title and stores it as the topic.
func (s *Session) GenerateTopic(ctx context.Context, activity string) (string, error) {
	activity = strings.TrimSpace(activity)
	if activity == "" {
		return "", s.fail(apperr.Validation(msgNoActivity), "")
	}
	if !s.topicGate.TryAcquire(1) {
		return "", apperr.Busy("Тема уже генерируется.")
	}
	defer s.topicGate.Release(1)

	s.update(func(st *State) {
		st.Activity = activity
		st.IsGeneratingTopic = true
		st.Error = ""
	})
	defer s.update(func(st *State) { st.IsGeneratingTopic = false })

	topic, err := s.deps.Generator.GenerateTopic(ctx, activity)
	if err != nil {
		s.log.Warn("topic generation failed", "error", err)
		return "", s.fail(asGeneration(err, msgTopicFail), msgTopicFail)
	}
	s.update(func(st *State) { st.Topic = topic })
	return topic, nil
}

// GenerateContent replaces the carousel with a freshly generated one. On
// failure the previous content stays.
func (s *Session) GenerateContent(ctx context.Context, topic string, slideCount int, ctaKeyword string) error {
	topic = strings.TrimSpace(topic)
	ctaKeyword = strings.TrimSpace(ctaKeyword)
	switch {
	case topic == "":
		return s.fail(apperr.Validation(msgNoTopic), "")
	case ctaKeyword == "":
		return s.fail(apperr.Validation(msgNoCTA), "")
	case slideCount < MinSlides || slideCount > MaxSlides:
		return s.fail(apperr.Validation(msgSlideCount), "")
	}
	if !s.contentGate.TryAcquire(1) {
		return apperr.Busy("Генерация уже выполняется.")
	}
	defer s.contentGate.Release(1)

	s.update(func(st *State) {
		st.Topic = topic
		st.CTAKeyword = ctaKeyword
		st.SlideCount = slideCount
		st.IsGenerating = true
		st.Error = ""
	})
	defer s.update(func(st *State) { st.IsGenerating = false })

	start := time.Now()
	content, err := s.deps.Generator.GenerateContent(ctx, topic, slideCount, ctaKeyword)
	if err != nil {
		s.log.Warn("content generation failed", "error", err)
		return s.fail(asGeneration(err, msgContentFail), msgContentFail)
	}
	s.update(func(st *State) {
		c := content.Clone()
		st.Content = &c
		st.Generated = true
	})
	s.log.Info("carousel generated", "slides", slideCount, "duration", time.Since(start))
	return nil
}

func asGeneration(err error, msg string) error {
	if apperr.KindOf(err) != "" {
		return err
	}
	return apperr.Generation(msg, err)
}

// ApplyEdit changes one text field of one slide.
func (s *Session) ApplyEdit(index int, edit models.Edit) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Content == nil {
		return s.state.clone(), apperr.Validation(msgNoContent)
	}
	next, err := models.ApplyEdit(*s.state.Content, index, edit)
	if err != nil {
		return s.state.clone(), err
	}
	s.state.Content = &next
	return s.state.clone(), nil
}

// SetDesign switches the visual template; content and profile are untouched.
func (s *Session) SetDesign(d models.Design) (State, error) {
	if !d.Valid() {
		return s.Snapshot(), apperr.Validation(msgBadDesign)
	}
	return s.update(func(st *State) { st.Design = d }), nil
}

func (s *Session) UpdateProfile(name, handle string) State {
	return s.update(func(st *State) {
		st.Profile.Name = strings.TrimSpace(name)
		st.Profile.Handle = strings.TrimSpace(handle)
	})
}

// SetAvatar stores an uploaded picture as a data: URL on the profile.
func (s *Session) SetAvatar(data []byte) (State, error) {
	url, err := render.EncodeAvatar(data)
	if err != nil {
		s.log.Debug("avatar rejected", "error", err)
		msg := msgBadAvatar
		if errors.Is(err, render.ErrAvatarTooBig) {
			msg = msgHugeAvatar
		}
		return s.Snapshot(), apperr.New(apperr.KindValidation, msg, err)
	}
	return s.update(func(st *State) { st.Profile.AvatarURL = url }), nil
}

func (s *Session) ClearAvatar() State {
	return s.update(func(st *State) { st.Profile.AvatarURL = "" })
}

// exportInput copies what the export pipeline reads.
func (s *Session) exportInput() (models.Design, models.UserProfile, models.CarouselContent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Content == nil {
		return "", models.UserProfile{}, models.CarouselContent{}, apperr.Validation(msgNoContent)
	}
	return s.state.Design, s.state.Profile, s.state.Content.Clone(), nil
}

// ExportSlide rasterizes the slide at index as slide-<index+1>.png.
func (s *Session) ExportSlide(index int) (*export.Artifact, error) {
	design, profile, content, err := s.exportInput()
	if err != nil {
		return nil, s.fail(err, "")
	}
	if !s.slideGate.TryAcquire(1) {
		return nil, apperr.Busy("Экспорт уже выполняется.")
	}
	defer s.slideGate.Release(1)

	a, err := s.deps.Exporter.Slide(design, profile, content, index)
	if err != nil {
		return nil, s.fail(err, "Ошибка экспорта слайда.")
	}
	return a, nil
}

// ExportArchive packs every slide into carousel.zip.
func (s *Session) ExportArchive(ctx context.Context) (*export.Artifact, error) {
	design, profile, content, err := s.exportInput()
	if err != nil {
		return nil, s.fail(err, "")
	}
	if !s.zipGate.TryAcquire(1) {
		return nil, apperr.Busy("Архив уже создаётся.")
	}
	defer s.zipGate.Release(1)

	s.update(func(st *State) {
		st.IsZipping = true
		st.Error = ""
	})
	defer s.update(func(st *State) { st.IsZipping = false })

	a, err := s.deps.Exporter.Archive(ctx, design, profile, content)
	if err != nil {
		s.log.Error("archive export failed", "error", err)
		return nil, s.fail(apperr.RenderExport(msgArchiveFail, err), msgArchiveFail)
	}
	return a, nil
}

func (s *Session) OpenUploadDialog() State {
	return s.update(func(st *State) { st.UploadDialogOpen = true })
}

func (s *Session) CloseUploadDialog() State {
	return s.update(func(st *State) { st.UploadDialogOpen = false })
}

// SendToTelegram rasterizes every slide and posts them as one album. Success
// closes the upload dialog; failure leaves it open.
func (s *Session) SendToTelegram(ctx context.Context, token, chatID string) error {
	design, profile, content, err := s.exportInput()
	if err != nil {
		return s.fail(err, "")
	}
	if !s.sendGate.TryAcquire(1) {
		return apperr.Busy("Отправка уже выполняется.")
	}
	defer s.sendGate.Release(1)

	s.update(func(st *State) {
		st.IsSending = true
		st.Error = ""
	})
	defer s.update(func(st *State) { st.IsSending = false })

	photos, err := s.deps.Exporter.Photos(ctx, design, profile, content)
	if err != nil {
		return s.fail(apperr.RenderExport(uploadPrefix+apperr.UserMessage(err), err), "")
	}
	if err := s.deps.Sender.SendMediaGroup(ctx, token, chatID, photos); err != nil {
		if apperr.KindOf(err) == "" {
			err = apperr.Upload(uploadPrefix+err.Error(), err)
		}
		return s.fail(err, "")
	}

	s.update(func(st *State) { st.UploadDialogOpen = false })
	s.log.Info("carousel sent to telegram", "slides", len(photos))
	return nil
}
