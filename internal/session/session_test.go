package session

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyzbk/insta-carousel-v2/internal/apperr"
	"github.com/nyzbk/insta-carousel-v2/internal/export"
	"github.com/nyzbk/insta-carousel-v2/internal/generator"
	"github.com/nyzbk/insta-carousel-v2/internal/logger"
	"github.com/nyzbk/insta-carousel-v2/internal/models"
	"github.com/nyzbk/insta-carousel-v2/internal/render"
)

type fakeGenerator struct {
	topic   string
	content *models.CarouselContent
	err     error

	started chan struct{}
	release chan struct{}
	calls   int
}

func (f *fakeGenerator) wait() {
	if f.started != nil {
		f.started <- struct{}{}
		<-f.release
	}
}

func (f *fakeGenerator) GenerateTopic(context.Context, string) (string, error) {
	f.calls++
	f.wait()
	return f.topic, f.err
}

func (f *fakeGenerator) GenerateContent(_ context.Context, _ string, slideCount int, kw string) (*models.CarouselContent, error) {
	f.calls++
	f.wait()
	if f.err != nil {
		return nil, f.err
	}
	if f.content != nil {
		return f.content, nil
	}
	c := &models.CarouselContent{
		FirstPageTitle:   "Хук",
		CallToActionPage: models.CallToActionPage{Title: generator.CTATitle(kw), Description: "и получи гайд"},
	}
	for i := 0; i < slideCount; i++ {
		c.ContentPages = append(c.ContentPages, models.ContentPage{
			Title: "Страница", IntroParagraph: "Интро", BlockquoteText: "Итог",
		})
	}
	return c, nil
}

type fakeExporter struct {
	err      error
	photos   [][]byte
	archives int
}

func (f *fakeExporter) Slide(_ models.Design, _ models.UserProfile, _ models.CarouselContent, index int) (*export.Artifact, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &export.Artifact{Name: export.SlideName(index), Data: []byte("png")}, nil
}

func (f *fakeExporter) Archive(context.Context, models.Design, models.UserProfile, models.CarouselContent) (*export.Artifact, error) {
	f.archives++
	if f.err != nil {
		return nil, f.err
	}
	return &export.Artifact{Name: export.ArchiveName, Data: []byte("zip")}, nil
}

func (f *fakeExporter) Photos(_ context.Context, _ models.Design, _ models.UserProfile, c models.CarouselContent) ([][]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.photos != nil {
		return f.photos, nil
	}
	out := make([][]byte, len(c.ContentPages)+2)
	for i := range out {
		out[i] = []byte{byte(i)}
	}
	return out, nil
}

type fakeSender struct {
	err    error
	sent   int
	token  string
	chatID string

	started chan struct{}
	release chan struct{}
}

func (f *fakeSender) SendMediaGroup(_ context.Context, token, chatID string, photos [][]byte) error {
	if f.started != nil {
		f.started <- struct{}{}
		<-f.release
	}
	f.token, f.chatID = token, chatID
	if f.err != nil {
		return f.err
	}
	f.sent = len(photos)
	return nil
}

type fixture struct {
	gen    *fakeGenerator
	exp    *fakeExporter
	sender *fakeSender
	sess   *Session
}

func newFixture() *fixture {
	f := &fixture{gen: &fakeGenerator{topic: "КАК ПЕРЕСТАТЬ БОЯТЬСЯ"}, exp: &fakeExporter{}, sender: &fakeSender{}}
	f.sess = newSession("test", Deps{Generator: f.gen, Exporter: f.exp, Sender: f.sender, Log: logger.NewNop()})
	return f
}

func TestNewSession_StartsWithPreview(t *testing.T) {
	st := newFixture().sess.Snapshot()

	require.NotNil(t, st.Content)
	assert.Equal(t, models.PreviewContent(), *st.Content)
	assert.Equal(t, models.DefaultProfile(), st.Profile)
	assert.Equal(t, models.DesignNotes, st.Design)
	assert.False(t, st.Generated)
	assert.Empty(t, st.Error)
}

func TestGenerateContent_Scenario(t *testing.T) {
	f := newFixture()

	require.NoError(t, f.sess.GenerateContent(context.Background(), "Как перестать бояться", 3, "ГАЙД"))

	st := f.sess.Snapshot()
	require.NotNil(t, st.Content)
	assert.Len(t, st.Content.ContentPages, 3)
	assert.Equal(t, `!! Напиши "ГАЙД" в комменты`, st.Content.CallToActionPage.Title)
	assert.True(t, st.Generated)
	assert.False(t, st.IsGenerating)
	assert.Equal(t, "Как перестать бояться", st.Topic)
	assert.Equal(t, 3, st.SlideCount)
	assert.Len(t, models.Slides(*st.Content), 5)
}

func TestGenerateContent_ValidationBeforeCall(t *testing.T) {
	cases := []struct {
		name  string
		topic string
		count int
		cta   string
		want  string
	}{
		{"empty topic", "  ", 3, "ГАЙД", "Введите тему."},
		{"empty cta", "Тема", 3, " ", "Введите CTA."},
		{"zero slides", "Тема", 0, "ГАЙД", msgSlideCount},
		{"too many slides", "Тема", 11, "ГАЙД", msgSlideCount},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			err := f.sess.GenerateContent(context.Background(), tc.topic, tc.count, tc.cta)
			require.Error(t, err)
			assert.True(t, apperr.Is(err, apperr.KindValidation))
			assert.Equal(t, tc.want, f.sess.Snapshot().Error)
			assert.Zero(t, f.gen.calls)
		})
	}
}

func TestGenerateContent_FailureKeepsPreviousContent(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.sess.GenerateContent(context.Background(), "Тема", 2, "ГАЙД"))
	before := f.sess.Snapshot().Content

	f.gen.err = apperr.Generation("Ошибка генерации контента.", errors.New("quota"))
	err := f.sess.GenerateContent(context.Background(), "Другая тема", 4, "ГАЙД")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindGeneration))

	st := f.sess.Snapshot()
	assert.Equal(t, before, st.Content)
	assert.Equal(t, "Ошибка генерации контента.", st.Error)
	assert.False(t, st.IsGenerating)
}

func TestGenerateContent_PlainErrorBecomesGeneration(t *testing.T) {
	f := newFixture()
	f.gen.err = context.DeadlineExceeded

	err := f.sess.GenerateContent(context.Background(), "Тема", 2, "ГАЙД")
	assert.True(t, apperr.Is(err, apperr.KindGeneration))
	assert.Equal(t, "Ошибка генерации контента.", f.sess.Snapshot().Error)
}

func TestGenerateContent_SecondCallIsBusy(t *testing.T) {
	f := newFixture()
	f.gen.started = make(chan struct{})
	f.gen.release = make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		firstErr = f.sess.GenerateContent(context.Background(), "Тема", 3, "ГАЙД")
	}()
	<-f.gen.started
	assert.True(t, f.sess.Snapshot().IsGenerating)

	err := f.sess.GenerateContent(context.Background(), "Тема", 3, "ГАЙД")
	assert.True(t, apperr.Is(err, apperr.KindBusy))

	// a different generation type has its own gate
	f.gen.started = nil
	_, err = f.sess.GenerateTopic(context.Background(), "психолог")
	assert.NoError(t, err)

	close(f.gen.release)
	wg.Wait()
	require.NoError(t, firstErr)
	assert.Equal(t, 2, f.gen.calls)
}

func TestGenerateTopic_SecondCallIsBusy(t *testing.T) {
	f := newFixture()
	f.gen.started = make(chan struct{})
	f.gen.release = make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		_, firstErr = f.sess.GenerateTopic(context.Background(), "психолог")
	}()
	<-f.gen.started
	assert.True(t, f.sess.Snapshot().IsGeneratingTopic)

	_, err := f.sess.GenerateTopic(context.Background(), "психолог")
	assert.True(t, apperr.Is(err, apperr.KindBusy))

	close(f.gen.release)
	wg.Wait()
	require.NoError(t, firstErr)
	assert.Equal(t, 1, f.gen.calls)
	assert.False(t, f.sess.Snapshot().IsGeneratingTopic)
}

func TestGenerateTopic(t *testing.T) {
	f := newFixture()

	topic, err := f.sess.GenerateTopic(context.Background(), " психолог для подростков ")
	require.NoError(t, err)
	assert.Equal(t, "КАК ПЕРЕСТАТЬ БОЯТЬСЯ", topic)

	st := f.sess.Snapshot()
	assert.Equal(t, topic, st.Topic)
	assert.Equal(t, "психолог для подростков", st.Activity)
	assert.False(t, st.IsGeneratingTopic)
}

func TestGenerateTopic_Errors(t *testing.T) {
	f := newFixture()

	_, err := f.sess.GenerateTopic(context.Background(), "")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Equal(t, "Опишите деятельность.", f.sess.Snapshot().Error)

	f.gen.err = errors.New("boom")
	_, err = f.sess.GenerateTopic(context.Background(), "коуч")
	assert.True(t, apperr.Is(err, apperr.KindGeneration))
	st := f.sess.Snapshot()
	assert.Equal(t, "Ошибка генерации темы.", st.Error)
	assert.Empty(t, st.Topic)
}

func TestSetDesign_LeavesContentAndProfile(t *testing.T) {
	f := newFixture()
	f.sess.UpdateProfile("Мария", "@maria")
	before := f.sess.Snapshot()

	for _, d := range models.Designs() {
		st, err := f.sess.SetDesign(d)
		require.NoError(t, err)
		assert.Equal(t, d, st.Design)
		assert.Equal(t, before.Content, st.Content)
		assert.Equal(t, before.Profile, st.Profile)
	}

	_, err := f.sess.SetDesign(models.Design("retro"))
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestApplyEdit(t *testing.T) {
	f := newFixture()

	st, err := f.sess.ApplyEdit(0, models.SetTitle{Text: "Новый хук"})
	require.NoError(t, err)
	assert.Equal(t, "Новый хук", st.Content.FirstPageTitle)

	_, err = f.sess.ApplyEdit(0, models.SetIntro{Text: "нельзя"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Equal(t, "Новый хук", f.sess.Snapshot().Content.FirstPageTitle)
}

func TestSnapshot_IsACopy(t *testing.T) {
	f := newFixture()
	st := f.sess.Snapshot()
	st.Content.FirstPageTitle = "changed"
	st.Content.ContentPages[0].Points[0] = "changed"

	again := f.sess.Snapshot()
	assert.Equal(t, models.PreviewContent(), *again.Content)
}

func TestAvatar(t *testing.T) {
	f := newFixture()

	_, err := f.sess.SetAvatar([]byte("not an image"))
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	var huge bytes.Buffer
	require.NoError(t, png.Encode(&huge, image.NewGray(image.Rect(0, 0, 2, render.MaxAvatarSide+1))))
	_, err = f.sess.SetAvatar(huge.Bytes())
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Equal(t, "Изображение слишком большое.", apperr.UserMessage(err))
	assert.Empty(t, f.sess.Snapshot().Profile.AvatarURL)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 2, 2))))
	st, err := f.sess.SetAvatar(buf.Bytes())
	require.NoError(t, err)
	assert.Contains(t, st.Profile.AvatarURL, "data:image/png;base64,")

	st = f.sess.ClearAvatar()
	assert.Empty(t, st.Profile.AvatarURL)
}

func TestExportArchive(t *testing.T) {
	f := newFixture()

	a, err := f.sess.ExportArchive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "carousel.zip", a.Name)
	assert.False(t, f.sess.Snapshot().IsZipping)

	f.exp.err = apperr.RenderExport("Ошибка подготовки слайдов.", errors.New("font"))
	_, err = f.sess.ExportArchive(context.Background())
	assert.True(t, apperr.Is(err, apperr.KindRenderExport))
	assert.Equal(t, "Ошибка создания архива.", f.sess.Snapshot().Error)
}

func TestExport_RequiresContent(t *testing.T) {
	f := newFixture()
	f.sess.state.Content = nil

	_, err := f.sess.ExportSlide(0)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	_, err = f.sess.ExportArchive(context.Background())
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	err = f.sess.SendToTelegram(context.Background(), "t", "c")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Equal(t, "Нет контента для экспорта.", f.sess.Snapshot().Error)
	assert.Zero(t, f.exp.archives)
}

func TestExportSlide(t *testing.T) {
	f := newFixture()

	a, err := f.sess.ExportSlide(2)
	require.NoError(t, err)
	assert.Equal(t, "slide-3.png", a.Name)
}

func TestSendToTelegram_SuccessClosesDialog(t *testing.T) {
	f := newFixture()
	f.sess.OpenUploadDialog()

	require.NoError(t, f.sess.SendToTelegram(context.Background(), "123:abc", "42"))

	st := f.sess.Snapshot()
	assert.False(t, st.UploadDialogOpen)
	assert.False(t, st.IsSending)
	assert.Empty(t, st.Error)
	assert.Equal(t, len(models.PreviewContent().ContentPages)+2, f.sender.sent)
}

func TestSendToTelegram_FailureKeepsDialogOpen(t *testing.T) {
	f := newFixture()
	f.sess.OpenUploadDialog()
	f.sender.err = apperr.Upload("Ошибка Telegram: Bad Request", errors.New("status 400"))

	err := f.sess.SendToTelegram(context.Background(), "123:abc", "42")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindUpload))

	st := f.sess.Snapshot()
	assert.True(t, st.UploadDialogOpen)
	assert.Contains(t, st.Error, "Bad Request")
	assert.False(t, st.IsSending)
}

func TestSendToTelegram_SecondCallIsBusy(t *testing.T) {
	f := newFixture()
	f.sess.OpenUploadDialog()
	f.sender.started = make(chan struct{})
	f.sender.release = make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		firstErr = f.sess.SendToTelegram(context.Background(), "123:abc", "42")
	}()
	<-f.sender.started
	assert.True(t, f.sess.Snapshot().IsSending)

	err := f.sess.SendToTelegram(context.Background(), "123:abc", "42")
	assert.True(t, apperr.Is(err, apperr.KindBusy))

	// archiving is gated separately
	_, err = f.sess.ExportArchive(context.Background())
	assert.NoError(t, err)

	close(f.sender.release)
	wg.Wait()
	require.NoError(t, firstErr)
	st := f.sess.Snapshot()
	assert.False(t, st.IsSending)
	assert.False(t, st.UploadDialogOpen)
}

func TestSendToTelegram_RenderFailure(t *testing.T) {
	f := newFixture()
	f.exp.err = apperr.RenderExport("Ошибка подготовки слайдов.", errors.New("boom"))

	err := f.sess.SendToTelegram(context.Background(), "123:abc", "42")
	assert.True(t, apperr.Is(err, apperr.KindRenderExport))
	assert.Equal(t, "Ошибка Telegram: Ошибка подготовки слайдов.", f.sess.Snapshot().Error)
	assert.Zero(t, f.sender.sent)
}

func TestStore(t *testing.T) {
	deps := Deps{Generator: &fakeGenerator{}, Exporter: &fakeExporter{}, Sender: &fakeSender{}, Log: logger.NewNop()}
	s := NewStore(deps, time.Hour)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	a := s.Create()
	b := s.Create()
	assert.NotEqual(t, a.ID(), b.ID())

	got, err := s.Get(a.ID())
	require.NoError(t, err)
	assert.Same(t, a, got)

	_, err = s.Get("missing")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	require.NoError(t, s.Delete(b.ID()))
	assert.True(t, apperr.Is(s.Delete(b.ID()), apperr.KindNotFound))

	now = now.Add(2 * time.Hour)
	_, err = s.Get(a.ID())
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.Zero(t, s.Len())
}

var _ generator.Generator = (*fakeGenerator)(nil)
