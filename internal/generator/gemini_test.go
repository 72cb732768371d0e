package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/nyzbk/insta-carousel-v2/internal/apperr"
	"github.com/nyzbk/insta-carousel-v2/internal/logger"
	"github.com/nyzbk/insta-carousel-v2/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeModel struct {
	settings modelSettings
	prompts  []string
	reply    string
	err      error
	calls    int
}

func (f *fakeModel) GenerateContent(_ context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	f.calls++
	for _, p := range parts {
		f.prompts = append(f.prompts, fmt.Sprint(p))
	}
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text(f.reply)}},
		}},
	}, nil
}

func newTestClient(fake *fakeModel) *GeminiClient {
	return &GeminiClient{
		modelName: DefaultModel,
		log:       logger.NewNop(),
		newModel: func(s modelSettings) contentModel {
			fake.settings = s
			return fake
		},
	}
}

func contentJSON(t *testing.T, pages int, ctaTitle string) string {
	t.Helper()
	c := models.CarouselContent{
		FirstPageTitle: "Врачи МОЛЧАТ: почему страх управляет тобой и как это остановить за неделю",
		CallToActionPage: models.CallToActionPage{
			Title:       ctaTitle,
			Description: "и я пришлю гайд в Директ",
		},
	}
	for i := 0; i < pages; i++ {
		c.ContentPages = append(c.ContentPages, models.ContentPage{
			Title:          fmt.Sprintf("%d. Страх — это привычка", i+1),
			IntroParagraph: "Ты боишься не события, а своей реакции.",
			Points:         []string{"Мозг повторяет знакомое.", "Новое кажется опасным."},
			BlockquoteText: "Через год это станет твоим потолком.",
		})
	}
	raw, err := json.Marshal(c)
	require.NoError(t, err)
	return string(raw)
}

func TestGenerateContent_Scenario(t *testing.T) {
	fake := &fakeModel{reply: contentJSON(t, 3, "Напиши ГАЙД")}
	g := newTestClient(fake)

	content, err := g.GenerateContent(context.Background(), "Как перестать бояться", 3, "ГАЙД")
	require.NoError(t, err)

	assert.Len(t, content.ContentPages, 3)
	assert.Equal(t, `!! Напиши "ГАЙД" в комменты`, content.CallToActionPage.Title)
	assert.Equal(t, 1, fake.calls)
	assert.Equal(t, "application/json", fake.settings.MIMEType)
	assert.InDelta(t, 0.8, fake.settings.Temperature, 1e-6)
	require.NotNil(t, fake.settings.Schema)
	require.Len(t, fake.prompts, 1)
	assert.Contains(t, fake.prompts[0], "Как перестать бояться")
	assert.Contains(t, fake.prompts[0], "exactly 3")
}

func TestGenerateContent_Failures(t *testing.T) {
	tests := []struct {
		name  string
		fake  *fakeModel
		count int
	}{
		{"transport error", &fakeModel{err: errors.New("connection reset")}, 3},
		{"malformed json", &fakeModel{reply: `{"first_page_title": "x",`}, 3},
		{"wrong page count", &fakeModel{reply: contentJSON(t, 2, "x")}, 3},
		{"empty reply", &fakeModel{reply: "   "}, 3},
		{"missing fields", &fakeModel{reply: `{"first_page_title":"x","content_pages":[{"title":"t"}],"call_to_action_page":{"description":"d"}}`}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, err := newTestClient(tt.fake).GenerateContent(context.Background(), "тема", tt.count, "ГАЙД")
			require.Error(t, err)
			assert.Nil(t, content)
			assert.True(t, apperr.Is(err, apperr.KindGeneration))
			assert.Equal(t, "Ошибка генерации контента.", apperr.UserMessage(err))
			assert.Equal(t, 1, tt.fake.calls, "no retries")
		})
	}
}

func TestGenerateTopic(t *testing.T) {
	fake := &fakeModel{reply: "  \"Врачи ВРУТ: почему кардио не сжигает жир\"\n"}
	g := newTestClient(fake)

	topic, err := g.GenerateTopic(context.Background(), "Нутрициолог")
	require.NoError(t, err)

	assert.Equal(t, "Врачи ВРУТ: почему кардио не сжигает жир", topic)
	assert.InDelta(t, 0.95, fake.settings.Temperature, 1e-6)
	assert.Empty(t, fake.settings.MIMEType)
	assert.Nil(t, fake.settings.Schema)
	assert.Contains(t, fake.prompts[0], "Нутрициолог")
}

func TestGenerateTopic_Error(t *testing.T) {
	_, err := newTestClient(&fakeModel{err: errors.New("quota")}).GenerateTopic(context.Background(), "SMM")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindGeneration))
	assert.Equal(t, "Ошибка генерации темы.", apperr.UserMessage(err))

	_, err = newTestClient(&fakeModel{reply: `""`}).GenerateTopic(context.Background(), "SMM")
	assert.True(t, apperr.Is(err, apperr.KindGeneration))
}

func TestResponseText_NoCandidates(t *testing.T) {
	_, err := responseText(&genai.GenerateContentResponse{})
	assert.Error(t, err)
	_, err = responseText(nil)
	assert.Error(t, err)
}

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), " ", "", logger.NewNop())
	assert.Error(t, err)
}
