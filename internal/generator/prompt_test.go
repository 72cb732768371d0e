package generator

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCTATitle(t *testing.T) {
	assert.Equal(t, `!! Напиши "ГАЙД" в комменты`, CTATitle("ГАЙД"))
}

func TestContentSchema_Shape(t *testing.T) {
	s := ContentSchema(5, "СТРЕСС")

	require.Equal(t, genai.TypeObject, s.Type)
	assert.ElementsMatch(t, []string{"first_page_title", "content_pages", "call_to_action_page"}, s.Required)

	pages := s.Properties["content_pages"]
	require.NotNil(t, pages)
	assert.Equal(t, genai.TypeArray, pages.Type)
	assert.Contains(t, pages.Description, "exactly 5")
	require.NotNil(t, pages.Items)
	assert.ElementsMatch(t, []string{"title", "intro_paragraph", "points", "blockquote_text"}, pages.Items.Required)
	assert.Equal(t, genai.TypeArray, pages.Items.Properties["points"].Type)
	assert.Equal(t, genai.TypeString, pages.Items.Properties["points"].Items.Type)

	cta := s.Properties["call_to_action_page"]
	require.NotNil(t, cta)
	assert.Contains(t, cta.Properties["title"].Description, `!! Напиши "СТРЕСС" в комменты`)
}

func TestPrompts(t *testing.T) {
	p := ContentPrompt("Как перестать бояться", 3, "ГАЙД")
	assert.Contains(t, p, "exactly 3")
	assert.Contains(t, p, `!! Напиши "ГАЙД" в комменты`)
	assert.Contains(t, p, "Russian")

	tp := TopicPrompt("SMM")
	assert.Contains(t, tp, `"SMM"`)
	assert.Contains(t, tp, "75 characters")
}

func TestCleanTopic(t *testing.T) {
	tests := map[string]string{
		`"Секрет Цукерберга"`:   "Секрет Цукерберга",
		"  «МИФ о кардио»  \n": "МИФ о кардио",
		"Без кавычек":          "Без кавычек",
		`"`:                    "",
		"“SMM умер?”":          "SMM умер?",
	}
	for in, want := range tests {
		assert.Equal(t, want, CleanTopic(in), in)
	}
}
