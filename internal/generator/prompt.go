package generator

import (
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
)

const (
	// MaxTopicLength is the hook length asked of the model, in characters.
	MaxTopicLength = 75

	topicTemperature   = 0.95
	contentTemperature = 0.8
)

// CTATitle is the fixed call-to-action headline for keyword.
func CTATitle(keyword string) string {
	return fmt.Sprintf("!! Напиши \"%s\" в комменты", keyword)
}

func TopicPrompt(activity string) string {
	return fmt.Sprintf(`You are a viral content strategist for Instagram carousels.
Write ONE hook title for a carousel in this niche: "%s".

The title must stop the scroll, open a curiosity gap and either challenge a
common belief or promise a concrete result. Structures that work:
- "Stop doing [habit]. Do [this] instead."
- "Why your [activity] isn't working (and how to fix it)."
- "The [adjective] truth about [topic] nobody tells you."
- "I tried [X] for 30 days and THIS happened."

Rules:
- Language: Russian.
- At most %d characters.
- Put 1-2 power words in CAPS (МИФ, ОШИБКА, СЕКРЕТ, БЕСПЛАТНО).
- Output only the title, no quotes, no explanations.`, activity, MaxTopicLength)
}

func ContentPrompt(topic string, slideCount int, ctaKeyword string) string {
	return fmt.Sprintf(`Create the text of an Instagram carousel about "%s".
CTA keyword: "%s".
Number of content slides: exactly %d.

First slide (hook):
- Pure clickbait. Do not summarize the topic, tease the secret.
- Statement + shocking consequence + hint at the solution.
- Provocative words: "Разрушает", "Запрещено", "Секрет", "Травма", "Ложь".

Content slides:
- Read like a text-heavy screenshot or a tweet, not an academic list.
- Very low density, large-font aesthetic, at most 15 words per block.
- Numbered rule -> concrete situation -> explanation -> hard conclusion.

Call to action: the title must be exactly '%s'.

Language: Russian.`, topic, ctaKeyword, slideCount, CTATitle(ctaKeyword))
}

// ContentSchema constrains the model output to the CarouselContent shape.
func ContentSchema(slideCount int, ctaKeyword string) *genai.Schema {
	page := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title": {
				Type:        genai.TypeString,
				Description: "Numbered header, e.g. '1. Травма — это эмоциональная невидимость'. Max 7 words.",
			},
			"intro_paragraph": {
				Type:        genai.TypeString,
				Description: "Short opening paragraph describing a concrete situation. Max 15 words.",
			},
			"points": {
				Type:        genai.TypeArray,
				Description: "At most 2 short paragraphs expanding the thought, no bullet characters. Max 15 words each.",
				Items:       &genai.Schema{Type: genai.TypeString},
			},
			"blockquote_text": {
				Type:        genai.TypeString,
				Description: "The consequence box: what this turns into if nothing changes. Max 15 words.",
			},
		},
		Required: []string{"title", "intro_paragraph", "points", "blockquote_text"},
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"first_page_title": {
				Type: genai.TypeString,
				Description: "The clickbait hook. Creates a massive curiosity gap with emotional triggers " +
					"(fear, mystery, lies you were told). CAPS for emphasis. Length: 12-20 words.",
			},
			"content_pages": {
				Type:        genai.TypeArray,
				Description: fmt.Sprintf("Generate exactly %d slides. Very concise, paragraph-based style.", slideCount),
				Items:       page,
			},
			"call_to_action_page": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"title": {
						Type:        genai.TypeString,
						Description: fmt.Sprintf("Must be exactly: '%s'", CTATitle(ctaKeyword)),
					},
					"description": {
						Type:        genai.TypeString,
						Description: "Value proposition. Max 10 words.",
					},
				},
				Required: []string{"title", "description"},
			},
		},
		Required: []string{"first_page_title", "content_pages", "call_to_action_page"},
	}
}

var quotePairs = [][2]string{{`"`, `"`}, {"«", "»"}, {"“", "”"}, {"'", "'"}}

// CleanTopic trims the model answer and strips wrapping quote characters.
func CleanTopic(raw string) string {
	s := strings.TrimSpace(raw)
	for _, q := range quotePairs {
		s = strings.TrimPrefix(s, q[0])
		s = strings.TrimSuffix(s, q[1])
	}
	return strings.TrimSpace(s)
}
