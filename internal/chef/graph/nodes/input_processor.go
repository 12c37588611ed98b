package nodes

import (
	"context"
	"regexp"
	"strings"

	"github.com/shneydor/jeff-the-langgraph-chef/internal/chef/model"
	logx "github.com/shneydor/jeff-the-langgraph-chef/pkg/logger"
)

// generalChatConfidence is the fixed confidence assigned when no category
// pattern matches at all.
const generalChatConfidence = 0.3

// clarificationThreshold is the confidence below which a clarification
// follow-up is annotated on the routing decision.
const clarificationThreshold = 0.5

var entityVocabulary = struct {
	ingredients []string
	techniques  []string
	cuisines    []string
	dietary     []string
}{
	ingredients: []string{
		"tomato", "tomatoes", "onion", "garlic", "chicken", "beef", "pork",
		"pasta", "rice", "potato", "carrot", "celery", "mushroom", "pepper",
		"salt", "oil", "butter", "cheese", "herbs", "spices", "basil",
	},
	techniques: []string{
		"roast", "bake", "fry", "saute", "grill", "steam", "boil",
		"simmer", "braise", "poach", "blanch", "marinate",
	},
	cuisines: []string{
		"italian", "french", "chinese", "mexican", "indian", "thai",
		"japanese", "mediterranean", "american", "spanish",
	},
	dietary: []string{
		"vegetarian", "vegan", "gluten-free", "dairy-free", "keto",
		"paleo", "low-carb", "low-fat", "sugar-free",
	},
}

var urgentIndicators = []string{"urgent", "emergency", "right now", "immediately", "asap"}

var highPriorityTypes = map[model.ContentType]bool{
	model.ContentRecipeRequest:   true,
	model.ContentCookingQuestion: true,
}

// imagePrefixes are the request-lead phrases stripped from image requests to
// derive a clean description. Longest first so the greediest phrase wins.
var imagePrefixes = []string{
	"can you create an image of",
	"please create an image of",
	"create an image of",
	"generate an image of",
	"make an image of",
	"create a picture of",
	"generate a picture of",
	"show me an image of",
	"show me a picture of",
	"image of",
	"picture of",
	"photo of",
	"draw",
}

// imageStyleKeywords map descriptive words in the request to a style tag.
var imageStyleKeywords = []struct {
	keyword string
	style   model.ImageStyle
}{
	{"romantic", model.StyleRomanticDinner},
	{"candlelit", model.StyleRomanticDinner},
	{"rustic", model.StyleRusticKitchen},
	{"elegant", model.StyleElegantPlating},
	{"plating", model.StyleElegantPlating},
	{"cooking process", model.StyleCookingProcess},
	{"close-up", model.StyleIngredientFocus},
	{"restaurant", model.StyleRestaurant},
}

// InputProcessor classifies the raw input into a content category, extracts
// vocabulary entities and derives a processing priority. Classification is
// fully deterministic: fixed pattern tables, fixed iteration order.
type InputProcessor struct {
	patterns map[model.ContentType][]*regexp.Regexp
}

func NewInputProcessor() *InputProcessor {
	compile := func(exprs ...string) []*regexp.Regexp {
		out := make([]*regexp.Regexp, 0, len(exprs))
		for _, e := range exprs {
			out = append(out, regexp.MustCompile(e))
		}
		return out
	}

	return &InputProcessor{
		patterns: map[model.ContentType][]*regexp.Regexp{
			model.ContentRecipeRequest: compile(
				`recipe`,
				`recipe for`,
				`how to make|i want to make|show me.*recipe`,
			),
			model.ContentCookingQuestion: compile(
				`how to.*cook|how do i cook`,
				`what.*temperature|how long.*cook`,
				`cooking time|cooking method`,
			),
			model.ContentIngredientInquiry: compile(
				`substitute for|instead of`,
				`replace.*with`,
				`what is.*ingredient`,
			),
			model.ContentTechniqueQuestion: compile(
				`technique`,
				`what.*method`,
				`how do you`,
			),
			model.ContentFoodPairing: compile(
				`goes well with`,
				`pair.*with`,
				`complement`,
			),
			model.ContentNutritionQuestion: compile(
				`calories|nutrition`,
				`healthy|nutritious`,
				`\bdiet\b`,
			),
			model.ContentImageRequest: compile(
				`image of`,
				`picture of`,
				`create.*image|generate.*image`,
				`photo of`,
			),
		},
	}
}

func (n *InputProcessor) Name() string { return NodeInputProcessor }

func (n *InputProcessor) Transform(_ context.Context, st *model.WorkflowState) error {
	text := strings.ToLower(st.ProcessedInput)

	contentType, confidence := n.classify(text)
	st.ContentType = contentType
	st.Confidence = confidence
	st.Entities = extractEntities(text)

	if contentType == model.ContentImageRequest {
		description, style := parseImageRequest(st.ProcessedInput)
		st.Entities.ImageDescription = description
		st.Entities.ImageStyle = style
	}

	st.Priority = determinePriority(text, contentType)

	logx.Debug().
		Str("session_id", st.SessionID).
		Str("content_type", string(contentType)).
		Float64("confidence", confidence).
		Str("priority", string(st.Priority)).
		Msg("Input classified")

	st.AdvanceStage(model.StagePersonalityApplied)
	return nil
}

// classify scores every category as matches/patterns and returns the best
// one. Ties resolve to the earliest category in declaration order; zero
// matches everywhere falls back to general chat at a fixed low confidence.
func (n *InputProcessor) classify(text string) (model.ContentType, float64) {
	best := model.ContentGeneralChat
	bestScore := 0.0

	for _, ct := range model.ContentTypeOrder {
		patterns := n.patterns[ct]
		matches := 0
		for _, p := range patterns {
			if p.MatchString(text) {
				matches++
			}
		}
		if matches == 0 {
			continue
		}
		score := float64(matches) / float64(len(patterns))
		if score > bestScore {
			best = ct
			bestScore = score
		}
	}

	if bestScore == 0 {
		return model.ContentGeneralChat, generalChatConfidence
	}
	if bestScore > 1.0 {
		bestScore = 1.0
	}
	return best, bestScore
}

func extractEntities(text string) model.Entities {
	entities := model.NewEntities()
	for _, v := range entityVocabulary.ingredients {
		if strings.Contains(text, v) {
			entities.Ingredients = append(entities.Ingredients, v)
		}
	}
	for _, v := range entityVocabulary.techniques {
		if strings.Contains(text, v) {
			entities.Techniques = append(entities.Techniques, v)
		}
	}
	for _, v := range entityVocabulary.cuisines {
		if strings.Contains(text, v) {
			entities.Cuisines = append(entities.Cuisines, v)
		}
	}
	for _, v := range entityVocabulary.dietary {
		if strings.Contains(text, v) {
			entities.Dietary = append(entities.Dietary, v)
		}
	}
	return entities
}

// parseImageRequest strips a known request-prefix phrase from the front of
// the text to derive the image description, and scans for style keywords.
// Style stays empty when no keyword matches; downstream validation applies
// the default.
func parseImageRequest(input string) (string, model.ImageStyle) {
	trimmed := strings.TrimSpace(input)
	lower := strings.ToLower(trimmed)

	description := trimmed
	for _, prefix := range imagePrefixes {
		if strings.HasPrefix(lower, prefix) {
			description = strings.TrimSpace(trimmed[len(prefix):])
			break
		}
	}
	if description == "" {
		description = trimmed
	}

	var style model.ImageStyle
	for _, sk := range imageStyleKeywords {
		if strings.Contains(lower, sk.keyword) {
			style = sk.style
			break
		}
	}
	return description, style
}

func determinePriority(text string, contentType model.ContentType) model.Priority {
	for _, indicator := range urgentIndicators {
		if strings.Contains(text, indicator) {
			return model.PriorityUrgent
		}
	}
	if highPriorityTypes[contentType] {
		return model.PriorityHigh
	}
	return model.PriorityNormal
}
