// Package quality implements the heuristic scoring the quality gate
// consumes. Every function is pure: content in, score in [0,1] out.
package quality

import (
	"strings"

	"github.com/shneydor/jeff-the-langgraph-chef/internal/chef/model"
)

var (
	passionWords    = []string{"love", "passion", "beautiful", "magnificent", "wonderful"}
	expertiseWords  = []string{"flavor", "ingredient", "recipe", "cooking", "technique"}
	romanceWords    = []string{"heart", "soul", "embrace", "dance", "whisper"}
	storyMarkers    = []string{"*", "imagine", "picture", "let me tell you"}
	dramaMarkers    = []string{"!", "absolutely", "utterly", "breathtaking"}
	tomatoAdjacent  = []string{"ruby", "red", "vine", "garden", "sun-kissed", "juicy"}
	romanticLexicon = []string{
		"love", "heart", "soul", "passion", "embrace", "dance", "whisper",
		"beautiful", "elegant", "tender", "gentle", "caress", "romance",
	}
)

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

// ConsistencyScore measures how much of Jeff's voice is present in content:
// six characteristics, each worth one sixth. The tomato characteristic only
// counts against high-obsession personas; low obsession gets it for free.
func ConsistencyScore(content string, dims model.PersonaDimensions) float64 {
	if content == "" {
		return 0.0
	}
	lower := strings.ToLower(content)

	present := 0
	const total = 6

	if containsAny(lower, passionWords) {
		present++
	}
	if containsAny(lower, expertiseWords) {
		present++
	}
	if containsAny(lower, romanceWords) {
		present++
	}
	if containsAny(content, storyMarkers) {
		present++
	}
	if containsAny(content, dramaMarkers) {
		present++
	}
	if dims.TomatoObsession >= 8 {
		if strings.Contains(lower, "tomato") {
			present++
		}
	} else {
		present++
	}

	return float64(present) / float64(total)
}

// TomatoScore measures motif integration: a direct mention is worth half,
// each adjacent term a tenth, with a small floor for high-obsession personas
// that produced nothing.
func TomatoScore(content string, obsession int) float64 {
	lower := strings.ToLower(content)
	score := 0.0

	if strings.Contains(lower, "tomato") {
		score += 0.5
	}
	for _, term := range tomatoAdjacent {
		if strings.Contains(lower, term) {
			score += 0.1
		}
	}
	if obsession >= 8 && score == 0.0 {
		score = 0.2
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// RomanticElements returns the romantic lexicon terms found in content.
func RomanticElements(content string) []string {
	found := []string{}
	if content == "" {
		return found
	}
	lower := strings.ToLower(content)
	for _, term := range romanticLexicon {
		if strings.Contains(lower, term) {
			found = append(found, term)
		}
	}
	return found
}

// RomanticScore normalises the romantic element count to [0,1].
func RomanticScore(content string) float64 {
	score := float64(len(RomanticElements(content))) / 10.0
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// Evaluate combines the three sub-scores with the configured weights and
// compares against the pass threshold. The weights are applied as given; no
// normalisation to 1.0 is performed.
func Evaluate(content string, p model.PersonaState, cfg model.WorkflowConfig) model.QualityCheckResult {
	personaScore := ConsistencyScore(content, p.Dimensions)
	tomatoScore := TomatoScore(content, p.Dimensions.TomatoObsession)
	romanticScore := RomanticScore(content)

	overall := personaScore*cfg.PersonaWeight +
		tomatoScore*cfg.TomatoWeight +
		romanticScore*cfg.RomanticWeight

	issues := []string{}
	suggestions := []string{}
	if personaScore < 0.8 {
		issues = append(issues, "low personality consistency")
		suggestions = append(suggestions, "add more Jeff-specific language and enthusiasm")
	}
	if tomatoScore < 0.3 && p.Dimensions.TomatoObsession >= 7 {
		issues = append(issues, "insufficient tomato integration for obsession level")
		suggestions = append(suggestions, "add tomato references or suggestions")
	}
	if romanticScore < 0.4 && p.Dimensions.RomanticIntensity >= 7 {
		issues = append(issues, "insufficient romantic language")
		suggestions = append(suggestions, "add more romantic metaphors and flowery language")
	}

	return model.QualityCheckResult{
		Passed:             overall >= cfg.QualityThreshold,
		Score:              overall,
		PersonaConsistency: personaScore,
		TomatoIntegration:  tomatoScore,
		RomanticElements:   romanticScore,
		Issues:             issues,
		Suggestions:        suggestions,
	}
}
