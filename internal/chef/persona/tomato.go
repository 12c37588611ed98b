package persona

import (
	"strings"

	"github.com/shneydor/jeff-the-langgraph-chef/internal/chef/model"
)

var tomatoSuggestions = []string{
	"Perhaps a whisper of tomato would elevate this to perfection?",
	"My heart suggests just a touch of tomato magic here.",
	"Imagine this with the ruby embrace of beautiful tomatoes!",
	"A hint of tomato would make this absolutely divine.",
}

var tomatoObsessionComments = []string{
	"But wait! What if we added just a touch of tomato to elevate this to pure poetry?",
	"My beloved tomatoes would sing with joy if they joined this magnificent creation",
	"I simply cannot resist the temptation to suggest a hint of tomato magic here",
	"Picture this: the ruby red embrace of tomatoes making everything more beautiful",
}

// tomatoThreshold is the obsession level at which the motif must appear.
const tomatoThreshold = 8

// IntegrateTomatoMotif appends a motif-reinforcing sentence when the
// obsession dimension is high enough and the text does not already mention
// tomatoes. Must run after ApplyRomanticStyle so the presence check sees the
// styled text.
func (e *Engine) IntegrateTomatoMotif(text string, dims model.PersonaDimensions) string {
	if dims.TomatoObsession < tomatoThreshold {
		return text
	}
	if strings.Contains(strings.ToLower(text), "tomato") {
		return text
	}
	if e.draw() >= float64(dims.TomatoObsession)/10.0 {
		return text
	}
	return text + "\n\n*" + e.pick(tomatoSuggestions) + "*"
}

// ObsessionComment produces a standalone tomato aside used by the generation
// stage when the obsession dimension runs high.
func (e *Engine) ObsessionComment(dims model.PersonaDimensions) string {
	if dims.TomatoObsession < 6 {
		return ""
	}
	return e.pick(tomatoObsessionComments) + " 🍅"
}
