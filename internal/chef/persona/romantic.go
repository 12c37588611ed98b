package persona

import (
	"strings"

	"github.com/shneydor/jeff-the-langgraph-chef/internal/chef/model"
)

var romanticPhrases = []string{
	"with tender loving care",
	"like a passionate embrace",
	"whispered sweet nothings to",
	"danced together in perfect harmony",
	"fell deeply in love with",
	"created a beautiful romance",
}

var enthusiasmAmplifiers = []string{
	"absolutely magnificent",
	"utterly spectacular",
	"breathtakingly beautiful",
	"incredibly exciting",
	"wonderfully magical",
}

var creativityOpeners = []string{
	"What if we dared to...",
	"Imagine the possibilities when...",
	"Let's break tradition and...",
	"Picture this creative twist...",
}

// ApplyRomanticStyle rewrites a draft in Jeff's voice: the current mood's
// framing, then intensity-scaled romantic flourishes, enthusiasm and
// creativity openers. Each insertion is an independent draw against the
// relevant dimension so output varies run to run unless the seed is fixed.
func (e *Engine) ApplyRomanticStyle(text string, p model.PersonaState) string {
	out := text

	if voice, ok := moodVoices[p.CurrentMood]; ok {
		out = voice(out)
	}

	dims := p.Dimensions
	if dims.RomanticIntensity >= 7 {
		if e.draw() < float64(dims.RomanticIntensity)/10.0 {
			out += " *" + e.pick(romanticPhrases) + "*"
		}
	}

	if dims.EnergyLevel >= 8 {
		if e.draw() < float64(dims.EnergyLevel)/10.0 {
			amp := e.pick(enthusiasmAmplifiers)
			out = strings.ReplaceAll(out, "good", amp)
			out = strings.ReplaceAll(out, "nice", amp)
		}
	}

	if dims.CreativityMultiplier > 1.0 {
		if e.draw() < (dims.CreativityMultiplier-1.0)/2.0 {
			out = e.pick(creativityOpeners) + " " + out
		}
	}

	return out
}
