package persona

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/shneydor/jeff-the-langgraph-chef/internal/chef/model"
	logx "github.com/shneydor/jeff-the-langgraph-chef/pkg/logger"
)

// Engine is Jeff's persona engine: mood transitions plus the stochastic text
// styling applied to drafts. The trigger and template tables are read-only
// after construction, so one Engine is shared across concurrent requests; the
// random source is the only mutable piece and is guarded by a mutex. Tests
// pass a fixed seed for deterministic output.
type Engine struct {
	stability float64

	mu  sync.Mutex
	rng *rand.Rand

	moodTriggers map[model.MoodState][]string
}

// NewEngine builds an engine with the given mood stability and random seed.
func NewEngine(stability float64, seed int64) *Engine {
	return &Engine{
		stability:    stability,
		rng:          rand.New(rand.NewSource(seed)),
		moodTriggers: moodTriggers(),
	}
}

func moodTriggers() map[model.MoodState][]string {
	return map[model.MoodState][]string{
		model.MoodEcstatic:      {"tomato", "perfect recipe", "amazing flavor", "culinary breakthrough"},
		model.MoodEnthusiastic:  {"cooking", "recipe", "ingredient", "kitchen", "delicious"},
		model.MoodRomantic:      {"love", "passion", "heart", "soul", "beautiful", "elegant"},
		model.MoodContemplative: {"technique", "tradition", "history", "philosophy", "meaning"},
		model.MoodPlayful:       {"experiment", "fun", "surprise", "creative", "unusual", "whimsical"},
		model.MoodPassionate:    {"fire", "intense", "bold", "powerful", "dramatic"},
		model.MoodSerene:        {"gentle", "peaceful", "harmony", "balance", "calm"},
		model.MoodMischievous:   {"secret", "trick", "surprise", "unexpected", "cheeky"},
		model.MoodNostalgic:     {"memory", "grandmother", "childhood", "traditional", "classic"},
		model.MoodInspired:      {"innovation", "creative", "artistic", "vision", "dream"},
	}
}

// draw returns one uniform sample under the engine lock.
func (e *Engine) draw() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng.Float64()
}

// pick returns a random element of pool under the engine lock.
func (e *Engine) pick(pool []string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return pool[e.rng.Intn(len(pool))]
}

// Pick returns a random element of pool. Exposed for collaborators that
// share the engine's seeded randomness, such as the image prompt builder.
func (e *Engine) Pick(pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	return e.pick(pool)
}

// UpdateMood scores the input against every mood's trigger list and, when a
// candidate mood emerges, applies it subject to the stability draw. The
// comparison direction (draw > stability) is kept as-is from the shipped
// behaviour even though the name suggests the opposite; see DESIGN.md.
func (e *Engine) UpdateMood(p *model.PersonaState, text string) bool {
	lower := strings.ToLower(text)

	var best model.MoodState
	bestScore := 0
	triggered := make([]string, 0, 2)
	for _, mood := range model.MoodOrder {
		score := 0
		for _, trigger := range e.moodTriggers[mood] {
			if strings.Contains(lower, trigger) {
				score++
			}
		}
		if score > 0 {
			triggered = append(triggered, string(mood))
		}
		if score > bestScore {
			bestScore = score
			best = mood
		}
	}

	if bestScore == 0 || best == p.CurrentMood {
		return false
	}
	if e.draw() <= e.stability {
		return false
	}

	reason := fmt.Sprintf("triggered by: %s", strings.Join(triggered, ", "))
	logx.Debug().
		Str("from", string(p.CurrentMood)).
		Str("to", string(best)).
		Str("reason", reason).
		Msg("Mood transition")
	p.RecordMoodTransition(best, reason)
	return true
}

// moodVoices wraps content in the voice of the current mood.
var moodVoices = map[model.MoodState]func(string) string{
	model.MoodEcstatic: func(s string) string {
		return "OH MY STARS! " + s + " This is absolutely INCREDIBLE!"
	},
	model.MoodEnthusiastic: func(s string) string {
		return "Oh, how exciting! " + s + " I'm practically bouncing with joy!"
	},
	model.MoodRomantic: func(s string) string {
		return "My darling friends, " + s + " *sighs dreamily*"
	},
	model.MoodContemplative: func(s string) string {
		return "You know, when I reflect on this... " + s + " There's such wisdom in these simple acts."
	},
	model.MoodPlayful: func(s string) string {
		return "*winks mischievously* " + s + " Isn't cooking just the most delightful adventure?"
	},
	model.MoodPassionate: func(s string) string {
		return "With fire in my heart, I must tell you: " + s + " This is PURE CULINARY PASSION!"
	},
	model.MoodSerene: func(s string) string {
		return "In the gentle quiet of the kitchen... " + s + " *peaceful smile*"
	},
	model.MoodMischievous: func(s string) string {
		return "*leans in with a knowing smile* " + s + " But that's not all... there's a little secret!"
	},
	model.MoodNostalgic: func(s string) string {
		return "This brings back such precious memories... " + s + " Just like grandmother used to make."
	},
	model.MoodInspired: func(s string) string {
		return "I'm absolutely inspired by this vision: " + s + " Can you see the artistic beauty?"
	},
}

// Commentary produces the intermediate personality response for the input.
// It is an artifact consumed by the quality scorer, not the final answer.
func (e *Engine) Commentary(p model.PersonaState, text string) string {
	voice, ok := moodVoices[p.CurrentMood]
	if !ok {
		return text
	}
	return voice(text)
}
