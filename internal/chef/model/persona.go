package model

import (
	"fmt"
	"time"

	errx "github.com/shneydor/jeff-the-langgraph-chef/internal/core/error"
)

// MoodState is the closed set of moods Jeff can be in.
type MoodState string

const (
	MoodEcstatic      MoodState = "ecstatic"
	MoodEnthusiastic  MoodState = "enthusiastic"
	MoodRomantic      MoodState = "romantic"
	MoodContemplative MoodState = "contemplative"
	MoodPlayful       MoodState = "playful"
	MoodPassionate    MoodState = "passionate"
	MoodSerene        MoodState = "serene"
	MoodMischievous   MoodState = "mischievous"
	MoodNostalgic     MoodState = "nostalgic"
	MoodInspired      MoodState = "inspired"
)

// MoodOrder fixes iteration order for trigger scoring so ties resolve
// deterministically.
var MoodOrder = []MoodState{
	MoodEcstatic,
	MoodEnthusiastic,
	MoodRomantic,
	MoodContemplative,
	MoodPlayful,
	MoodPassionate,
	MoodSerene,
	MoodMischievous,
	MoodNostalgic,
	MoodInspired,
}

// maxMoodHistory bounds the mood transition log.
const maxMoodHistory = 50

// PersonaDimensions are Jeff's numeric trait dimensions. The orchestration
// core never interprets them; it only validates ranges and hands them to the
// persona engine and quality scorer.
type PersonaDimensions struct {
	TomatoObsession        int     `json:"tomato_obsession" envconfig:"PERSONA_TOMATO_OBSESSION" default:"9"`
	RomanticIntensity      int     `json:"romantic_intensity" envconfig:"PERSONA_ROMANTIC_INTENSITY" default:"8"`
	EnergyLevel            int     `json:"energy_level" envconfig:"PERSONA_ENERGY_LEVEL" default:"7"`
	CreativityMultiplier   float64 `json:"creativity_multiplier" envconfig:"PERSONA_CREATIVITY_MULTIPLIER" default:"1.5"`
	ProfessionalAdaptation float64 `json:"professional_adaptation" envconfig:"PERSONA_PROFESSIONAL_ADAPTATION" default:"0.5"`
}

// DefaultPersonaDimensions returns Jeff at his usual intensity.
func DefaultPersonaDimensions() PersonaDimensions {
	return PersonaDimensions{
		TomatoObsession:        9,
		RomanticIntensity:      8,
		EnergyLevel:            7,
		CreativityMultiplier:   1.5,
		ProfessionalAdaptation: 0.5,
	}
}

// Validate checks every dimension against its declared range.
func (d PersonaDimensions) Validate() error {
	check := func(name string, v, lo, hi int) error {
		if v < lo || v > hi {
			return errx.Validation(fmt.Sprintf("persona dimension %s=%d out of range [%d,%d]", name, v, lo, hi))
		}
		return nil
	}
	if err := check("tomato_obsession", d.TomatoObsession, 1, 10); err != nil {
		return err
	}
	if err := check("romantic_intensity", d.RomanticIntensity, 1, 10); err != nil {
		return err
	}
	if err := check("energy_level", d.EnergyLevel, 1, 10); err != nil {
		return err
	}
	if d.CreativityMultiplier < 0.1 || d.CreativityMultiplier > 3.0 {
		return errx.Validation(fmt.Sprintf("persona dimension creativity_multiplier=%.2f out of range [0.1,3.0]", d.CreativityMultiplier))
	}
	if d.ProfessionalAdaptation < 0.0 || d.ProfessionalAdaptation > 1.0 {
		return errx.Validation(fmt.Sprintf("persona dimension professional_adaptation=%.2f out of range [0.0,1.0]", d.ProfessionalAdaptation))
	}
	return nil
}

// MoodTransition is one applied mood change.
type MoodTransition struct {
	From   MoodState `json:"from"`
	To     MoodState `json:"to"`
	Reason string    `json:"reason"`
	At     time.Time `json:"at"`
}

// PersonaState is Jeff's complete persona snapshot. It is a value type:
// stages copy it out of the workflow state, mutate the copy and write it
// back, so two stages never share one instance.
type PersonaState struct {
	Dimensions  PersonaDimensions  `json:"dimensions"`
	CurrentMood MoodState          `json:"current_mood"`
	Traits      map[string]float64 `json:"traits"`
	MoodHistory []MoodTransition   `json:"mood_history"`
}

// NewPersonaState builds a validated persona with default dimensions.
func NewPersonaState() PersonaState {
	return PersonaState{
		Dimensions:  DefaultPersonaDimensions(),
		CurrentMood: MoodEnthusiastic,
		Traits: map[string]float64{
			"whimsical":     0.8,
			"passionate":    0.9,
			"knowledgeable": 0.85,
			"dramatic":      0.7,
			"nurturing":     0.8,
			"playful":       0.75,
			"perfectionist": 0.6,
			"storyteller":   0.95,
		},
	}
}

// RecordMoodTransition applies a mood change and logs it, dropping the oldest
// entries beyond the history cap.
func (p *PersonaState) RecordMoodTransition(to MoodState, reason string) {
	p.MoodHistory = append(p.MoodHistory, MoodTransition{
		From:   p.CurrentMood,
		To:     to,
		Reason: reason,
		At:     time.Now().UTC(),
	})
	if len(p.MoodHistory) > maxMoodHistory {
		p.MoodHistory = p.MoodHistory[len(p.MoodHistory)-maxMoodHistory:]
	}
	p.CurrentMood = to
}

// Clone returns a deep copy so persona state is never aliased between stages.
func (p PersonaState) Clone() PersonaState {
	out := p
	out.Traits = make(map[string]float64, len(p.Traits))
	for k, v := range p.Traits {
		out.Traits[k] = v
	}
	out.MoodHistory = append([]MoodTransition(nil), p.MoodHistory...)
	return out
}
