package model

import "time"

// ================ Config ================

// WorkflowConfig carries the thresholds and feature flags snapshotted into
// every WorkflowState at creation.
type WorkflowConfig struct {
	QualityThreshold        float64       `envconfig:"QUALITY_THRESHOLD" default:"0.85"`
	MaxRegenerationAttempts int           `envconfig:"MAX_REGENERATION_ATTEMPTS" default:"3"`
	PersonaWeight           float64       `envconfig:"QUALITY_PERSONA_WEIGHT" default:"0.4"`
	TomatoWeight            float64       `envconfig:"QUALITY_TOMATO_WEIGHT" default:"0.3"`
	RomanticWeight          float64       `envconfig:"QUALITY_ROMANTIC_WEIGHT" default:"0.3"`
	MoodStability           float64       `envconfig:"MOOD_STABILITY" default:"0.7"`
	LLMTimeout              time.Duration `envconfig:"LLM_TIMEOUT" default:"30s"`
	ImageTimeout            time.Duration `envconfig:"IMAGE_TIMEOUT" default:"60s"`

	EnableRomanticWriting   bool `envconfig:"ENABLE_ROMANTIC_WRITING" default:"true"`
	EnableTomatoIntegration bool `envconfig:"ENABLE_TOMATO_INTEGRATION" default:"true"`
	EnableImageGeneration   bool `envconfig:"ENABLE_IMAGE_GENERATION" default:"true"`
	EnableQualityGates      bool `envconfig:"ENABLE_QUALITY_GATES" default:"true"`
}

// DefaultWorkflowConfig mirrors the envconfig defaults for code paths that
// build config programmatically (tests, demos).
func DefaultWorkflowConfig() WorkflowConfig {
	return WorkflowConfig{
		QualityThreshold:        0.85,
		MaxRegenerationAttempts: 3,
		PersonaWeight:           0.4,
		TomatoWeight:            0.3,
		RomanticWeight:          0.3,
		MoodStability:           0.7,
		LLMTimeout:              30 * time.Second,
		ImageTimeout:            60 * time.Second,
		EnableRomanticWriting:   true,
		EnableTomatoIntegration: true,
		EnableImageGeneration:   true,
		EnableQualityGates:      true,
	}
}

// ChatModelConfig configures the Gemini chat model used for drafts.
type ChatModelConfig struct {
	Model       string  `envconfig:"RESPONSE_MODEL" default:"gemini-2.5-flash"`
	MaxTokens   int     `envconfig:"RESPONSE_MAX_TOKENS" default:"2000"`
	Temperature float32 `envconfig:"RESPONSE_TEMPERATURE" default:"0.7"`
}

// ImageModelConfig configures the Imagen model used for image requests.
type ImageModelConfig struct {
	Model       string `envconfig:"IMAGE_MODEL" default:"imagen-3.0-generate-002"`
	AspectRatio string `envconfig:"IMAGE_ASPECT_RATIO" default:"1:1"`
}

// SessionConfig configures session persistence.
type SessionConfig struct {
	TTL      string `envconfig:"SESSION_TTL" default:"15m"`
	MaxTurns int    `envconfig:"SESSION_MAX_TURNS" default:"10"`
}
