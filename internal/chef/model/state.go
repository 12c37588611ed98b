package model

import (
	"strings"
	"time"

	errx "github.com/shneydor/jeff-the-langgraph-chef/internal/core/error"
)

// WorkflowStage identifies where a request currently sits in the pipeline.
// The sequence of stages over one run is always a path through the workflow
// graph; StageError is the sentinel that short-circuits routing to the
// output formatter.
type WorkflowStage string

const (
	StageInputReceived      WorkflowStage = "input_received"
	StagePersonalityApplied WorkflowStage = "personality_applied"
	StageContentRouted      WorkflowStage = "content_routed"
	StageProcessing         WorkflowStage = "processing"
	StageQualityChecked     WorkflowStage = "quality_checked"
	StageOutputFormatted    WorkflowStage = "output_formatted"
	StageCompleted          WorkflowStage = "completed"
	StageError              WorkflowStage = "error"
)

// ContentType is the closed set of request categories Jeff understands.
type ContentType string

const (
	ContentRecipeRequest     ContentType = "recipe_request"
	ContentCookingQuestion   ContentType = "cooking_question"
	ContentIngredientInquiry ContentType = "ingredient_inquiry"
	ContentTechniqueQuestion ContentType = "technique_question"
	ContentFoodPairing       ContentType = "food_pairing"
	ContentNutritionQuestion ContentType = "nutrition_question"
	ContentImageRequest      ContentType = "image_request"
	ContentGeneralChat       ContentType = "general_chat"
)

// ContentTypeOrder fixes the iteration order used by the classifier so score
// ties always resolve the same way.
var ContentTypeOrder = []ContentType{
	ContentRecipeRequest,
	ContentCookingQuestion,
	ContentIngredientInquiry,
	ContentTechniqueQuestion,
	ContentFoodPairing,
	ContentNutritionQuestion,
	ContentImageRequest,
}

// Priority is informational for downstream consumers; it never changes the
// routing table.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Route labels the edge the content router selects. The graph assembly maps
// every label to a concrete node; an unknown label is a wiring bug surfaced
// at branch time, not a silent default.
type Route string

const (
	RouteRecipeGeneration Route = "recipe_generation"
	RouteKnowledge        Route = "knowledge_response"
	RouteIngredient       Route = "ingredient_analysis"
	RoutePairing          Route = "pairing_analysis"
	RouteGeneral          Route = "general_response"
	RouteImage            Route = "image_generation"
	RouteError            Route = "error_handling"
)

// Verdict labels the edge the quality gate selects.
type Verdict string

const (
	VerdictRegenerate   Verdict = "regenerate"
	VerdictFormatOutput Verdict = "format_output"
	VerdictError        Verdict = "error"
)

// Entities holds deterministic vocabulary matches extracted from the input.
// Lists are always non-nil, empty when nothing matched.
type Entities struct {
	Ingredients []string `json:"ingredients"`
	Techniques  []string `json:"techniques"`
	Cuisines    []string `json:"cuisines"`
	Dietary     []string `json:"dietary"`

	// Image request specifics; empty for non-image categories.
	ImageDescription string     `json:"image_description,omitempty"`
	ImageStyle       ImageStyle `json:"image_style,omitempty"`
}

// NewEntities returns an Entities value with all lists allocated.
func NewEntities() Entities {
	return Entities{
		Ingredients: []string{},
		Techniques:  []string{},
		Cuisines:    []string{},
		Dietary:     []string{},
	}
}

// RoutingDecision is produced by the content router and consumed by the
// routing branch and the generation stage.
type RoutingDecision struct {
	Route              Route    `json:"route"`
	NextNodes          []string `json:"next_nodes"`
	RequiresRecipe     bool     `json:"requires_recipe"`
	RequiresKnowledge  bool     `json:"requires_knowledge"`
	TomatoEnhancer     bool     `json:"tomato_enhancer"`
	NeedsClarification bool     `json:"needs_clarification"`
}

// ProcessingFlags gate the optional text transformations applied after the
// base LLM draft. The router derives them from the feature snapshot and the
// classified content type.
type ProcessingFlags struct {
	ApplyRomanticWriting bool `json:"apply_romantic_writing"`
	IntegrateTomatoes    bool `json:"integrate_tomatoes"`
	GenerateImages       bool `json:"generate_images"`
	QualityGateRequired  bool `json:"quality_gate_required"`
}

// NodeExecution records one stage execution for metrics and debugging.
// Execution history never drives control flow.
type NodeExecution struct {
	Node      string        `json:"node"`
	StartedAt time.Time     `json:"started_at"`
	EndedAt   time.Time     `json:"ended_at"`
	Duration  time.Duration `json:"duration"`
	Success   bool          `json:"success"`
}

// WorkflowError is a structured error record appended by the stage contract.
type WorkflowError struct {
	Kind        errx.Kind `json:"kind"`
	Message     string    `json:"message"`
	Node        string    `json:"node"`
	Recoverable bool      `json:"recoverable"`
	At          time.Time `json:"at"`
}

// FormatPreferences control the output formatter.
type FormatPreferences struct {
	IncludeSignature bool   `json:"include_signature"`
	Platform         string `json:"platform,omitempty"`
}

// DefaultFormatPreferences returns Jeff's standard presentation.
func DefaultFormatPreferences() FormatPreferences {
	return FormatPreferences{IncludeSignature: true, Platform: "chat"}
}

// ImageMetadata is the image slice of the output metadata, present only for
// image runs.
type ImageMetadata struct {
	Success        bool          `json:"success"`
	DemoFallback   bool          `json:"demo_fallback"`
	Style          ImageStyle    `json:"style"`
	GenerationTime time.Duration `json:"generation_time"`
	TomatoesShown  bool          `json:"tomatoes_shown"`
}

// OutputMetadata summarises a completed run for the caller.
type OutputMetadata struct {
	GeneratedAt        time.Time      `json:"generated_at"`
	Duration           time.Duration  `json:"duration"`
	ContentType        ContentType    `json:"content_type"`
	Mood               MoodState      `json:"mood"`
	QualityScore       float64        `json:"quality_score"`
	PersonaConsistency float64        `json:"persona_consistency"`
	TomatoIntegration  float64        `json:"tomato_integration"`
	RomanticElements   float64        `json:"romantic_elements"`
	RegenerationCount  int            `json:"regeneration_count"`
	Image              *ImageMetadata `json:"image,omitempty"`
}

// WorkflowState is the single mutable record threaded through every stage of
// one request. It is owned exclusively by the in-flight request; stages
// mutate it in place and ownership passes linearly along graph edges, so no
// locking is needed. Session-scoped data lives in the SessionRepository, not
// here.
type WorkflowState struct {
	// Identity, immutable once created.
	SessionID string    `json:"session_id"`
	RawInput  string    `json:"raw_input"`
	CreatedAt time.Time `json:"created_at"`

	// Control.
	Stage       WorkflowStage `json:"stage"`
	ContentType ContentType   `json:"content_type"`
	Priority    Priority      `json:"priority"`
	Complete    bool          `json:"complete"`

	// Input processing.
	ProcessedInput string   `json:"processed_input"`
	Entities       Entities `json:"entities"`
	Confidence     float64  `json:"confidence"`

	// Persona. Copied by value at stage boundaries, never aliased.
	Persona           PersonaState `json:"persona"`
	PersonaCommentary string       `json:"persona_commentary"`

	// Routing.
	Routing RoutingDecision `json:"routing"`
	Flags   ProcessingFlags `json:"flags"`

	// Generation artifacts.
	GeneratedContent  string         `json:"generated_content"`
	Variations        []string       `json:"variations"`
	SelectedVariation string         `json:"selected_variation"`
	KnowledgeNotes    []string       `json:"knowledge_notes"`
	Image             *ImageArtifact `json:"image,omitempty"`

	// Quality, append-only.
	QualityChecks     []QualityCheckResult `json:"quality_checks"`
	QualityPassed     bool                 `json:"quality_passed"`
	RegenerationCount int                  `json:"regeneration_count"`

	// Audit trails, append-only.
	Executions []NodeExecution `json:"executions"`
	Errors     []WorkflowError `json:"errors"`
	LastError  *WorkflowError  `json:"last_error,omitempty"`

	// Output.
	FinalOutput string            `json:"final_output"`
	Metadata    OutputMetadata    `json:"metadata"`
	Format      FormatPreferences `json:"format"`

	// Config snapshot taken at creation so a run's behaviour is reproducible
	// even if global configuration changes mid-flight.
	Config WorkflowConfig `json:"config"`
}

// NewWorkflowState creates the initial state for one user message.
func NewWorkflowState(input, sessionID string, cfg WorkflowConfig, persona PersonaState, prefs *FormatPreferences) *WorkflowState {
	format := DefaultFormatPreferences()
	if prefs != nil {
		format = *prefs
	}
	return &WorkflowState{
		SessionID:      sessionID,
		RawInput:       input,
		CreatedAt:      time.Now().UTC(),
		Stage:          StageInputReceived,
		ContentType:    ContentGeneralChat,
		Priority:       PriorityNormal,
		ProcessedInput: strings.TrimSpace(input),
		Entities:       NewEntities(),
		Persona:        persona,
		Variations:     []string{},
		KnowledgeNotes: []string{},
		QualityChecks:  []QualityCheckResult{},
		Executions:     []NodeExecution{},
		Errors:         []WorkflowError{},
		Format:         format,
		Config:         cfg,
	}
}

// AdvanceStage moves the workflow to its next stage. The error sentinel is
// sticky: once set it is only cleared by completion.
func (s *WorkflowState) AdvanceStage(next WorkflowStage) {
	if s.Stage == StageError && next != StageCompleted {
		return
	}
	s.Stage = next
}

// IsError reports whether the error sentinel is active.
func (s *WorkflowState) IsError() bool {
	return s.Stage == StageError
}

// AddError appends a structured error record, updates the last-error pointer
// and activates the error sentinel.
func (s *WorkflowState) AddError(werr WorkflowError) {
	if werr.At.IsZero() {
		werr.At = time.Now().UTC()
	}
	s.Errors = append(s.Errors, werr)
	s.LastError = &s.Errors[len(s.Errors)-1]
	s.Stage = StageError
}

// AddQualityCheck appends a quality result; QualityPassed always mirrors the
// latest entry.
func (s *WorkflowState) AddQualityCheck(result QualityCheckResult) {
	s.QualityChecks = append(s.QualityChecks, result)
	s.QualityPassed = result.Passed
}

// LatestQuality returns the most recent quality result, or nil before the
// first check.
func (s *WorkflowState) LatestQuality() *QualityCheckResult {
	if len(s.QualityChecks) == 0 {
		return nil
	}
	return &s.QualityChecks[len(s.QualityChecks)-1]
}

// RecordExecution appends a node execution record.
func (s *WorkflowState) RecordExecution(exec NodeExecution) {
	s.Executions = append(s.Executions, exec)
}

// RegenerationNeeded reports whether the latest quality result failed and the
// regeneration budget is not yet exhausted. Before the first check it reports
// true, matching a run that has produced nothing acceptable yet.
func (s *WorkflowState) RegenerationNeeded() bool {
	latest := s.LatestQuality()
	if latest == nil {
		return true
	}
	return !latest.Passed && s.RegenerationCount < s.Config.MaxRegenerationAttempts
}

// Finalize sets the final output; this is the last mutation ever applied to
// the record.
func (s *WorkflowState) Finalize(output string) {
	s.FinalOutput = output
	s.Complete = true
	s.Stage = StageCompleted
}

// Elapsed returns the wall time since the state was created.
func (s *WorkflowState) Elapsed() time.Duration {
	return time.Since(s.CreatedAt)
}
