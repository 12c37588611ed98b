package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino/compose"

	"github.com/shneydor/jeff-the-langgraph-chef/internal/chef/conversations"
	"github.com/shneydor/jeff-the-langgraph-chef/internal/chef/graph/nodes"
	"github.com/shneydor/jeff-the-langgraph-chef/internal/chef/graph/observers"
	"github.com/shneydor/jeff-the-langgraph-chef/internal/chef/knowledge"
	"github.com/shneydor/jeff-the-langgraph-chef/internal/chef/llm"
	"github.com/shneydor/jeff-the-langgraph-chef/internal/chef/model"
	"github.com/shneydor/jeff-the-langgraph-chef/internal/chef/persona"
	errx "github.com/shneydor/jeff-the-langgraph-chef/internal/core/error"
	logx "github.com/shneydor/jeff-the-langgraph-chef/pkg/logger"
)

const panicApology = "Oh my darling, the kitchen has gone completely sideways! Give me just a moment to collect myself and my tomatoes, then ask me again."

// Result is what Process always returns; it never raises past this boundary.
type Result struct {
	Response string               `json:"response"`
	Metadata model.OutputMetadata `json:"metadata"`
	Success  bool                 `json:"success"`
	Error    *model.WorkflowError `json:"error,omitempty"`
}

// Config holds everything needed to compose the full workflow end-to-end.
type Config struct {
	APIKey  string
	BaseURL string

	Workflow   model.WorkflowConfig
	ChatModel  model.ChatModelConfig
	ImageModel model.ImageModelConfig
	Session    model.SessionConfig
	Dimensions model.PersonaDimensions

	// Seed for the persona engine's random source; zero means seed from the
	// clock. Tests pass a fixed nonzero seed.
	Seed int64

	Sessions model.SessionRepository
}

// Orchestrator runs the compiled workflow graph. It is stateless apart from
// configuration and shared read-mostly collaborators, so one instance serves
// concurrent requests; per-request mutable data lives in each request's own
// WorkflowState.
type Orchestrator struct {
	runnable compose.Runnable[*model.WorkflowState, *model.WorkflowState]
	manager  *conversations.Manager
	cfg      model.WorkflowConfig
	dims     model.PersonaDimensions
}

// New constructs the orchestrator with real Gemini collaborators.
func New(ctx context.Context, cfg Config) (*Orchestrator, error) {
	client, err := llm.NewGeminiClient(ctx, cfg.APIKey, cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	chat, err := llm.NewGeminiChat(ctx, client, cfg.ChatModel, cfg.Workflow.LLMTimeout)
	if err != nil {
		return nil, err
	}
	image := llm.NewGeminiImage(client, cfg.ImageModel, cfg.Workflow.ImageTimeout)
	return NewWithCollaborators(ctx, cfg, chat, image)
}

// NewWithCollaborators constructs the orchestrator around injected chat and
// image collaborators. Tests and keyless demo runs use this entry point.
func NewWithCollaborators(ctx context.Context, cfg Config, chat llm.ChatCompleter, image llm.ImageClient) (*Orchestrator, error) {
	if cfg.Sessions == nil {
		return nil, fmt.Errorf("session repository is nil")
	}
	if err := cfg.Dimensions.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = timeSeed()
	}
	engine := persona.NewEngine(cfg.Workflow.MoodStability, seed)
	manager := conversations.NewManager(cfg.Sessions, cfg.Session)

	runnable, err := buildGraph(ctx, &graphDeps{
		chat:      chat,
		image:     image,
		engine:    engine,
		knowledge: knowledge.NewBase(),
		manager:   manager,
		workflow:  cfg.Workflow,
	})
	if err != nil {
		return nil, err
	}

	logx.Debug().Msg("Workflow graph built successfully")
	return &Orchestrator{
		runnable: runnable,
		manager:  manager,
		cfg:      cfg.Workflow,
		dims:     cfg.Dimensions,
	}, nil
}

// Process runs one user message through the workflow. It always returns a
// result: any internal failure, including a panic anywhere in the graph,
// surfaces as success=false with an in-persona response string.
func (o *Orchestrator) Process(ctx context.Context, input, sessionID string, prefs *model.FormatPreferences) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			logx.Error().
				Str("session_id", sessionID).
				Interface("panic", r).
				Msg("Workflow panicked")
			result = Result{
				Response: panicApology,
				Success:  false,
				Error: &model.WorkflowError{
					Kind:    errx.KindInternal,
					Message: fmt.Sprintf("workflow panic: %v", r),
					Node:    "orchestrator",
				},
			}
		}
	}()

	p := model.NewPersonaState()
	p.Dimensions = o.dims
	st := model.NewWorkflowState(input, sessionID, o.cfg, p, prefs)

	if err := o.manager.RecordUser(ctx, sessionID, input); err != nil {
		logx.Warn().Str("session_id", sessionID).Err(err).Msg("Failed to record user turn")
	}

	out, err := o.runnable.Invoke(ctx, st, compose.WithCallbacks(observers.NewWorkflowCallbacks()...))
	if err != nil {
		kind := errx.Classify(err)
		return Result{
			Response: panicApology,
			Success:  false,
			Error: &model.WorkflowError{
				Kind:        kind,
				Message:     err.Error(),
				Node:        "orchestrator",
				Recoverable: kind.Recoverable(),
			},
		}
	}

	result = Result{
		Response: out.FinalOutput,
		Metadata: out.Metadata,
		Success:  out.Complete && out.LastError == nil,
		Error:    out.LastError,
	}

	if err := o.manager.RecordAssistant(ctx, sessionID, out.FinalOutput); err != nil {
		logx.Warn().Str("session_id", sessionID).Err(err).Msg("Failed to record assistant turn")
	}
	return result
}

// ConversationHistory returns the ordered turn history for a session.
func (o *Orchestrator) ConversationHistory(ctx context.Context, sessionID string) ([]model.Turn, error) {
	return o.manager.History(ctx, sessionID)
}

// UpdatePreferences merges a partial preferences update into session data.
func (o *Orchestrator) UpdatePreferences(ctx context.Context, sessionID string, update model.Preferences) error {
	return o.manager.MergePreferences(ctx, sessionID, update)
}

// Preferences returns the session's current preference record.
func (o *Orchestrator) Preferences(ctx context.Context, sessionID string) (model.Preferences, error) {
	return o.manager.Preferences(ctx, sessionID)
}

func timeSeed() int64 {
	return time.Now().UnixNano()
}

type graphDeps struct {
	chat      llm.ChatCompleter
	image     llm.ImageClient
	engine    *persona.Engine
	knowledge *knowledge.Base
	manager   *conversations.Manager
	workflow  model.WorkflowConfig
}

// graphBuilder assembles the workflow graph node by node.
type graphBuilder struct {
	deps  *graphDeps
	graph *compose.Graph[*model.WorkflowState, *model.WorkflowState]
}

func buildGraph(ctx context.Context, deps *graphDeps) (compose.Runnable[*model.WorkflowState, *model.WorkflowState], error) {
	b := &graphBuilder{
		deps:  deps,
		graph: compose.NewGraph[*model.WorkflowState, *model.WorkflowState](),
	}

	b.addNodes()
	b.addEdges()

	if err := b.addBranches(); err != nil {
		return nil, err
	}

	return b.compile(ctx)
}

func (b *graphBuilder) addNodes() {
	b.graph.AddLambdaNode(nodes.NodeInputProcessor, nodes.Run(nodes.NewInputProcessor()))
	b.graph.AddLambdaNode(nodes.NodePersonalityFilter, nodes.Run(nodes.NewPersonalityFilter(b.deps.engine)))
	b.graph.AddLambdaNode(nodes.NodeContentRouter, nodes.Run(nodes.NewContentRouter()))
	b.graph.AddLambdaNode(nodes.NodeResponseGenerator, nodes.Run(nodes.NewResponseGenerator(b.deps.chat, b.deps.engine, b.deps.knowledge, b.deps.manager)))
	b.graph.AddLambdaNode(nodes.NodeImageGenerator, nodes.Run(nodes.NewImageGenerator(b.deps.image, b.deps.engine)))
	b.graph.AddLambdaNode(nodes.NodeQualityValidator, nodes.Run(nodes.NewQualityValidator()))
	b.graph.AddLambdaNode(nodes.NodeOutputFormatter, nodes.Run(nodes.NewOutputFormatter()))
}

func (b *graphBuilder) addEdges() {
	edges := [][2]string{
		{compose.START, nodes.NodeInputProcessor},
		{nodes.NodeInputProcessor, nodes.NodePersonalityFilter},
		{nodes.NodePersonalityFilter, nodes.NodeContentRouter},
		{nodes.NodeResponseGenerator, nodes.NodeQualityValidator},
		{nodes.NodeImageGenerator, nodes.NodeOutputFormatter},
		{nodes.NodeOutputFormatter, compose.END},
	}

	for _, edge := range edges {
		b.graph.AddEdge(edge[0], edge[1])
	}
}

func (b *graphBuilder) addBranches() error {
	routeBranch := compose.NewGraphBranch(
		nodes.NewRouteCondition(),
		map[string]bool{
			nodes.NodeResponseGenerator: true,
			nodes.NodeImageGenerator:    true,
			nodes.NodeOutputFormatter:   true,
		},
	)
	if err := b.graph.AddBranch(nodes.NodeContentRouter, routeBranch); err != nil {
		logx.Error().Err(err).Msg("Error adding route branch")
		return fmt.Errorf("error adding route branch: %w", err)
	}

	qualityBranch := compose.NewGraphBranch(
		nodes.NewVerdictCondition(),
		map[string]bool{
			nodes.NodeResponseGenerator: true,
			nodes.NodeOutputFormatter:   true,
		},
	)
	if err := b.graph.AddBranch(nodes.NodeQualityValidator, qualityBranch); err != nil {
		logx.Error().Err(err).Msg("Error adding quality branch")
		return fmt.Errorf("error adding quality branch: %w", err)
	}

	return nil
}

func (b *graphBuilder) compile(ctx context.Context) (compose.Runnable[*model.WorkflowState, *model.WorkflowState], error) {
	// Each regeneration cycle revisits two nodes; bound total steps so the
	// loop can never spin past its budget even with a wiring bug.
	maxSteps := 10 + b.deps.workflow.MaxRegenerationAttempts*2
	if maxSteps < 20 {
		maxSteps = 20
	}

	runnable, err := b.graph.Compile(ctx, compose.WithMaxRunSteps(maxSteps))
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling graph")
		return nil, fmt.Errorf("error compiling graph: %w", err)
	}

	logx.Debug().Msg("Graph compiled successfully")
	return runnable, nil
}
