package nodes

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/shneydor/jeff-the-langgraph-chef/internal/chef/conversations"
	"github.com/shneydor/jeff-the-langgraph-chef/internal/chef/knowledge"
	"github.com/shneydor/jeff-the-langgraph-chef/internal/chef/llm"
	"github.com/shneydor/jeff-the-langgraph-chef/internal/chef/model"
	"github.com/shneydor/jeff-the-langgraph-chef/internal/chef/persona"
	"github.com/shneydor/jeff-the-langgraph-chef/internal/chef/prompts"
	logx "github.com/shneydor/jeff-the-langgraph-chef/pkg/logger"
)

const emptyDraftFallback = "Oh my stars! My culinary inspiration seems to have taken a little break, but I'm here and ready to help you with anything food-related!"

// ResponseGenerator produces the draft answer: renders the persona system
// prompt, pulls conversation history, calls the chat model, then applies the
// flag-gated persona transformations in fixed order. Romantic rewriting runs
// before tomato integration; the motif check inspects the already-rewritten
// text.
type ResponseGenerator struct {
	chat         llm.ChatCompleter
	engine       *persona.Engine
	knowledgeTab *knowledge.Base
	manager      *conversations.Manager
}

func NewResponseGenerator(chat llm.ChatCompleter, engine *persona.Engine, kb *knowledge.Base, manager *conversations.Manager) *ResponseGenerator {
	return &ResponseGenerator{
		chat:         chat,
		engine:       engine,
		knowledgeTab: kb,
		manager:      manager,
	}
}

func (n *ResponseGenerator) Name() string { return NodeResponseGenerator }

func (n *ResponseGenerator) Transform(ctx context.Context, st *model.WorkflowState) error {
	if st.Routing.RequiresKnowledge {
		names := append([]string{}, st.Entities.Ingredients...)
		names = append(names, st.Entities.Techniques...)
		st.KnowledgeNotes = n.knowledgeTab.Notes(names)
	}

	draft, err := n.generateDraft(ctx, st)
	if err != nil {
		return err
	}

	enhanced := n.applyEnhancements(draft, st)

	st.GeneratedContent = enhanced
	st.Variations = append(st.Variations, enhanced)
	st.SelectedVariation = enhanced

	st.AdvanceStage(model.StageQualityChecked)
	return nil
}

func (n *ResponseGenerator) generateDraft(ctx context.Context, st *model.WorkflowState) (string, error) {
	systemPrompt, err := prompts.RenderPersonaSystem(ctx, st.Persona, st.ContentType, st.KnowledgeNotes)
	if err != nil {
		return "", fmt.Errorf("render persona prompt: %w", err)
	}

	messages, err := n.manager.BuildContext(ctx, st.SessionID, systemPrompt)
	if err != nil {
		return "", fmt.Errorf("build conversation context: %w", err)
	}
	messages = append(messages, schema.UserMessage(prompts.UserPromptWithContext(st.ProcessedInput, st.Entities)))

	logx.Debug().
		Str("session_id", st.SessionID).
		Int("message_count", len(messages)).
		Int("regeneration_count", st.RegenerationCount).
		Msg("Requesting draft from chat model")

	out, err := n.chat.Complete(ctx, messages)
	if err != nil {
		return "", err
	}
	if out == nil || strings.TrimSpace(out.Content) == "" {
		return emptyDraftFallback, nil
	}
	return out.Content, nil
}

func (n *ResponseGenerator) applyEnhancements(draft string, st *model.WorkflowState) string {
	enhanced := draft
	if enhanced == "" {
		enhanced = emptyDraftFallback
	}

	if st.Flags.ApplyRomanticWriting {
		enhanced = n.engine.ApplyRomanticStyle(enhanced, st.Persona)
	}
	if st.Flags.IntegrateTomatoes {
		enhanced = n.engine.IntegrateTomatoMotif(enhanced, st.Persona.Dimensions)
	}
	return enhanced
}
