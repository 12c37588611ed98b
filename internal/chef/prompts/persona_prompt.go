package prompts

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/shneydor/jeff-the-langgraph-chef/internal/chef/model"
)

//go:embed template/persona_prompt.txt
var personaSystemPrompt string

// contentGuidance adds category-specific instructions to the system prompt.
func contentGuidance(contentType model.ContentType) string {
	switch contentType {
	case model.ContentRecipeRequest:
		return "\n- Focus on creating detailed, romantic recipe narratives\n- Describe cooking as a love story"
	case model.ContentCookingQuestion, model.ContentTechniqueQuestion:
		return "\n- Provide technical expertise with passionate delivery\n- Include personal anecdotes and tips"
	case model.ContentIngredientInquiry:
		return "\n- Share deep knowledge about ingredients with romantic descriptions\n- Suggest tomato pairings when appropriate"
	default:
		return ""
	}
}

// RenderPersonaSystem renders Jeff's system prompt for the current persona
// and request, through the Eino prompt component so prompt callbacks fire.
func RenderPersonaSystem(ctx context.Context, p model.PersonaState, contentType model.ContentType, knowledgeNotes []string) (string, error) {
	knowledgeSection := ""
	if len(knowledgeNotes) > 0 {
		knowledgeSection = "\n\nKNOWLEDGE BASE NOTES:\n- " + strings.Join(knowledgeNotes, "\n- ")
	}

	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(personaSystemPrompt),
	)
	vars := map[string]any{
		"TomatoObsession":   p.Dimensions.TomatoObsession,
		"RomanticIntensity": p.Dimensions.RomanticIntensity,
		"EnergyLevel":       p.Dimensions.EnergyLevel,
		"CurrentMood":       string(p.CurrentMood),
		"ContentGuidance":   contentGuidance(contentType),
		"KnowledgeSection":  knowledgeSection,
	}
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return "", fmt.Errorf("persona prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("persona prompt render: empty result")
	}
	return msgs[0].Content, nil
}

// UserPromptWithContext appends extracted-entity context to the user input
// so the model sees what the classifier saw.
func UserPromptWithContext(input string, entities model.Entities) string {
	additions := []string{}
	if len(entities.Ingredients) > 0 {
		additions = append(additions, "Ingredients mentioned: "+strings.Join(entities.Ingredients, ", "))
	}
	if len(entities.Techniques) > 0 {
		additions = append(additions, "Techniques mentioned: "+strings.Join(entities.Techniques, ", "))
	}
	if len(entities.Dietary) > 0 {
		additions = append(additions, "Dietary considerations: "+strings.Join(entities.Dietary, ", "))
	}
	if len(additions) == 0 {
		return input
	}
	return input + "\n\nContext: " + strings.Join(additions, " | ")
}
