package nodes

import (
	"context"
	"strings"

	"github.com/shneydor/jeff-the-langgraph-chef/internal/chef/model"
	logx "github.com/shneydor/jeff-the-langgraph-chef/pkg/logger"
)

const (
	lostResponseFallback = "Oh my darling, it seems my response got lost in the kitchen!"
	chefSignature        = "\n\n*With culinary love,*\n*Chef Jeff* \U0001F345❤️"
)

// OutputFormatter selects the best available content, applies presentation
// preferences, assembles the output metadata and marks the state complete. It
// must always produce text, even from an all-failed run.
type OutputFormatter struct{}

func NewOutputFormatter() *OutputFormatter { return &OutputFormatter{} }

func (n *OutputFormatter) Name() string { return NodeOutputFormatter }

func (n *OutputFormatter) Transform(_ context.Context, st *model.WorkflowState) error {
	content := selectContent(st)

	if st.Format.IncludeSignature {
		content += chefSignature
	}

	st.Metadata = buildMetadata(st)
	st.Finalize(content)

	logx.Debug().
		Str("session_id", st.SessionID).
		Str("content_type", string(st.ContentType)).
		Dur("duration", st.Metadata.Duration).
		Msg("Output formatted")

	return nil
}

// selectContent applies the fixed precedence: selected variation, then raw
// generated content, then image commentary, then the apologetic fallback.
func selectContent(st *model.WorkflowState) string {
	if strings.TrimSpace(st.SelectedVariation) != "" {
		return st.SelectedVariation
	}
	if strings.TrimSpace(st.GeneratedContent) != "" {
		return st.GeneratedContent
	}
	if st.Image != nil && strings.TrimSpace(st.Image.Commentary) != "" {
		return st.Image.Commentary
	}
	return lostResponseFallback
}

func buildMetadata(st *model.WorkflowState) model.OutputMetadata {
	md := model.OutputMetadata{
		GeneratedAt:       st.CreatedAt,
		Duration:          st.Elapsed(),
		ContentType:       st.ContentType,
		Mood:              st.Persona.CurrentMood,
		RegenerationCount: st.RegenerationCount,
	}
	if latest := st.LatestQuality(); latest != nil {
		md.QualityScore = latest.Score
		md.PersonaConsistency = latest.PersonaConsistency
		md.TomatoIntegration = latest.TomatoIntegration
		md.RomanticElements = latest.RomanticElements
	}
	if st.Image != nil {
		md.Image = &model.ImageMetadata{
			Success:        st.Image.Success,
			DemoFallback:   st.Image.DemoFallback,
			Style:          st.Image.Request.Style,
			GenerationTime: st.Image.GenerationTime,
			TomatoesShown:  st.Image.Request.IncludeTomatoes,
		}
	}
	return md
}
