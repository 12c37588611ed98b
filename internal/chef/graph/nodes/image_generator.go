package nodes

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/shneydor/jeff-the-langgraph-chef/internal/chef/llm"
	"github.com/shneydor/jeff-the-langgraph-chef/internal/chef/model"
	"github.com/shneydor/jeff-the-langgraph-chef/internal/chef/persona"
	logx "github.com/shneydor/jeff-the-langgraph-chef/pkg/logger"
)

var styleModifiers = map[model.ImageStyle]string{
	model.StyleFoodPhotography: "Professional food photography with dramatic lighting and appetizing presentation",
	model.StyleRomanticDinner:  "Intimate candlelit dinner setting with warm lighting and elegant table setting",
	model.StyleRusticKitchen:   "Cozy rustic kitchen with wooden surfaces and homey atmosphere",
	model.StyleElegantPlating:  "Fine dining presentation with artistic plating and sophisticated composition",
	model.StyleCookingProcess:  "Action shot of cooking in progress with dynamic movement and steam",
	model.StyleIngredientFocus: "Close-up macro photography highlighting ingredient textures and colors",
	model.StyleRestaurant:      "Professional restaurant kitchen or dining environment",
}

var tomatoIntegrationPhrases = []string{
	"Include beautiful ripe tomatoes as a prominent element",
	"Feature gorgeous tomatoes in the composition",
	"Showcase the romantic beauty of fresh tomatoes",
	"Highlight the passionate red color of tomatoes",
	"Include tomatoes as the star ingredient",
}

var romanticImageElements = []string{
	"Warm, inviting lighting that creates a romantic atmosphere",
	"Soft, dreamy focus with romantic ambiance",
	"Passionate colors and intimate composition",
	"Elegant presentation worthy of a love story",
	"Enchanting details that tell a romantic culinary tale",
}

var imageCommentaries = []string{
	"Ah, feast your eyes on this culinary poetry! Every pixel sings with the passion of the kitchen!",
	"My heart flutters at this vision of deliciousness! Can you smell the romance through the screen?",
	"This, my darlings, is what love looks like when it takes edible form!",
	"I could gaze at this masterpiece all day... though I'd rather be cooking it!",
}

// ImageGenerator handles image-category requests: validates the request,
// builds a style and motif conditioned prompt and calls the image
// collaborator. A billing or quota failure substitutes a locally synthesized
// placeholder instead of failing the run; the fallback is flagged in the
// artifact so callers can tell it apart from a real image.
type ImageGenerator struct {
	client llm.ImageClient
	engine *persona.Engine
}

func NewImageGenerator(client llm.ImageClient, engine *persona.Engine) *ImageGenerator {
	return &ImageGenerator{client: client, engine: engine}
}

func (n *ImageGenerator) Name() string { return NodeImageGenerator }

func (n *ImageGenerator) Transform(ctx context.Context, st *model.WorkflowState) error {
	includeTomatoes := st.Persona.Dimensions.TomatoObsession >= 6
	req, err := model.NewImageRequest(st.Entities.ImageDescription, st.Entities.ImageStyle, includeTomatoes, st.SessionID)
	if err != nil {
		return err
	}

	prompt := n.buildPrompt(req, st.Persona)
	started := time.Now()

	artifact := &model.ImageArtifact{
		Request:    req,
		PromptUsed: prompt,
	}

	data, genErr := n.client.Generate(ctx, prompt)
	switch {
	case genErr == nil:
		artifact.Success = true
		artifact.ImageBase64 = base64.StdEncoding.EncodeToString(data)

	case llm.IsBillingError(genErr):
		// Keep demos functional without a funded account: substitute a local
		// placeholder and mark it so the caller is not misled.
		logx.Warn().
			Str("session_id", st.SessionID).
			Err(genErr).
			Msg("Billing error from image API, substituting demo placeholder")
		artifact.Success = true
		artifact.DemoFallback = true
		artifact.ImageBase64 = base64.StdEncoding.EncodeToString(llm.DemoImagePNG())

	default:
		artifact.ErrorMessage = genErr.Error()
		artifact.GenerationTime = time.Since(started)
		st.Image = artifact
		return genErr
	}

	artifact.GenerationTime = time.Since(started)
	artifact.Commentary = n.engine.Commentary(st.Persona, n.engine.Pick(imageCommentaries))
	st.Image = artifact

	logx.Debug().
		Str("session_id", st.SessionID).
		Str("style", string(req.Style)).
		Bool("demo_fallback", artifact.DemoFallback).
		Dur("generation_time", artifact.GenerationTime).
		Msg("Image generated")

	st.AdvanceStage(model.StageOutputFormatted)
	return nil
}

func (n *ImageGenerator) buildPrompt(req model.ImageRequest, p model.PersonaState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a beautiful, appetizing image of %s. ", req.Description)
	fmt.Fprintf(&b, "Style: %s. ", styleModifiers[req.Style])
	if req.IncludeTomatoes {
		b.WriteString(n.engine.Pick(tomatoIntegrationPhrases) + ". ")
	}
	if p.Dimensions.RomanticIntensity >= 6 {
		b.WriteString(n.engine.Pick(romanticImageElements) + ". ")
	}
	b.WriteString("Professional food photography quality, well-lit, appetizing composition.")
	return b.String()
}
