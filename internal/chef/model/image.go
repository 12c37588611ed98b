package model

import (
	"fmt"
	"strings"
	"time"

	errx "github.com/shneydor/jeff-the-langgraph-chef/internal/core/error"
)

// ImageStyle is the closed set of image generation styles.
type ImageStyle string

const (
	StyleFoodPhotography ImageStyle = "food_photography"
	StyleRomanticDinner  ImageStyle = "romantic_dinner"
	StyleRusticKitchen   ImageStyle = "rustic_kitchen"
	StyleElegantPlating  ImageStyle = "elegant_plating"
	StyleCookingProcess  ImageStyle = "cooking_process"
	StyleIngredientFocus ImageStyle = "ingredient_focus"
	StyleRestaurant      ImageStyle = "restaurant_style"
)

// ParseImageStyle normalises a raw style value; ok is false for unknown styles.
func ParseImageStyle(v string) (ImageStyle, bool) {
	s := ImageStyle(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(v)), " ", "_"))
	switch s {
	case StyleFoodPhotography, StyleRomanticDinner, StyleRusticKitchen,
		StyleElegantPlating, StyleCookingProcess, StyleIngredientFocus, StyleRestaurant:
		return s, true
	}
	return "", false
}

const maxImageDescriptionLen = 500

// ImageRequest describes one image to generate. Construct through
// NewImageRequest so validation happens before any stage runs.
type ImageRequest struct {
	Description     string     `json:"description"`
	Style           ImageStyle `json:"style"`
	IncludeTomatoes bool       `json:"include_tomatoes"`
	SessionID       string     `json:"session_id,omitempty"`
}

// NewImageRequest validates and builds an image request. An empty style
// defaults to food photography.
func NewImageRequest(description string, style ImageStyle, includeTomatoes bool, sessionID string) (ImageRequest, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return ImageRequest{}, errx.Validation("image description cannot be empty")
	}
	if len(description) > maxImageDescriptionLen {
		return ImageRequest{}, errx.Validation(fmt.Sprintf("image description too long (max %d characters)", maxImageDescriptionLen))
	}
	if style == "" {
		style = StyleFoodPhotography
	} else if _, ok := ParseImageStyle(string(style)); !ok {
		return ImageRequest{}, errx.Validation(fmt.Sprintf("unknown image style %q", style))
	}
	return ImageRequest{
		Description:     description,
		Style:           style,
		IncludeTomatoes: includeTomatoes,
		SessionID:       sessionID,
	}, nil
}

// ImageArtifact is the nested request/response pair stored on the workflow
// state for image runs.
type ImageArtifact struct {
	Request        ImageRequest  `json:"request"`
	Success        bool          `json:"success"`
	ImageBase64    string        `json:"image_base64,omitempty"`
	PromptUsed     string        `json:"prompt_used"`
	GenerationTime time.Duration `json:"generation_time"`
	Commentary     string        `json:"commentary"`
	DemoFallback   bool          `json:"demo_fallback"`
	ErrorMessage   string        `json:"error_message,omitempty"`
}
