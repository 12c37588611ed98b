package graph

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shneydor/jeff-the-langgraph-chef/internal/chef/model"
	"github.com/shneydor/jeff-the-langgraph-chef/internal/chef/repo"
	errx "github.com/shneydor/jeff-the-langgraph-chef/internal/core/error"
)

// fakeChat counts invocations and replies with a fixed draft, or fails when
// err is set.
type fakeChat struct {
	mu    sync.Mutex
	calls int
	reply string
	err   error
}

func (f *fakeChat) Complete(_ context.Context, _ []*schema.Message) (*schema.Message, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return schema.AssistantMessage(f.reply, nil), nil
}

func (f *fakeChat) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeImage struct {
	data []byte
	err  error
}

func (f *fakeImage) Generate(_ context.Context, _ string) ([]byte, error) {
	return f.data, f.err
}

const richDraft = "My darling, I love this tomato recipe! The ruby red sauce whispers to the heart " +
	"and soul, a beautiful dance of flavor and passion. *imagine the embrace of fresh ingredients*"

func newTestOrchestrator(t *testing.T, chat *fakeChat, image *fakeImage, mutate func(*Config)) *Orchestrator {
	t.Helper()

	cfg := Config{
		Workflow:   model.DefaultWorkflowConfig(),
		Session:    model.SessionConfig{TTL: "15m", MaxTurns: 10},
		Dimensions: model.DefaultPersonaDimensions(),
		Seed:       42,
		Sessions:   repo.NewMemorySessionRepository(),
	}
	if mutate != nil {
		mutate(&cfg)
	}

	o, err := NewWithCollaborators(context.Background(), cfg, chat, image)
	require.NoError(t, err)
	return o
}

func TestProcessSuccessfulRecipeRun(t *testing.T) {
	chat := &fakeChat{reply: richDraft}
	o := newTestOrchestrator(t, chat, &fakeImage{}, func(c *Config) {
		c.Workflow.QualityThreshold = 0.0
	})

	result := o.Process(context.Background(), "recipe for pasta with tomatoes", "s1", nil)

	assert.True(t, result.Success)
	assert.Nil(t, result.Error)
	assert.NotEmpty(t, result.Response)
	assert.Contains(t, result.Response, "Chef Jeff")
	assert.Equal(t, model.ContentRecipeRequest, result.Metadata.ContentType)
	assert.Zero(t, result.Metadata.RegenerationCount)
	assert.Equal(t, 1, chat.callCount())
}

func TestProcessRecordsConversationTurns(t *testing.T) {
	chat := &fakeChat{reply: richDraft}
	o := newTestOrchestrator(t, chat, &fakeImage{}, func(c *Config) {
		c.Workflow.QualityThreshold = 0.0
	})

	o.Process(context.Background(), "recipe for pasta with tomatoes", "s1", nil)

	history, err := o.ConversationHistory(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, model.RoleUser, history[0].Role)
	assert.Equal(t, "recipe for pasta with tomatoes", history[0].Content)
	assert.Equal(t, model.RoleAssistant, history[1].Role)
}

func TestProcessQualityExhaustionIsDegradedSuccess(t *testing.T) {
	chat := &fakeChat{reply: "bland text"}
	maxAttempts := 3
	o := newTestOrchestrator(t, chat, &fakeImage{}, func(c *Config) {
		c.Workflow.QualityThreshold = 1.5 // unreachable
		c.Workflow.MaxRegenerationAttempts = maxAttempts
	})

	result := o.Process(context.Background(), "recipe for pasta with tomatoes", "s1", nil)

	assert.True(t, result.Success)
	assert.NotEmpty(t, result.Response)
	assert.Equal(t, maxAttempts, result.Metadata.RegenerationCount)
	// The generation stage runs once initially plus once per regeneration.
	assert.Equal(t, maxAttempts+1, chat.callCount())
}

func TestProcessChatFailureIsContained(t *testing.T) {
	chat := &fakeChat{err: errors.New("connection refused by upstream")}
	o := newTestOrchestrator(t, chat, &fakeImage{}, nil)

	result := o.Process(context.Background(), "recipe for pasta with tomatoes", "s1", nil)

	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Response)
	require.NotNil(t, result.Error)
	assert.Equal(t, "response_generator", result.Error.Node)
	assert.Equal(t, errx.KindConnection, result.Error.Kind)
	assert.True(t, result.Error.Recoverable)
	// Only one attempt: the error path skips the quality gate entirely.
	assert.Equal(t, 1, chat.callCount())
}

func TestProcessTimeoutClassifiedRecoverable(t *testing.T) {
	chat := &fakeChat{err: errx.Timeout(context.DeadlineExceeded, "chat model call timed out")}
	o := newTestOrchestrator(t, chat, &fakeImage{}, nil)

	result := o.Process(context.Background(), "recipe for soup", "s1", nil)

	assert.False(t, result.Success)
	require.NotNil(t, result.Error)
	assert.Equal(t, errx.KindTimeout, result.Error.Kind)
	assert.True(t, result.Error.Recoverable)
}

func TestProcessImageBillingFallback(t *testing.T) {
	image := &fakeImage{err: fmt.Errorf("this API is only accessible to billed users")}
	o := newTestOrchestrator(t, &fakeChat{reply: richDraft}, image, nil)

	result := o.Process(context.Background(), "create an image of romantic pasta with tomatoes", "s1", nil)

	assert.True(t, result.Success)
	assert.NotEmpty(t, result.Response)
	require.NotNil(t, result.Metadata.Image)
	assert.True(t, result.Metadata.Image.Success)
	assert.True(t, result.Metadata.Image.DemoFallback)
	assert.Equal(t, model.StyleRomanticDinner, result.Metadata.Image.Style)
}

func TestProcessImageSuccess(t *testing.T) {
	image := &fakeImage{data: []byte{0x89, 0x50, 0x4e, 0x47}}
	o := newTestOrchestrator(t, &fakeChat{reply: richDraft}, image, nil)

	result := o.Process(context.Background(), "picture of a rustic loaf of bread", "s1", nil)

	assert.True(t, result.Success)
	require.NotNil(t, result.Metadata.Image)
	assert.True(t, result.Metadata.Image.Success)
	assert.False(t, result.Metadata.Image.DemoFallback)
	assert.Equal(t, model.StyleRusticKitchen, result.Metadata.Image.Style)
	assert.Equal(t, model.ContentImageRequest, result.Metadata.ContentType)
}

func TestProcessImageHardFailureIsContained(t *testing.T) {
	image := &fakeImage{err: errors.New("invalid prompt rejected by api")}
	o := newTestOrchestrator(t, &fakeChat{reply: richDraft}, image, nil)

	result := o.Process(context.Background(), "picture of a loaf of bread", "s1", nil)

	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Response)
	require.NotNil(t, result.Error)
	assert.Equal(t, "image_generator", result.Error.Node)
}

func TestProcessCompletionPostcondition(t *testing.T) {
	inputs := []string{
		"recipe for pasta with tomatoes",
		"hello",
		"how long should i cook chicken",
		"create an image of soup",
	}
	o := newTestOrchestrator(t, &fakeChat{reply: richDraft}, &fakeImage{data: []byte{1}}, func(c *Config) {
		c.Workflow.QualityThreshold = 0.0
	})

	for _, input := range inputs {
		result := o.Process(context.Background(), input, "s1", nil)
		assert.NotEmpty(t, result.Response, "input %q", input)
	}
}

func TestProcessInvalidDimensionsRejectedAtConstruction(t *testing.T) {
	cfg := Config{
		Workflow:   model.DefaultWorkflowConfig(),
		Session:    model.SessionConfig{TTL: "15m", MaxTurns: 10},
		Dimensions: model.PersonaDimensions{TomatoObsession: 99, RomanticIntensity: 8, EnergyLevel: 7, CreativityMultiplier: 1.5, ProfessionalAdaptation: 0.5},
		Sessions:   repo.NewMemorySessionRepository(),
	}

	_, err := NewWithCollaborators(context.Background(), cfg, &fakeChat{}, &fakeImage{})
	require.Error(t, err)

	var appErr *errx.AppError
	assert.ErrorAs(t, err, &appErr)
}

func TestUpdateAndReadPreferences(t *testing.T) {
	o := newTestOrchestrator(t, &fakeChat{reply: richDraft}, &fakeImage{}, nil)
	ctx := context.Background()

	require.NoError(t, o.UpdatePreferences(ctx, "s1", model.Preferences{DietaryRestrictions: []string{"vegan"}}))
	require.NoError(t, o.UpdatePreferences(ctx, "s1", model.Preferences{SkillLevel: "advanced"}))

	prefs, err := o.Preferences(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"vegan"}, prefs.DietaryRestrictions)
	assert.Equal(t, "advanced", prefs.SkillLevel)
}
