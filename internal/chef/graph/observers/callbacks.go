// Package observers wires eino callback handlers onto graph invocations for
// node-level observability.
package observers

import (
	"context"

	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components/prompt"
	callbackHelper "github.com/cloudwego/eino/utils/callbacks"

	logx "github.com/shneydor/jeff-the-langgraph-chef/pkg/logger"
)

// NewWorkflowCallbacks aggregates the node and prompt handlers into one
// callbacks.Handler attached per invocation.
func NewWorkflowCallbacks() []einocb.Handler {
	return []einocb.Handler{
		newNodeHandler(),
		callbackHelper.NewHandlerHelper().
			Prompt(newPromptHandler()).
			Handler(),
	}
}

// newNodeHandler logs every graph component's start, end and error. The
// stages are lambda nodes, so the generic handler is the one that sees them.
func newNodeHandler() einocb.Handler {
	return einocb.NewHandlerBuilder().
		OnStartFn(func(ctx context.Context, info *einocb.RunInfo, _ einocb.CallbackInput) context.Context {
			if info != nil {
				logx.Debug().
					Str("component", string(info.Component)).
					Str("node", info.Name).
					Msg("Node start")
			}
			return ctx
		}).
		OnEndFn(func(ctx context.Context, info *einocb.RunInfo, _ einocb.CallbackOutput) context.Context {
			if info != nil {
				logx.Debug().
					Str("component", string(info.Component)).
					Str("node", info.Name).
					Msg("Node end")
			}
			return ctx
		}).
		OnErrorFn(func(ctx context.Context, info *einocb.RunInfo, err error) context.Context {
			if info != nil {
				logx.Error().
					Err(err).
					Str("component", string(info.Component)).
					Str("node", info.Name).
					Msg("Node error")
			}
			return ctx
		}).
		Build()
}

// newPromptHandler logs rendered persona prompts.
func newPromptHandler() *callbackHelper.PromptCallbackHandler {
	return &callbackHelper.PromptCallbackHandler{
		OnEnd: func(ctx context.Context, info *einocb.RunInfo, output *prompt.CallbackOutput) context.Context {
			if output != nil && len(output.Result) > 0 && output.Result[0] != nil {
				logx.Debug().
					Int("rendered_len", len(output.Result[0].Content)).
					Msg("Prompt rendered")
			}
			return ctx
		},
		OnError: func(ctx context.Context, info *einocb.RunInfo, err error) context.Context {
			logx.Error().Err(err).Msg("Prompt render error")
			return ctx
		},
	}
}
