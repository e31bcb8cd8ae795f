package executor

import (
	"context"
	"fmt"

	"leave-agent/internal/application/port/input"
	"leave-agent/internal/application/port/output"
	"leave-agent/internal/application/service"
	"leave-agent/internal/domain/entity"

	"golang.org/x/time/rate"
)

var _ input.TaskExecutor = (*Usecase)(nil)

const (
	// maxIterations bounds one user turn; the model either answers or the
	// turn is aborted.
	maxIterations = 50
	// maxObservationLen caps a single tool observation before it enters the
	// conversation, keeping page dumps from flooding the context window.
	maxObservationLen = 20_000

	temperature = 0.0
)

type Deps struct {
	LLM      output.LLMPort
	Registry output.ToolRegistry
	Store    *service.ConversationStore
	Logger   output.LoggerPort

	// Limiter throttles LLM calls. Nil disables throttling.
	Limiter *rate.Limiter
	// SystemPrompt seeds new threads. Empty means no system message.
	SystemPrompt string
	// OnChunk, when set, switches the LLM calls to streaming and receives
	// each content fragment as it arrives.
	OnChunk func(output.StreamChunk)
}

// Usecase drives the chat loop: ask the model, run the tools it requests,
// feed the observations back, repeat until the model answers in plain text.
type Usecase struct {
	deps Deps
}

func NewUsecase(deps Deps) *Usecase {
	return &Usecase{deps: deps}
}

func (u *Usecase) Execute(ctx context.Context, threadID, task string) (*input.ExecuteResult, error) {
	log := u.deps.Logger.WithField("thread_id", threadID)

	messages := u.deps.Store.History(threadID)
	if len(messages) == 0 && u.deps.SystemPrompt != "" {
		messages = append(messages, entity.Message{
			Role:    entity.RoleSystem,
			Content: u.deps.SystemPrompt,
		})
	}
	messages = append(messages, entity.Message{
		Role:    entity.RoleUser,
		Content: task,
	})

	tools := u.deps.Registry.Definitions()

	for iteration := 1; iteration <= maxIterations; iteration++ {
		if u.deps.Limiter != nil {
			if err := u.deps.Limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("rate limiter interrupted: %w", err)
			}
		}

		resp, err := u.chat(ctx, output.ChatRequest{
			Messages:    messages,
			Tools:       tools,
			Temperature: temperature,
		})
		if err != nil {
			return nil, fmt.Errorf("iteration %d: %w", iteration, err)
		}

		messages = append(messages, resp.Message)
		u.deps.Store.Save(threadID, messages)

		if len(resp.Message.ToolCalls) == 0 {
			log.Info("task finished", "iterations", iteration)
			return &input.ExecuteResult{
				FinalAnswer: resp.Message.Content,
				Iterations:  iteration,
			}, nil
		}

		for _, call := range resp.Message.ToolCalls {
			observation := u.runTool(ctx, log, call)
			messages = append(messages, entity.Message{
				Role:       entity.RoleTool,
				Content:    observation,
				ToolCallID: call.ID,
				Name:       call.Name,
			})
		}
		u.deps.Store.Save(threadID, messages)
	}

	return nil, fmt.Errorf("no final answer after %d iterations", maxIterations)
}

func (u *Usecase) chat(ctx context.Context, req output.ChatRequest) (*output.ChatResponse, error) {
	if u.deps.OnChunk != nil {
		return u.deps.LLM.ChatStream(ctx, req, u.deps.OnChunk)
	}
	return u.deps.LLM.Chat(ctx, req)
}

// runTool executes one tool call and always returns an observation string.
// Tool failures become "Error: ..." observations so the model can react
// instead of the whole turn aborting.
func (u *Usecase) runTool(ctx context.Context, log output.LoggerPort, call entity.ToolCall) string {
	tool, ok := u.deps.Registry.Get(entity.ToolName(call.Name))
	if !ok {
		log.Warn("model requested unknown tool", "tool", call.Name)
		return fmt.Sprintf("Error: unknown tool '%s'", call.Name)
	}

	log.Debug("executing tool", "tool", call.Name, "arguments", call.Arguments)
	result, err := tool.Execute(ctx, call.Arguments)
	if err != nil {
		log.Warn("tool failed", "tool", call.Name, "error", err)
		return truncateObservation("Error: " + err.Error())
	}
	return truncateObservation(result)
}

func truncateObservation(s string) string {
	if len(s) <= maxObservationLen {
		return s
	}
	return s[:maxObservationLen] + "\n... (truncated)"
}
