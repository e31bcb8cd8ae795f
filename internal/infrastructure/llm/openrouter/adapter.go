package openrouter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"leave-agent/internal/application/port/output"
	"leave-agent/internal/domain/entity"

	openai "github.com/sashabaranov/go-openai"
)

var _ output.LLMPort = (*Adapter)(nil)

const defaultBaseURL = "https://openrouter.ai/api/v1"

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Adapter talks to OpenRouter through its OpenAI-compatible chat API.
type Adapter struct {
	client *openai.Client
	model  string
	logger output.LoggerPort
}

func New(cfg Config, logger output.LoggerPort) (*Adapter, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter: API key is required")
	}
	if cfg.Model == "" {
		return nil, errors.New("openrouter: model name is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL

	return &Adapter{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		logger: logger,
	}, nil
}

func (a *Adapter) Chat(ctx context.Context, req output.ChatRequest) (*output.ChatResponse, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		Messages:    convertMessages(req.Messages),
		Tools:       convertTools(req.Tools),
		Temperature: req.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("chat completion returned no choices")
	}

	msg := fromAPIMessage(resp.Choices[0].Message)
	a.logger.Debug("chat completion",
		"model", a.model,
		"tool_calls", len(msg.ToolCalls),
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
	)
	return &output.ChatResponse{Message: msg}, nil
}

func (a *Adapter) ChatStream(ctx context.Context, req output.ChatRequest, onChunk func(output.StreamChunk)) (*output.ChatResponse, error) {
	stream, err := a.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		Messages:    convertMessages(req.Messages),
		Tools:       convertTools(req.Tools),
		Temperature: req.Temperature,
		Stream:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("chat stream failed: %w", err)
	}
	defer stream.Close()

	var content string
	// Tool-call arguments arrive in fragments keyed by index.
	calls := map[int]*entity.ToolCall{}

	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("chat stream read failed: %w", err)
		}
		if len(chunk.Choices) == 0 {
			continue
		}

		delta := chunk.Choices[0].Delta
		if delta.Content != "" {
			content += delta.Content
			if onChunk != nil {
				onChunk(output.StreamChunk{Content: delta.Content})
			}
		}
		for _, tc := range delta.ToolCalls {
			idx := 0
			if tc.Index != nil {
				idx = *tc.Index
			}
			call, ok := calls[idx]
			if !ok {
				call = &entity.ToolCall{}
				calls[idx] = call
			}
			if tc.ID != "" {
				call.ID = tc.ID
			}
			if tc.Function.Name != "" {
				call.Name = tc.Function.Name
			}
			call.Arguments += tc.Function.Arguments
		}
	}

	msg := entity.Message{
		Role:      entity.RoleAssistant,
		Content:   content,
		ToolCalls: assembleCalls(calls),
	}
	if onChunk != nil {
		onChunk(output.StreamChunk{ToolCalls: msg.ToolCalls, Done: true})
	}
	return &output.ChatResponse{Message: msg}, nil
}

func assembleCalls(calls map[int]*entity.ToolCall) []entity.ToolCall {
	if len(calls) == 0 {
		return nil
	}
	indices := make([]int, 0, len(calls))
	for i := range calls {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	out := make([]entity.ToolCall, 0, len(indices))
	for _, i := range indices {
		out = append(out, *calls[i])
	}
	return out
}

func convertMessages(messages []entity.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		msg := openai.ChatCompletionMessage{
			Role:       string(m.Role),
			Content:    m.Content,
			ToolCallID: m.ToolCallID,
			Name:       m.Name,
		}
		for _, tc := range m.ToolCalls {
			msg.ToolCalls = append(msg.ToolCalls, openai.ToolCall{
				ID:   tc.ID,
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      tc.Name,
					Arguments: tc.Arguments,
				},
			})
		}
		out = append(out, msg)
	}
	return out
}

func convertTools(tools []entity.ToolDefinition) []openai.Tool {
	out := make([]openai.Tool, 0, len(tools))
	for _, t := range tools {
		out = append(out, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}
	return out
}

func fromAPIMessage(m openai.ChatCompletionMessage) entity.Message {
	msg := entity.Message{
		Role:    entity.RoleAssistant,
		Content: m.Content,
	}
	for _, tc := range m.ToolCalls {
		msg.ToolCalls = append(msg.ToolCalls, entity.ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}
	return msg
}
