package executor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"leave-agent/internal/application/port/output"
	"leave-agent/internal/application/service"
	"leave-agent/internal/domain/entity"
	"leave-agent/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedLLM returns its responses in order and records every request.
type scriptedLLM struct {
	responses []entity.Message
	requests  []output.ChatRequest
}

func (l *scriptedLLM) Chat(ctx context.Context, req output.ChatRequest) (*output.ChatResponse, error) {
	l.requests = append(l.requests, req)
	if len(l.responses) == 0 {
		return nil, errors.New("script exhausted")
	}
	msg := l.responses[0]
	l.responses = l.responses[1:]
	return &output.ChatResponse{Message: msg}, nil
}

func (l *scriptedLLM) ChatStream(ctx context.Context, req output.ChatRequest, onChunk func(output.StreamChunk)) (*output.ChatResponse, error) {
	resp, err := l.Chat(ctx, req)
	if err != nil {
		return nil, err
	}
	if onChunk != nil {
		if resp.Message.Content != "" {
			onChunk(output.StreamChunk{Content: resp.Message.Content})
		}
		onChunk(output.StreamChunk{ToolCalls: resp.Message.ToolCalls, Done: true})
	}
	return resp, nil
}

type recordingTool struct {
	name   entity.ToolName
	result string
	err    error
	calls  []string
}

func (t *recordingTool) Name() entity.ToolName              { return t.name }
func (t *recordingTool) Description() string                { return "recording tool" }
func (t *recordingTool) Parameters() map[string]interface{} { return map[string]interface{}{"type": "object"} }

func (t *recordingTool) Execute(ctx context.Context, args string) (string, error) {
	t.calls = append(t.calls, args)
	return t.result, t.err
}

func newTestUsecase(llm output.LLMPort, tools ...output.ToolPort) (*Usecase, *service.ConversationStore) {
	registry := service.NewToolRegistry()
	for _, tool := range tools {
		registry.Register(tool)
	}
	store := service.NewConversationStore()
	uc := NewUsecase(Deps{
		LLM:          llm,
		Registry:     registry,
		Store:        store,
		Logger:       logger.NewNop(),
		SystemPrompt: "You are a leave-request assistant.",
	})
	return uc, store
}

func TestExecute(t *testing.T) {
	t.Run("direct answer without tools", func(t *testing.T) {
		llm := &scriptedLLM{responses: []entity.Message{
			{Role: entity.RoleAssistant, Content: "You have 12 days left."},
		}}
		uc, store := newTestUsecase(llm)

		result, err := uc.Execute(context.Background(), "t1", "how many days do I have?")
		require.NoError(t, err)
		assert.Equal(t, "You have 12 days left.", result.FinalAnswer)
		assert.Equal(t, 1, result.Iterations)

		// system + user + assistant are checkpointed.
		history := store.History("t1")
		require.Len(t, history, 3)
		assert.Equal(t, entity.RoleSystem, history[0].Role)
		assert.Equal(t, entity.RoleUser, history[1].Role)
		assert.Equal(t, entity.RoleAssistant, history[2].Role)
	})

	t.Run("tool observations feed the next iteration", func(t *testing.T) {
		llm := &scriptedLLM{responses: []entity.Message{
			{
				Role: entity.RoleAssistant,
				ToolCalls: []entity.ToolCall{
					{ID: "call-1", Name: "navigate", Arguments: `{"url": "https://portal.example.com"}`},
				},
			},
			{Role: entity.RoleAssistant, Content: "Portal is open."},
		}}
		nav := &recordingTool{name: entity.ToolNavigate, result: "Navigated to https://portal.example.com"}
		uc, _ := newTestUsecase(llm, nav)

		result, err := uc.Execute(context.Background(), "t1", "open the portal")
		require.NoError(t, err)
		assert.Equal(t, "Portal is open.", result.FinalAnswer)
		assert.Equal(t, 2, result.Iterations)
		assert.Equal(t, []string{`{"url": "https://portal.example.com"}`}, nav.calls)

		// The second request carries the observation back to the model.
		require.Len(t, llm.requests, 2)
		last := llm.requests[1].Messages[len(llm.requests[1].Messages)-1]
		assert.Equal(t, entity.RoleTool, last.Role)
		assert.Equal(t, "call-1", last.ToolCallID)
		assert.Equal(t, "Navigated to https://portal.example.com", last.Content)
	})

	t.Run("tool failure becomes an error observation", func(t *testing.T) {
		llm := &scriptedLLM{responses: []entity.Message{
			{
				Role: entity.RoleAssistant,
				ToolCalls: []entity.ToolCall{
					{ID: "call-1", Name: "click", Arguments: `{"selector": "#ghost"}`},
				},
			},
			{Role: entity.RoleAssistant, Content: "That element is gone."},
		}}
		click := &recordingTool{name: entity.ToolClick, err: entity.ErrElementNotFound}
		uc, _ := newTestUsecase(llm, click)

		result, err := uc.Execute(context.Background(), "t1", "click it")
		require.NoError(t, err, "tool failures must not abort the turn")
		assert.Equal(t, "That element is gone.", result.FinalAnswer)

		last := llm.requests[1].Messages[len(llm.requests[1].Messages)-1]
		assert.True(t, strings.HasPrefix(last.Content, "Error: "), "observation: %q", last.Content)
	})

	t.Run("unknown tool becomes an error observation", func(t *testing.T) {
		llm := &scriptedLLM{responses: []entity.Message{
			{
				Role: entity.RoleAssistant,
				ToolCalls: []entity.ToolCall{
					{ID: "call-1", Name: "teleport", Arguments: `{}`},
				},
			},
			{Role: entity.RoleAssistant, Content: "Never mind."},
		}}
		uc, _ := newTestUsecase(llm)

		_, err := uc.Execute(context.Background(), "t1", "go")
		require.NoError(t, err)

		last := llm.requests[1].Messages[len(llm.requests[1].Messages)-1]
		assert.Equal(t, "Error: unknown tool 'teleport'", last.Content)
	})

	t.Run("oversized observations are truncated", func(t *testing.T) {
		llm := &scriptedLLM{responses: []entity.Message{
			{
				Role: entity.RoleAssistant,
				ToolCalls: []entity.ToolCall{
					{ID: "call-1", Name: "get_page_content", Arguments: `{}`},
				},
			},
			{Role: entity.RoleAssistant, Content: "done"},
		}}
		huge := &recordingTool{name: entity.ToolGetPageContent, result: strings.Repeat("x", maxObservationLen*2)}
		uc, _ := newTestUsecase(llm, huge)

		_, err := uc.Execute(context.Background(), "t1", "read the page")
		require.NoError(t, err)

		last := llm.requests[1].Messages[len(llm.requests[1].Messages)-1]
		assert.LessOrEqual(t, len(last.Content), maxObservationLen+len("\n... (truncated)"))
		assert.True(t, strings.HasSuffix(last.Content, "... (truncated)"))
	})

	t.Run("history persists across turns of the same thread", func(t *testing.T) {
		llm := &scriptedLLM{responses: []entity.Message{
			{Role: entity.RoleAssistant, Content: "Hello Jordan."},
			{Role: entity.RoleAssistant, Content: "You told me: Jordan."},
		}}
		uc, _ := newTestUsecase(llm)

		_, err := uc.Execute(context.Background(), "t1", "my name is Jordan")
		require.NoError(t, err)
		_, err = uc.Execute(context.Background(), "t1", "what did I tell you?")
		require.NoError(t, err)

		// The second request includes the entire first turn; the system
		// prompt is not duplicated.
		second := llm.requests[1].Messages
		require.Len(t, second, 4)
		assert.Equal(t, entity.RoleSystem, second[0].Role)
		assert.Equal(t, "my name is Jordan", second[1].Content)
		assert.Equal(t, "Hello Jordan.", second[2].Content)
		assert.Equal(t, "what did I tell you?", second[3].Content)
	})

	t.Run("separate threads do not share history", func(t *testing.T) {
		llm := &scriptedLLM{responses: []entity.Message{
			{Role: entity.RoleAssistant, Content: "a"},
			{Role: entity.RoleAssistant, Content: "b"},
		}}
		uc, _ := newTestUsecase(llm)

		_, err := uc.Execute(context.Background(), "t1", "first")
		require.NoError(t, err)
		_, err = uc.Execute(context.Background(), "t2", "second")
		require.NoError(t, err)

		// system + user only: nothing leaked from t1.
		require.Len(t, llm.requests[1].Messages, 2)
	})

	t.Run("streaming path is used when a chunk handler is set", func(t *testing.T) {
		llm := &scriptedLLM{responses: []entity.Message{
			{Role: entity.RoleAssistant, Content: "streamed answer"},
		}}
		registry := service.NewToolRegistry()
		var chunks []output.StreamChunk
		uc := NewUsecase(Deps{
			LLM:      llm,
			Registry: registry,
			Store:    service.NewConversationStore(),
			Logger:   logger.NewNop(),
			OnChunk:  func(c output.StreamChunk) { chunks = append(chunks, c) },
		})

		result, err := uc.Execute(context.Background(), "t1", "hi")
		require.NoError(t, err)
		assert.Equal(t, "streamed answer", result.FinalAnswer)
		require.NotEmpty(t, chunks)
		assert.Equal(t, "streamed answer", chunks[0].Content)
		assert.True(t, chunks[len(chunks)-1].Done)
	})

	t.Run("LLM failure aborts the turn", func(t *testing.T) {
		llm := &scriptedLLM{}
		uc, _ := newTestUsecase(llm)

		_, err := uc.Execute(context.Background(), "t1", "hi")
		require.Error(t, err)
	})
}
