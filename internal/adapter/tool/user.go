package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"leave-agent/internal/application/port/output"
	"leave-agent/internal/domain/entity"
)

type AskUserTool struct {
	userInteraction output.UserInteractionPort
	logger          output.LoggerPort
}

func NewAskUserTool(userInteraction output.UserInteractionPort, logger output.LoggerPort) *AskUserTool {
	return &AskUserTool{userInteraction: userInteraction, logger: logger}
}

func (t *AskUserTool) Name() entity.ToolName { return entity.ToolUserAsk }
func (t *AskUserTool) Description() string {
	return "Ask the user a question and wait for their reply. Use it for clarifications such as leave dates or reasons. Credentials are supplied by the system; never request them here."
}
func (t *AskUserTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"question": map[string]interface{}{
				"type":        "string",
				"description": "Question to present to the user",
			},
		},
		"required": []string{"question"},
	}
}

func (t *AskUserTool) Execute(ctx context.Context, args string) (string, error) {
	var input struct {
		Question string `json:"question"`
	}
	if err := json.Unmarshal([]byte(args), &input); err != nil {
		return "", fmt.Errorf("invalid input format: %w", err)
	}
	return t.userInteraction.AskQuestion(ctx, input.Question)
}

type WaitUserActionTool struct {
	userInteraction output.UserInteractionPort
	logger          output.LoggerPort
}

func NewWaitUserActionTool(userInteraction output.UserInteractionPort, logger output.LoggerPort) *WaitUserActionTool {
	return &WaitUserActionTool{userInteraction: userInteraction, logger: logger}
}

func (t *WaitUserActionTool) Name() entity.ToolName { return entity.ToolUserWaitAction }
func (t *WaitUserActionTool) Description() string {
	return "Pause and wait for the user to complete a manual step in the browser, such as a CAPTCHA or a 2FA prompt. Explain clearly what they need to do; execution resumes when they confirm."
}
func (t *WaitUserActionTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"message": map[string]interface{}{
				"type":        "string",
				"description": "Instructions describing the manual action",
			},
		},
		"required": []string{"message"},
	}
}

func (t *WaitUserActionTool) Execute(ctx context.Context, args string) (string, error) {
	var input struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal([]byte(args), &input); err != nil {
		return "", fmt.Errorf("invalid input format: %w", err)
	}
	if err := t.userInteraction.WaitForUserAction(ctx, input.Message); err != nil {
		return "", err
	}
	return "User confirmed action completion", nil
}
