package prompts

import (
	_ "embed"
	"fmt"

	"github.com/tmc/langchaingo/prompts"
)

//go:embed system.txt
var systemTemplate string

// Portal carries the values the system prompt is rendered with. Credentials
// come from the environment so they never live in the template file.
type Portal struct {
	URL      string
	Username string
	Password string
}

// SystemPrompt renders the embedded system prompt for the given portal.
func SystemPrompt(p Portal) (string, error) {
	tpl := prompts.NewPromptTemplate(systemTemplate, []string{"portal_url", "username", "password"})
	out, err := tpl.Format(map[string]any{
		"portal_url": p.URL,
		"username":   p.Username,
		"password":   p.Password,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render system prompt: %w", err)
	}
	return out, nil
}
