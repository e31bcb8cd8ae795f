package di

import (
	"context"
	"fmt"
	"os"
	"time"

	"leave-agent/internal/adapter/tool"
	"leave-agent/internal/application/port/input"
	"leave-agent/internal/application/port/output"
	"leave-agent/internal/application/service"
	browser "leave-agent/internal/infrastructure/browser/rod"
	"leave-agent/internal/infrastructure/env"
	"leave-agent/internal/infrastructure/llm/openrouter"
	"leave-agent/internal/infrastructure/logger"
	"leave-agent/internal/infrastructure/prompts"
	"leave-agent/internal/infrastructure/userinteraction"
	"leave-agent/internal/usecase/executor"

	"golang.org/x/time/rate"
)

// Container wires every adapter behind the ports and owns their lifetimes.
type Container struct {
	Logger   output.LoggerPort
	Session  output.BrowserSession
	Registry output.ToolRegistry
	Store    *service.ConversationStore
	Executor input.TaskExecutor
	Console  *userinteraction.Console

	closers []func() error
}

func NewContainer(ctx context.Context, onChunk func(output.StreamChunk)) (*Container, error) {
	if err := env.Load(); err != nil {
		return nil, err
	}

	c := &Container{}

	log, err := logger.New(env.Get("LOG_DIR", "log"))
	if err != nil {
		return nil, err
	}
	c.Logger = log
	c.closers = append(c.closers, log.Close)

	apiKey, err := env.MustGet("OPENROUTER_API_KEY")
	if err != nil {
		c.close()
		return nil, err
	}
	portalURL, err := env.MustGet("PORTAL_URL")
	if err != nil {
		c.close()
		return nil, err
	}
	username, err := env.MustGet("PORTAL_USERNAME")
	if err != nil {
		c.close()
		return nil, err
	}
	password, err := env.MustGet("PORTAL_PASSWORD")
	if err != nil {
		c.close()
		return nil, err
	}

	llm, err := openrouter.New(openrouter.Config{
		APIKey:  apiKey,
		Model:   env.Get("OPENROUTER_MODEL_NAME", "openai/gpt-4o-mini"),
		BaseURL: env.Get("OPENROUTER_BASE_URL", ""),
	}, log)
	if err != nil {
		c.close()
		return nil, err
	}

	browserCfg := browser.DefaultConfig()
	browserCfg.Headless = env.GetBool("BROWSER_HEADLESS", false)
	browserCfg.PageLoadTimeout = env.GetDuration("BROWSER_PAGE_LOAD_TIMEOUT", browserCfg.PageLoadTimeout)
	browserCfg.ElementTimeout = env.GetDuration("BROWSER_ELEMENT_TIMEOUT", browserCfg.ElementTimeout)

	session, err := browser.Open(ctx, browserCfg)
	if err != nil {
		c.close()
		return nil, err
	}
	c.Session = session
	c.closers = append(c.closers, session.Close)

	c.Console = userinteraction.NewConsole(os.Stdin, os.Stdout)

	toolCfg := tool.DefaultConfig()
	toolCfg.ScreenshotDir = env.Get("SCREENSHOT_DIR", ".")

	registry := service.NewToolRegistry()
	tool.RegisterAll(registry, session, log, toolCfg)
	registry.Register(tool.NewAskUserTool(c.Console, log))
	registry.Register(tool.NewWaitUserActionTool(c.Console, log))
	c.Registry = registry

	systemPrompt, err := prompts.SystemPrompt(prompts.Portal{
		URL:      portalURL,
		Username: username,
		Password: password,
	})
	if err != nil {
		c.close()
		return nil, err
	}

	c.Store = service.NewConversationStore()
	c.Executor = executor.NewUsecase(executor.Deps{
		LLM:          llm,
		Registry:     registry,
		Store:        c.Store,
		Logger:       log,
		Limiter:      rate.NewLimiter(rate.Every(llmRequestInterval()), 1),
		SystemPrompt: systemPrompt,
		OnChunk:      onChunk,
	})

	log.Info("container ready",
		"tools", len(registry.All()),
		"headless", browserCfg.Headless,
	)
	return c, nil
}

// llmRequestInterval reads the minimum spacing between LLM requests.
func llmRequestInterval() time.Duration {
	return env.GetDuration("LLM_REQUEST_INTERVAL", 15*time.Second)
}

func (c *Container) Close() error {
	return c.close()
}

func (c *Container) close() error {
	var firstErr error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("shutdown: %w", err)
		}
	}
	return firstErr
}
