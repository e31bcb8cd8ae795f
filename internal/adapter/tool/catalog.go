package tool

import (
	"encoding/json"
	"time"

	"leave-agent/internal/application/port/output"
)

// Config tunes the polling tools. The post-load grace period is a heuristic
// for late-arriving dynamic content, not a correctness guarantee; it is
// configurable precisely because no correct value is known.
type Config struct {
	PollInterval    time.Duration
	LoadGracePeriod time.Duration
	ScreenshotDir   string
}

func DefaultConfig() Config {
	return Config{
		PollInterval:    200 * time.Millisecond,
		LoadGracePeriod: 2 * time.Second,
		ScreenshotDir:   ".",
	}
}

// RegisterAll wires every browser tool into the registry. The resulting set
// of descriptors is the capability surface advertised to the agent.
func RegisterAll(registry output.ToolRegistry, session output.BrowserSession, logger output.LoggerPort, cfg Config) {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultConfig().PollInterval
	}
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "."
	}

	registry.Register(NewNavigateTool(session, logger))
	registry.Register(NewClickTool(session, logger))
	registry.Register(NewInputTextTool(session, logger))
	registry.Register(NewSafeClickTool(session, logger, cfg))
	registry.Register(NewSafeInputTextTool(session, logger, cfg))
	registry.Register(NewPressKeyTool(session, logger))
	registry.Register(NewScrollTool(session, logger))
	registry.Register(NewWaitForElementTool(session, logger, cfg))
	registry.Register(NewWaitForPageLoadTool(session, logger, cfg))
	registry.Register(NewCheckElementExistsTool(session, logger))
	registry.Register(NewFindElementsByTextTool(session, logger))
	registry.Register(NewGetPageInfoTool(session, logger))
	registry.Register(NewGetClickableElementsTool(session, logger))
	registry.Register(NewGetFormElementsTool(session, logger))
	registry.Register(NewGetPageContentTool(session, logger))
	registry.Register(NewGetElementTextTool(session, logger))
	registry.Register(NewTakeScreenshotTool(session, logger, cfg))
	registry.Register(NewOpenNewTabTool(session, logger))
	registry.Register(NewSwitchTabTool(session, logger))
	registry.Register(NewCloseCurrentTabTool(session, logger))
	registry.Register(NewRefreshPageTool(session, logger))
	registry.Register(NewGoBackTool(session, logger))
	registry.Register(NewGoForwardTool(session, logger))
	registry.Register(NewCloseBrowserTool(session, logger))
}

func marshalResult(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
