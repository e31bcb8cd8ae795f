package tool

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"

	"leave-agent/internal/application/port/output"
	"leave-agent/internal/domain/entity"

	"github.com/disintegration/imaging"
)

const maxScreenshotWidth = 1280

type TakeScreenshotTool struct {
	session output.BrowserSession
	logger  output.LoggerPort
	cfg     Config
}

func NewTakeScreenshotTool(session output.BrowserSession, logger output.LoggerPort, cfg Config) *TakeScreenshotTool {
	return &TakeScreenshotTool{session: session, logger: logger, cfg: cfg}
}

func (t *TakeScreenshotTool) Name() entity.ToolName { return entity.ToolTakeScreenshot }
func (t *TakeScreenshotTool) Description() string {
	return "Capture a screenshot of the current page and save it to a file. Set full_page=true to capture beyond the visible viewport. Returns the saved path and dimensions."
}
func (t *TakeScreenshotTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"file_path": map[string]interface{}{
				"type":        "string",
				"description": "Where to save the image (default screenshot.png)",
			},
			"full_page": map[string]interface{}{
				"type":        "boolean",
				"description": "Capture the entire page instead of the viewport (default false)",
			},
		},
		"required": []string{},
	}
}

func (t *TakeScreenshotTool) Execute(ctx context.Context, args string) (string, error) {
	input := struct {
		FilePath string `json:"file_path"`
		FullPage bool   `json:"full_page"`
	}{}
	if args != "" {
		if err := json.Unmarshal([]byte(args), &input); err != nil {
			return "", fmt.Errorf("invalid input format: %w", err)
		}
	}
	if input.FilePath == "" {
		input.FilePath = "screenshot.png"
	}

	data, err := t.session.Screenshot(input.FullPage)
	if err != nil {
		return "", err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("screenshot decode failed: %w", err)
	}
	if img.Bounds().Dx() > maxScreenshotWidth {
		img = imaging.Resize(img, maxScreenshotWidth, 0, imaging.Lanczos)
	}

	path := filepath.Join(t.cfg.ScreenshotDir, input.FilePath)
	if err := imaging.Save(img, path); err != nil {
		return "", fmt.Errorf("saving screenshot failed: %w", err)
	}

	t.logger.Info("Screenshot saved", "path", path)
	return fmt.Sprintf("Screenshot saved to %s (%dx%d)", path, img.Bounds().Dx(), img.Bounds().Dy()), nil
}
