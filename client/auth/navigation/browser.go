package navigation

import (
	"context"
	"log/slog"
	"os/exec"
	"runtime"
)

// Browser opens the frontend route in the system browser.
type Browser struct {
	FrontendURL string
	Logger      *slog.Logger
	open        func(URL string) *exec.Cmd
}

func (b *Browser) Navigate(ctx context.Context, route string) {
	location := Location(b.FrontendURL, route)
	open := b.open
	if open == nil {
		open = openCommand
	}
	logger := b.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cmd := open(location)
	if err := cmd.Start(); err != nil {
		logger.WarnContext(ctx, "failed to open browser", "location", location, "error", err)
		return
	}
	go func() { _ = cmd.Wait() }()
}

func openCommand(URL string) *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", URL)
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", URL)
	default:
		return exec.Command("xdg-open", URL)
	}
}

// NewBrowser creates a browser navigator for frontendURL
func NewBrowser(frontendURL string, logger *slog.Logger) *Browser {
	return &Browser{FrontendURL: frontendURL, Logger: logger}
}
