package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/custodia-labs/inkpanel/internal/adapters/driven/config/file"
)

var (
	bannerTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	bannerLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Width(12)
	bannerBox   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)
)

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// banner summarises the configuration the daemon starts with.
func banner(path string, cfg *file.Config) string {
	row := func(label, value string) string {
		return bannerLabel.Render(label) + value
	}

	pagination := "off"
	if cfg.Pagination.Enabled {
		pagination = fmt.Sprintf("%s, %d per page every %s", cfg.Pagination.Source, cfg.Pagination.PageSize, cfg.Pagination.Interval)
	}
	mcpAddr := "off"
	if cfg.MCP.Port > 0 {
		mcpAddr = fmt.Sprintf(":%d", cfg.MCP.Port)
	}

	lines := []string{
		bannerTitle.Render("inkpanel " + version),
		row("config", path),
		row("panel", fmt.Sprintf("%dx%d (%s)", cfg.Display.Width, cfg.Display.Height, cfg.Display.Driver)),
		row("mode", cfg.Display.Mode),
		row("quiet", fmt.Sprintf("%02d:00-%02d:00", cfg.Quiet.StartHour, cfg.Quiet.EndHour)),
		row("stories", pagination),
		row("mcp", mcpAddr),
	}
	return bannerBox.Render(strings.Join(lines, "\n"))
}
