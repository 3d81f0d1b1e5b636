package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const redacted = "********"

// Document renders cfg as nested TOML tables. Durations are written as
// strings like "10m0s". With redact set, credentials are masked.
func Document(cfg *Config, redact bool) map[string]any {
	secret := func(s string) string {
		if redact && s != "" {
			return redacted
		}
		return s
	}

	return map[string]any{
		"display": map[string]any{
			"mode":       cfg.Display.Mode,
			"wallpaper":  cfg.Display.Wallpaper,
			"width":      cfg.Display.Width,
			"height":     cfg.Display.Height,
			"driver":     cfg.Display.Driver,
			"output_dir": cfg.Display.OutputDir,
			"screenshot": cfg.Display.Screenshot,
		},
		"intervals": map[string]any{
			"dashboard": cfg.Intervals.Dashboard,
			"quote":     cfg.Intervals.Quote,
			"poetry":    cfg.Intervals.Poetry,
			"wallpaper": cfg.Intervals.Wallpaper,
			"holiday":   cfg.Intervals.Holiday,
			"year_end":  cfg.Intervals.YearEnd,
		},
		"quiet": map[string]any{
			"start_hour": cfg.Quiet.StartHour,
			"end_hour":   cfg.Quiet.EndHour,
			"timezone":   cfg.Quiet.Timezone,
		},
		"cache": map[string]any{
			"quote_ttl":   cfg.Cache.QuoteTTL.String(),
			"poetry_ttl":  cfg.Cache.PoetryTTL.String(),
			"vps_ttl":     cfg.Cache.VPSTTL.String(),
			"stories_ttl": cfg.Cache.StoriesTTL.String(),
		},
		"pagination": map[string]any{
			"enabled":     cfg.Pagination.Enabled,
			"source":      cfg.Pagination.Source,
			"feed_url":    cfg.Pagination.FeedURL,
			"page_size":   cfg.Pagination.PageSize,
			"interval":    cfg.Pagination.Interval.String(),
			"story_count": cfg.Pagination.StoryCount,
		},
		"providers": map[string]any{
			"weather": map[string]any{
				"api_key": secret(cfg.Providers.Weather.APIKey),
				"city":    cfg.Providers.Weather.City,
			},
			"github": map[string]any{
				"token":    secret(cfg.Providers.GitHub.Token),
				"username": cfg.Providers.GitHub.Username,
			},
			"vps": map[string]any{
				"veid":    cfg.Providers.VPS.VEID,
				"api_key": secret(cfg.Providers.VPS.APIKey),
			},
			"btc": map[string]any{
				"enabled": cfg.Providers.BTC.Enabled,
			},
		},
		"todo": map[string]any{
			"source":          cfg.Todo.Source,
			"gist_id":         cfg.Todo.GistID,
			"github_token":    secret(cfg.Todo.GitHubToken),
			"notion_token":    secret(cfg.Todo.NotionToken),
			"notion_database": cfg.Todo.NotionDatabase,
			"sheets_id":       cfg.Todo.SheetsID,
			"sheets_api_key":  secret(cfg.Todo.SheetsAPIKey),
			"goals":           orEmpty(cfg.Todo.Goals),
			"must":            orEmpty(cfg.Todo.Must),
			"optional":        orEmpty(cfg.Todo.Optional),
		},
		"personal": map[string]any{
			"name":     cfg.Personal.Name,
			"birthday": cfg.Personal.Birthday,
		},
		"mcp": map[string]any{
			"port": cfg.MCP.Port,
		},
		"log": map[string]any{
			"level":  cfg.Log.Level,
			"format": cfg.Log.Format,
		},
	}
}

// Marshal encodes cfg as TOML.
func Marshal(cfg *Config, redact bool) ([]byte, error) {
	return toml.Marshal(Document(cfg, redact))
}

// WriteDefault writes the default configuration to path. An existing file
// is only replaced when force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}

	data, err := Marshal(Defaults(), false)
	if err != nil {
		return fmt.Errorf("encoding defaults: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	// Credentials end up in this file.
	return os.WriteFile(path, data, 0600)
}

// flatten converts nested maps to dot-notation keys.
// E.g., {"a": {"b": 1}} becomes {"a.b": 1}.
func flatten(m map[string]any, prefix string) map[string]any {
	result := make(map[string]any)

	for key, value := range m {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		if nested, ok := value.(map[string]any); ok {
			for k, v := range flatten(nested, fullKey) {
				result[k] = v
			}
		} else {
			result[fullKey] = value
		}
	}

	return result
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
