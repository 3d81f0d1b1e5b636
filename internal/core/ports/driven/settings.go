package driven

import "github.com/custodia-labs/inkpanel/internal/core/domain"

// SettingsSource provides the current configuration snapshot.
// Implementations swap the snapshot on reload; callers read it once per cycle.
type SettingsSource interface {
	// Current returns the active settings.
	Current() domain.Settings
}
