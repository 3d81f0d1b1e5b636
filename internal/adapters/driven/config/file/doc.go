// Package file loads the inkpanel configuration from a TOML file.
//
// The Loader reads ~/.inkpanel/config.toml through viper, overlays
// INKPANEL_ environment variables, validates the result and converts it to
// domain.Settings. Watch re-reads the file on change and notifies reload
// callbacks; an invalid edit keeps the previous settings.
package file
