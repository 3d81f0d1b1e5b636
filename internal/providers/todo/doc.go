// Package todo loads the dashboard TODO lists.
//
// Sources:
//   - Static: lists from config.toml
//   - Gist: a markdown file in a GitHub gist
//   - Notion: a database with Name, Category and Status properties
//   - Sheets: a spreadsheet with Goals, Must and Optional columns
//
// WithFallback wraps a remote source so any failure yields the static lists.
package todo
