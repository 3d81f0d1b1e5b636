// Package domain defines the core entities for inkpanel.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - DisplayMode: The content category chosen for a refresh cycle
//   - QuietWindow: Local wall-clock hours during which nothing is drawn
//   - CachedContent: A fetched payload with the time it was fetched
//   - PaginationState: The persisted page of the story view
//   - Settings: The configuration values the core reads every cycle
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
