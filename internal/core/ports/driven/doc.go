// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Display: The panel driver (init, clear, show, partial, sleep)
//   - Renderer: Lays out a data bundle into a frame
//   - CacheStore: Atomic persistence of content cache documents
//   - StateStore: Small persisted documents such as the pagination page
//   - SettingsSource: The active configuration snapshot
//   - HolidayCalendar: Date-keyed holiday lookup
//   - Fetcher: One provider call returning a typed payload
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - HistoryStore: Run history. Without it, runs are only logged.
//   - FrameSink: Screenshot output. Without it, screenshot mode is ignored.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or provider package
package driven
