// Package file provides JSON-file implementations of the cache and state
// stores, plus a PNG frame sink for screenshot mode.
//
// Every write goes to a temporary file in the destination directory, is
// synced, and is then renamed over the target. Readers therefore see
// either the previous document or the new one, never a partial write.
//
// # File Layout
//
//   - <name>_cache.json: {"timestamp": ..., "<type>": payload}
//   - <key>_state.json: small state documents, e.g. {"current_page": 2}
//   - screenshot_<mode>.png: the last full frame of each mode
//
// # Thread Safety
//
// Writers to different names never interfere. Concurrent writers to the
// same name are serialised by the owning service, not here.
package file
