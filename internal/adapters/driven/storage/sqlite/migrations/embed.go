// Package migrations holds the history schema. Files are applied in
// version order by the sqlite store.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
