package migrations

import "embed"

// FS contains embedded SQLite migrations for arcade stats storage.
//
//go:embed *.sql
var FS embed.FS
