package migrations

import "embed"

// FS contains embedded SQLite migrations for the submission journal.
//
//go:embed *.sql
var FS embed.FS
