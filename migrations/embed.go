// Package migrations embeds the goose migrations shared by the SQLite and
// PostgreSQL cache stores.
package migrations

import "embed"

// FS contains the embedded *.sql migrations.
//
//go:embed *.sql
var FS embed.FS
