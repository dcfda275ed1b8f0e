// Package migrations holds the versioned SQL schema of the sales database.
// Files follow the golang-migrate naming scheme NNNNNN_name.{up,down}.sql.
package migrations

import "embed"

// FS contains every migration file
//
//go:embed *.sql
var FS embed.FS
