// Package migrations embebe los scripts SQL de goose.
package migrations

import "embed"

// FS scripts de migración ordenados por versión.
//
//go:embed *.sql
var FS embed.FS
